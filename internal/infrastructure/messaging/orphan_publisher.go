// Package messaging publishes orphaned authorization events to Kafka so that an
// external reconciliation process can void or record them.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/config"
	"github.com/segmentio/kafka-go"
)

const (
	EventTypeHeader           = "event_type"
	OrphanedAuthorizationType = "payment.orphaned_authorization"
	defaultWriteTimeout       = 5 * time.Second
)

type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrphanedAuthorizationEvent is the JSON payload written to the orphan topic.
type OrphanedAuthorizationEvent struct {
	PaymentID          string    `json:"payment_id"`
	Status             string    `json:"status"`
	AuthorizationCode  string    `json:"authorization_code"`
	LastFourCardDigits string    `json:"last_four_card_digits"`
	ExpiryMonth        int       `json:"expiry_month"`
	ExpiryYear         int       `json:"expiry_year"`
	Currency           string    `json:"currency"`
	Amount             int64     `json:"amount"`
	DateCreated        time.Time `json:"date_created"`
	OccurredAt         time.Time `json:"occurred_at"`
	Cause              string    `json:"cause,omitempty"`
}

type OrphanPublisher struct {
	producer     Producer
	topic        string
	writeTimeout time.Duration
	logger       *slog.Logger
}

func NewWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: cfg.WriteTimeout,
	}
}

func NewOrphanPublisher(producer Producer, cfg config.KafkaConfig, logger *slog.Logger) *OrphanPublisher {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &OrphanPublisher{
		producer:     producer,
		topic:        cfg.OrphanTopic,
		writeTimeout: timeout,
		logger:       logger,
	}
}

func NewEvent(orphan application.OrphanedAuthorization) OrphanedAuthorizationEvent {
	p := orphan.Payment
	event := OrphanedAuthorizationEvent{
		PaymentID:          p.ID(),
		Status:             string(p.Status()),
		LastFourCardDigits: p.LastFourCardDigits(),
		ExpiryMonth:        p.ExpiryMonth(),
		ExpiryYear:         p.ExpiryYear(),
		Currency:           p.Currency(),
		Amount:             p.Amount(),
		DateCreated:        p.DateCreated(),
		OccurredAt:         orphan.OccurredAt,
	}
	if code := p.AuthorizationCode(); code != nil {
		event.AuthorizationCode = *code
	}
	if orphan.Cause != nil {
		event.Cause = orphan.Cause.Error()
	}
	return event
}

// ReportOrphanedAuthorization writes one message keyed by payment id. Failures are
// logged only; the other reporters still hold the signal.
func (p *OrphanPublisher) ReportOrphanedAuthorization(ctx context.Context, orphan application.OrphanedAuthorization) {
	payload, err := json.Marshal(NewEvent(orphan))
	if err != nil {
		p.logger.Error("failed to encode orphan event", "payment_id", orphan.Payment.ID(), "error", err)
		return
	}

	headers := injectHeaders(ctx, []kafka.Header{
		{Key: EventTypeHeader, Value: []byte(OrphanedAuthorizationType)},
	})

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Topic:   p.topic,
		Key:     []byte(orphan.Payment.ID()),
		Value:   payload,
		Headers: headers,
		Time:    orphan.OccurredAt,
	}
	if err := p.producer.WriteMessages(writeCtx, msg); err != nil {
		p.logger.Error("failed to publish orphan event",
			"payment_id", orphan.Payment.ID(),
			"topic", p.topic,
			"error", err,
		)
		return
	}

	p.logger.Info("orphan event published", "payment_id", orphan.Payment.ID(), "topic", p.topic)
}
