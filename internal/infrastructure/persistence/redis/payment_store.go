// Package redis stores payments as JSON documents in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/config"
	"github.com/DanielPopoola/payments-gateway/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "payment:"

type paymentRecord struct {
	ID                 string    `json:"id"`
	DateCreated        time.Time `json:"date_created"`
	Status             string    `json:"status"`
	LastFourCardDigits string    `json:"last_four_card_digits"`
	ExpiryMonth        int       `json:"expiry_month"`
	ExpiryYear         int       `json:"expiry_year"`
	Currency           string    `json:"currency"`
	Amount             int64     `json:"amount"`
	AuthorizationCode  *string   `json:"authorization_code,omitempty"`
}

type PaymentStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewPaymentStore(rdb *redis.Client, ttl time.Duration) *PaymentStore {
	return &PaymentStore{rdb: rdb, ttl: ttl}
}

func (s *PaymentStore) key(id string) string {
	return keyPrefix + id
}

// Create writes the payment only if no record exists under its id.
func (s *PaymentStore) Create(ctx context.Context, payment *domain.Payment) error {
	body, err := json.Marshal(toRecord(payment))
	if err != nil {
		return fmt.Errorf("encode payment: %w", err)
	}

	ok, err := s.rdb.SetNX(ctx, s.key(payment.ID()), body, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	if !ok {
		return domain.ErrPaymentAlreadyExists
	}
	return nil
}

func (s *PaymentStore) Get(ctx context.Context, id string) (*domain.Payment, error) {
	body, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	var rec paymentRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decode payment %s: %w", id, err)
	}
	return rec.toDomain(), nil
}

func (s *PaymentStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func toRecord(p *domain.Payment) paymentRecord {
	return paymentRecord{
		ID:                 p.ID(),
		DateCreated:        p.DateCreated(),
		Status:             string(p.Status()),
		LastFourCardDigits: p.LastFourCardDigits(),
		ExpiryMonth:        p.ExpiryMonth(),
		ExpiryYear:         p.ExpiryYear(),
		Currency:           p.Currency(),
		Amount:             p.Amount(),
		AuthorizationCode:  p.AuthorizationCode(),
	}
}

func (r paymentRecord) toDomain() *domain.Payment {
	return domain.Reconstitute(
		r.ID,
		r.DateCreated,
		domain.PaymentStatus(r.Status),
		r.LastFourCardDigits,
		r.ExpiryMonth,
		r.ExpiryYear,
		r.Currency,
		r.Amount,
		r.AuthorizationCode,
	)
}
