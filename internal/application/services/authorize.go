package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/domain"
	"github.com/DanielPopoola/payments-gateway/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultPersistTimeout = 5 * time.Second

type AuthorizeService struct {
	store          application.PaymentStore
	authorizer     application.Authorizer
	orphans        application.OrphanReporter
	clock          application.Clock
	metrics        *observability.Metrics
	persistTimeout time.Duration
	logger         *slog.Logger
}

func NewAuthorizeService(
	store application.PaymentStore,
	authorizer application.Authorizer,
	orphans application.OrphanReporter,
	clock application.Clock,
	metrics *observability.Metrics,
	persistTimeout time.Duration,
	logger *slog.Logger,
) *AuthorizeService {
	if persistTimeout <= 0 {
		persistTimeout = DefaultPersistTimeout
	}
	return &AuthorizeService{
		store:          store,
		authorizer:     authorizer,
		orphans:        orphans,
		clock:          clock,
		metrics:        metrics,
		persistTimeout: persistTimeout,
		logger:         logger,
	}
}

// Authorize validates the command, asks the bank for a decision and records the outcome.
// The steps run strictly in that order. Once the bank has answered, persistence runs on a
// context detached from the caller's cancellation.
func (s *AuthorizeService) Authorize(ctx context.Context, cmd AuthorizeCommand) (*domain.Payment, error) {
	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "AuthorizeService.Authorize")
	defer span.End()

	s.metrics.PaymentReceived(ctx)

	payment, err := domain.Create(cmd.toRequest(), s.clock.Now())
	if err != nil {
		s.metrics.ValidationFailed(ctx)
		if validationErr, ok := domain.IsValidationError(err); ok {
			span.SetAttributes(attribute.String("validation.field", validationErr.Field))
			return nil, application.NewValidationError(validationErr.Field, validationErr.Message)
		}
		return nil, application.NewInternalError(err)
	}
	span.SetAttributes(attribute.String("payment.id", payment.ID()))

	if err := ctx.Err(); err != nil {
		s.logger.Warn("request cancelled before authorization", "payment_id", payment.ID())
		return nil, application.NewRequestCancelledError(err)
	}

	resp, err := s.authorizer.Authorize(ctx, application.AuthorizationRequest{
		CardNumber: cmd.CardNumber,
		ExpiryDate: cmd.toRequest().ExpiryDate(),
		Currency:   payment.Currency(),
		Amount:     payment.Amount(),
		CVV:        cmd.CVV,
	})
	if err != nil {
		return nil, s.authorizationFailed(ctx, span, payment, err)
	}

	if resp.Authorized {
		if err := payment.MarkAsAuthorized(resp.AuthorizationCode); err != nil {
			return nil, application.NewInternalError(err)
		}
	}
	span.SetAttributes(attribute.String("payment.status", string(payment.Status())))

	if err := s.persist(ctx, payment); err != nil {
		return nil, s.persistenceFailed(ctx, span, payment, err)
	}

	if payment.IsAuthorized() {
		s.metrics.PaymentAuthorized(ctx)
	} else {
		s.metrics.PaymentDeclined(ctx)
	}

	s.logger.Info("payment processed",
		"payment_id", payment.ID(),
		"status", payment.Status(),
		"last_four", payment.LastFourCardDigits(),
	)

	return payment, nil
}

func (s *AuthorizeService) persist(ctx context.Context, payment *domain.Payment) error {
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
	defer cancel()

	return s.store.Create(persistCtx, payment)
}

func (s *AuthorizeService) authorizationFailed(ctx context.Context, span trace.Span, payment *domain.Payment, err error) error {
	span.RecordError(err)

	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		span.SetStatus(codes.Error, "request cancelled")
		s.logger.Warn("request cancelled during authorization", "payment_id", payment.ID(), "error", err)
		return application.NewRequestCancelledError(err)
	}

	span.SetStatus(codes.Error, "authorizer fault")
	s.metrics.AuthorizerFault(ctx)
	s.logger.Error("bank authorization failed",
		"payment_id", payment.ID(),
		"error", err,
	)
	return application.NewAuthorizerFaultError(err)
}

func (s *AuthorizeService) persistenceFailed(ctx context.Context, span trace.Span, payment *domain.Payment, err error) error {
	span.RecordError(err)

	if !payment.IsAuthorized() {
		span.SetStatus(codes.Error, "persistence failed")
		s.metrics.PersistenceFailed(ctx)
		s.logger.Error("failed to record declined payment",
			"payment_id", payment.ID(),
			"error", err,
		)
		return application.NewInternalError(err)
	}

	// The bank has approved funds that no record points to.
	s.metrics.AuthorizationOrphaned(ctx)
	s.orphans.ReportOrphanedAuthorization(context.WithoutCancel(ctx), application.OrphanedAuthorization{
		Payment:    payment.Clone(),
		Cause:      err,
		OccurredAt: s.clock.Now(),
	})
	return application.NewOrphanedAuthorizationError(err)
}
