package handlers

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/payments-gateway/internal/application/services"
	"github.com/DanielPopoola/payments-gateway/internal/domain"
	"github.com/DanielPopoola/payments-gateway/internal/health"
	"github.com/DanielPopoola/payments-gateway/internal/interfaces/rest"
	"github.com/DanielPopoola/payments-gateway/internal/observability"
	"github.com/go-playground/validator"
)

type AuthorizationService interface {
	Authorize(ctx context.Context, cmd services.AuthorizeCommand) (*domain.Payment, error)
}

type QueryService interface {
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
}

type HealthChecker interface {
	Check(ctx context.Context) health.Result
}

type Handlers struct {
	authService  AuthorizationService
	queryService QueryService
	health       HealthChecker
	metrics      *observability.Metrics
	validate     *validator.Validate
	logger       *slog.Logger
}

func NewHandlers(
	authService AuthorizationService,
	queryService QueryService,
	health HealthChecker,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		authService:  authService,
		queryService: queryService,
		health:       health,
		metrics:      metrics,
		validate:     rest.NewValidator(),
		logger:       logger,
	}
}
