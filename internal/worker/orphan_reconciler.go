package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/domain"
	"github.com/DanielPopoola/payments-gateway/internal/observability"
)

const storeTimeout = 5 * time.Second

type OrphanReconciler struct {
	ledger    *OrphanLedger
	store     application.PaymentStore
	metrics   *observability.Metrics
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewOrphanReconciler(
	ledger *OrphanLedger,
	store application.PaymentStore,
	metrics *observability.Metrics,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *OrphanReconciler {
	return &OrphanReconciler{
		ledger:    ledger,
		store:     store,
		metrics:   metrics,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (r *OrphanReconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("starting orphan reconciler", "interval", r.interval, "batch_size", r.batchSize)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping orphan reconciler", "pending", r.ledger.Len())
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single reconciliation cycle and returns how many orphans were recorded.
func (r *OrphanReconciler) RunOnce(ctx context.Context) int {
	pending := r.ledger.Pending(r.batchSize)
	if len(pending) == 0 {
		return 0
	}

	r.logger.Info("reconciling orphaned authorizations", "count", len(pending))

	recovered := 0
	for _, entry := range pending {
		if ctx.Err() != nil {
			break
		}
		if r.reconcile(ctx, entry) {
			recovered++
		}
	}
	return recovered
}

func (r *OrphanReconciler) reconcile(ctx context.Context, entry LedgerEntry) bool {
	id := entry.Payment.ID()

	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := r.store.Create(storeCtx, entry.Payment)
	if err != nil && !errors.Is(err, domain.ErrPaymentAlreadyExists) {
		attempts := r.ledger.recordAttempt(id)
		r.logger.Warn("orphaned authorization still not recorded",
			"payment_id", id,
			"attempts", attempts,
			"error", err,
		)
		return false
	}

	r.ledger.Remove(id)
	r.metrics.OrphanRecovered(ctx)
	r.logger.Info("orphaned authorization recorded",
		"payment_id", id,
		"orphaned_at", entry.OccurredAt,
	)
	return true
}
