package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/payments-gateway/internal/domain"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, date_created, status, last_four_card_digits,
			expiry_month, expiry_year, currency, amount, authorization_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	p := toDBModel(payment)
	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.DateCreated,
		p.Status,
		p.LastFourCardDigits,
		p.ExpiryMonth,
		p.ExpiryYear,
		p.Currency,
		p.Amount,
		p.AuthorizationCode,
	)
	if err != nil {
		if persistence.IsUniqueViolation(err) {
			return domain.ErrPaymentAlreadyExists
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// Get retrieves a payment by its identifier
func (r *PaymentRepository) Get(ctx context.Context, id string) (*domain.Payment, error) {
	query := `
		SELECT id, date_created, status, last_four_card_digits,
		       expiry_month, expiry_year, currency, amount, authorization_code
		FROM payments WHERE id = $1
	`

	row := r.db.QueryRow(ctx, query, id)
	return scanPayment(row)
}

func (r *PaymentRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var m PaymentModel
	err := row.Scan(
		&m.ID, &m.DateCreated, &m.Status, &m.LastFourCardDigits,
		&m.ExpiryMonth, &m.ExpiryYear, &m.Currency, &m.Amount, &m.AuthorizationCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}

	return toDomainModel(m), nil
}
