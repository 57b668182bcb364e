package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
)

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	const stmt = `
INSERT INTO payments (id, user_id, event_id, amount_cents, payment_method, status, transaction_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`

	err := conn(ctx, r.pool).QueryRow(ctx, stmt,
		p.ID, p.UserID, p.EventID, int64(p.Amount), string(p.PaymentMethod), string(p.Status), p.TransactionID,
	).Scan(&p.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return repository.ErrDuplicate
		case isForeignKeyViolation(err):
			return repository.ErrInvalidReference
		case isInvalidUUID(err):
			return repository.ErrInvalidID
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, txID string) (*models.Payment, error) {
	const query = `
SELECT id, user_id, event_id, amount_cents, payment_method, status, transaction_id, created_at
FROM payments WHERE transaction_id = $1`

	var (
		p              models.Payment
		amount         int64
		method, status string
	)
	err := conn(ctx, r.pool).QueryRow(ctx, query, txID).
		Scan(&p.ID, &p.UserID, &p.EventID, &amount, &method, &status, &p.TransactionID, &p.CreatedAt)
	if err != nil {
		if mapped := mapNoRows(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	p.Amount = models.Cents(amount)
	p.PaymentMethod = models.PaymentMethod(method)
	p.Status = models.PaymentStatus(status)
	return &p, nil
}
