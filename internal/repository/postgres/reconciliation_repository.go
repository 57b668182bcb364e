package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
)

type ReconciliationRepository struct {
	pool *pgxpool.Pool
}

func NewReconciliationRepository(pool *pgxpool.Pool) *ReconciliationRepository {
	return &ReconciliationRepository{pool: pool}
}

// Begin inserts the row for rec.TransactionID unless one exists. It reports
// whether this call created it. A concurrent Begin for the same id blocks on
// the primary key until the other transaction finishes.
func (r *ReconciliationRepository) Begin(ctx context.Context, rec *models.Reconciliation) (bool, error) {
	const stmt = `
INSERT INTO reconciliations (transaction_id, state, event_id, user_id, quantity, amount_cents)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (transaction_id) DO NOTHING
RETURNING created_at, updated_at`

	err := conn(ctx, r.pool).QueryRow(ctx, stmt,
		rec.TransactionID, string(rec.State), rec.EventID, rec.UserID, rec.Quantity, int64(rec.Amount),
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if mapNoRows(err) == repository.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("begin reconciliation: %w", err)
	}
	return true, nil
}

func (r *ReconciliationRepository) Get(ctx context.Context, txID string) (*models.Reconciliation, error) {
	const query = `
SELECT transaction_id, state, event_id, user_id, quantity, amount_cents, overbooked, created_at, updated_at
FROM reconciliations WHERE transaction_id = $1`

	var (
		rec    models.Reconciliation
		state  string
		amount int64
	)
	err := conn(ctx, r.pool).QueryRow(ctx, query, txID).Scan(&rec.TransactionID, &state, &rec.EventID,
		&rec.UserID, &rec.Quantity, &amount, &rec.Overbooked, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if mapped := mapNoRows(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("get reconciliation: %w", err)
	}
	rec.State = models.ReconciliationState(state)
	rec.Amount = models.Cents(amount)
	return &rec, nil
}

// Advance moves the row from one state to the next. It fails with
// repository.ErrConflict if the row is not currently in from.
func (r *ReconciliationRepository) Advance(ctx context.Context, txID string, from, to models.ReconciliationState) error {
	if !from.CanAdvanceTo(to) {
		return fmt.Errorf("advance reconciliation: illegal transition %s -> %s", from, to)
	}

	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE reconciliations SET state = $3, updated_at = NOW() WHERE transaction_id = $1 AND state = $2`,
		txID, string(from), string(to),
	)
	if err != nil {
		return fmt.Errorf("advance reconciliation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrConflict
	}
	return nil
}

func (r *ReconciliationRepository) MarkOverbooked(ctx context.Context, txID string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE reconciliations SET overbooked = TRUE, updated_at = NOW() WHERE transaction_id = $1`, txID)
	if err != nil {
		return fmt.Errorf("mark overbooked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
