package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vogiaan1904/swiftseats/internal/models"
)

type OutboxRepository struct {
	pool *pgxpool.Pool
}

func NewOutboxRepository(pool *pgxpool.Pool) *OutboxRepository {
	return &OutboxRepository{pool: pool}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, msg models.OutboxMessage) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO outbox (id, topic, message_key, payload) VALUES ($1, $2, $3, $4::text::jsonb)`,
		msg.ID, msg.Topic, msg.Key, string(msg.Payload),
	)
	if err != nil {
		return fmt.Errorf("enqueue outbox message: %w", err)
	}
	return nil
}

// FetchUnpublished locks up to limit pending messages, oldest first. Rows
// locked by another relay are skipped. Call inside a transaction.
func (r *OutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]models.OutboxMessage, error) {
	const query = `
SELECT id, topic, message_key, payload::text, created_at
FROM outbox
WHERE published_at IS NULL
ORDER BY created_at, id
LIMIT $1
FOR UPDATE SKIP LOCKED`

	rows, err := conn(ctx, r.pool).Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch outbox: %w", err)
	}
	defer rows.Close()

	var msgs []models.OutboxMessage
	for rows.Next() {
		var (
			m       models.OutboxMessage
			payload string
		)
		if err := rows.Scan(&m.ID, &m.Topic, &m.Key, &payload, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox: %w", err)
		}
		m.Payload = []byte(payload)
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch outbox: %w", err)
	}
	return msgs, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE outbox SET published_at = NOW() WHERE id = ANY($1::text[]::uuid[])`, ids)
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
