package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
)

const reviewSelect = `
SELECT r.id, r.event_id, r.user_id, r.rating, r.review_text, r.created_at, e.title, u.username
FROM reviews r
JOIN events e ON e.id = r.event_id
JOIN users u ON u.id = r.user_id`

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create reports repository.ErrDuplicate when the user already reviewed the
// event.
func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) error {
	const stmt = `
INSERT INTO reviews (id, event_id, user_id, rating, review_text)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`

	err := conn(ctx, r.pool).QueryRow(ctx, stmt, rv.ID, rv.EventID, rv.UserID, rv.Rating, rv.Text).
		Scan(&rv.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return repository.ErrDuplicate
		case isForeignKeyViolation(err):
			return repository.ErrInvalidReference
		case isInvalidUUID(err):
			return repository.ErrInvalidID
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Review, error) {
	return r.list(ctx, reviewSelect+` WHERE r.event_id = $1 ORDER BY r.created_at, r.id`, eventID)
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	return r.list(ctx, reviewSelect+` WHERE r.user_id = $1 ORDER BY r.created_at DESC, r.id`, userID)
}

func (r *ReviewRepository) list(ctx context.Context, query string, arg string) ([]models.Review, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, arg)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, repository.ErrInvalidID
		}
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.EventID, &rv.UserID, &rv.Rating, &rv.Text, &rv.CreatedAt,
			&rv.EventTitle, &rv.Username); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, repository.ErrInvalidID
		}
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
