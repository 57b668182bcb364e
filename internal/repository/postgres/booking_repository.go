package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	const stmt = `
INSERT INTO bookings (id, event_id, user_id, number_of_seats, total_price_cents, status, payment_status, transaction_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING booking_date`

	err := conn(ctx, r.pool).QueryRow(ctx, stmt,
		b.ID, b.EventID, b.UserID, b.NumberOfSeats, int64(b.TotalPrice),
		string(b.Status), string(b.PaymentStatus), b.TransactionID,
	).Scan(&b.BookingDate)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return repository.ErrDuplicate
		case isForeignKeyViolation(err):
			return repository.ErrInvalidReference
		case isInvalidUUID(err):
			return repository.ErrInvalidID
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Booking, error) {
	const query = `
SELECT id, event_id, user_id, booking_date, number_of_seats, total_price_cents, status, payment_status, transaction_id
FROM bookings WHERE event_id = $1
ORDER BY booking_date, id`

	rows, err := conn(ctx, r.pool).Query(ctx, query, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, repository.ErrInvalidID
		}
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var (
			b                     models.Booking
			total                 int64
			status, paymentStatus string
		)
		if err := rows.Scan(&b.ID, &b.EventID, &b.UserID, &b.BookingDate, &b.NumberOfSeats,
			&total, &status, &paymentStatus, &b.TransactionID); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.TotalPrice = models.Cents(total)
		b.Status = models.BookingStatus(status)
		b.PaymentStatus = models.BookingPaymentStatus(paymentStatus)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, repository.ErrInvalidID
		}
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
