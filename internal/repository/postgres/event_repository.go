package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
)

const eventColumns = `id, title, description, category, address, city, starts_at,
	price_cents, available_seats, booked_seats, organizer_id, image_url, created_at`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var (
		e     models.Event
		price int64
	)
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.Address, &e.City, &e.Date,
		&price, &e.AvailableSeats, &e.BookedSeats, &e.OrganizerID, &e.ImageURL, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Price = models.Cents(price)
	return &e, nil
}

func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	const stmt = `
INSERT INTO events (id, title, description, category, address, city, starts_at,
	price_cents, available_seats, booked_seats, organizer_id, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, $11)
RETURNING created_at`

	err := conn(ctx, r.pool).QueryRow(ctx, stmt,
		e.ID, e.Title, e.Description, e.Category, e.Address, e.City, e.Date,
		int64(e.Price), e.AvailableSeats, e.OrganizerID, e.ImageURL,
	).Scan(&e.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrInvalidReference
		}
		if isInvalidUUID(err) {
			return repository.ErrInvalidID
		}
		return fmt.Errorf("create event: %w", err)
	}
	e.BookedSeats = 0
	return nil
}

func (r *EventRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	e, err := scanEvent(conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if mapped := mapNoRows(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// List matches every non-empty filter field as a case-insensitive substring.
// Location matches either the city or the address. OrganizerID matches
// exactly.
func (r *EventRepository) List(ctx context.Context, f models.EventFilter) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
WHERE ($1 = '' OR category ILIKE '%' || $1 || '%')
  AND ($2 = '' OR city ILIKE '%' || $2 || '%' OR address ILIKE '%' || $2 || '%')
  AND ($3 = '' OR title ILIKE '%' || $3 || '%')
  AND ($4 = '' OR organizer_id::text = $4)
ORDER BY starts_at, id`

	rows, err := conn(ctx, r.pool).Query(ctx, query, f.Category, f.Location, f.Name, f.OrganizerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Update rewrites the editable fields. Capacity cannot drop below the seats
// already booked; that case reports repository.ErrConflict.
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	stmt := `
UPDATE events SET title = $2, description = $3, category = $4, address = $5, city = $6,
	starts_at = $7, price_cents = $8, available_seats = $9, image_url = $10
WHERE id = $1 AND booked_seats <= $9
RETURNING ` + eventColumns

	updated, err := scanEvent(conn(ctx, r.pool).QueryRow(ctx, stmt,
		e.ID, e.Title, e.Description, e.Category, e.Address, e.City, e.Date,
		int64(e.Price), e.AvailableSeats, e.ImageURL,
	))
	if err == nil {
		*e = *updated
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isInvalidUUID(err) {
			return repository.ErrInvalidID
		}
		return fmt.Errorf("update event: %w", err)
	}

	if _, getErr := r.Get(ctx, e.ID); getErr != nil {
		return getErr
	}
	return repository.ErrConflict
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrInvalidReference
		}
		if isInvalidUUID(err) {
			return repository.ErrInvalidID
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// IncrementBookedSeats adds qty to booked_seats in a single statement and
// returns the event as it is after the increment.
func (r *EventRepository) IncrementBookedSeats(ctx context.Context, id string, qty int) (*models.Event, error) {
	stmt := `UPDATE events SET booked_seats = booked_seats + $2 WHERE id = $1 RETURNING ` + eventColumns

	e, err := scanEvent(conn(ctx, r.pool).QueryRow(ctx, stmt, id, qty))
	if err != nil {
		if mapped := mapNoRows(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("increment booked seats: %w", err)
	}
	return e, nil
}
