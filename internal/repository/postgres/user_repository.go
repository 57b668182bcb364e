package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vogiaan1904/swiftseats/internal/models"
	"github.com/vogiaan1904/swiftseats/internal/repository"
)

const userColumns = `id, username, email, password_hash, role, balance_cents, created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u       models.User
		role    string
		balance int64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &balance, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	u.Balance = models.Cents(balance)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	const stmt = `
INSERT INTO users (id, username, email, password_hash, role)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`

	err := conn(ctx, r.pool).QueryRow(ctx, stmt, u.ID, u.Username, u.Email, u.PasswordHash, string(u.Role)).
		Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	u.Balance = 0
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if mapped := mapNoRows(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if mapped := mapNoRows(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// CreditBalance adds amount to the user's balance in one statement and
// returns the new balance.
func (r *UserRepository) CreditBalance(ctx context.Context, id string, amount models.Cents) (models.Cents, error) {
	var balance int64
	err := conn(ctx, r.pool).QueryRow(ctx,
		`UPDATE users SET balance_cents = balance_cents + $2 WHERE id = $1 RETURNING balance_cents`,
		id, int64(amount),
	).Scan(&balance)
	if err != nil {
		if mapped := mapNoRows(err); mapped != err {
			return 0, mapped
		}
		return 0, fmt.Errorf("credit balance: %w", err)
	}
	return models.Cents(balance), nil
}
