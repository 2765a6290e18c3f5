package repository

import (
	"context"
	"errors"

	"travel_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, user_code, email, COALESCE(phone_number, ''),
	COALESCE(first_name, ''), COALESCE(last_name, ''), password_hash,
	email_verified, balance, is_admin, is_blocked, suspended_until, created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (user_code, email, phone_number, first_name, last_name, password_hash, email_verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		u.UserCode, u.Email, u.PhoneNumber, u.FirstName, u.LastName, u.PasswordHash, u.EmailVerified,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByCredential looks up a user by email or phone number. Login accepts
// either.
func (r *UserRepository) GetByCredential(ctx context.Context, credential string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 OR phone_number = $1`, credential)
	return scanUser(row)
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE phone_number = $1)`, phone).Scan(&exists)
	return exists, err
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET email_verified = true WHERE email = $1`, email)
	return err
}

// CreditBalance atomically adds a minor-unit amount to the user's balance,
// converting to major units in SQL. A single UPDATE, never read-modify-write,
// so concurrent settlements cannot lose updates.
func (r *UserRepository) CreditBalance(ctx context.Context, userID int64, amountPaise int64) (float64, error) {
	var newBalance float64
	err := r.db.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1::numeric / 100 WHERE id = $2 RETURNING balance`,
		amountPaise, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return newBalance, nil
}

func (r *UserRepository) GetBalance(ctx context.Context, userID int64) (float64, error) {
	var balance float64
	err := r.db.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID, &u.UserCode, &u.Email, &u.PhoneNumber,
		&u.FirstName, &u.LastName, &u.PasswordHash,
		&u.EmailVerified, &u.Balance, &u.IsAdmin, &u.IsBlocked, &u.SuspendedUntil, &u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
