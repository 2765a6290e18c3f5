package domain

import "time"

type User struct {
	ID          int64      `db:"id" json:"id"`
	UserCode    string     `db:"user_code" json:"user_code"`
	Email       string     `db:"email" json:"email"`
	PhoneNumber string     `db:"phone_number" json:"phone_number"`
	FirstName   string     `db:"first_name" json:"first_name"`
	LastName    string     `db:"last_name" json:"last_name,omitempty"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	EmailVerified bool       `db:"email_verified" json:"email_verified"`
	// Balance is in major currency units (rupees, two decimal places).
	// Mutated only through atomic SQL increments at settlement time.
	Balance        float64    `db:"balance" json:"balance"`
	IsAdmin        bool       `db:"is_admin" json:"is_admin,omitempty"`
	IsBlocked      bool       `db:"is_blocked" json:"-"`
	SuspendedUntil *time.Time `db:"suspended_until" json:"-"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
