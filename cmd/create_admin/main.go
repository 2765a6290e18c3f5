package main

import (
	"context"
	"log"
	"os"

	"travel_backend/internal/db"
	"travel_backend/internal/domain"
	"travel_backend/internal/repository"
	"travel_backend/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// Seeds an admin user and prints a token for it. Expects DATABASE_URL,
// JWT_SECRET, ADMIN_EMAIL and ADMIN_PASSWORD in the environment.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	existing, err := repo.GetByCredential(ctx, email)
	if err != nil {
		log.Fatalf("lookup failed: %v", err)
	}

	var u *domain.User
	if existing != nil {
		u = existing
		log.Printf("admin already exists id=%d\n", u.ID)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password failed: %v", err)
		}

		u = &domain.User{
			UserCode:      "ADMIN001",
			Email:         email,
			FirstName:     "Admin",
			PasswordHash:  string(hash),
			EmailVerified: true,
		}
		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create admin failed: %v", err)
		}

		if _, err := pool.Exec(ctx, `UPDATE users SET is_admin = true WHERE id = $1`, u.ID); err != nil {
			log.Fatalf("grant admin failed: %v", err)
		}

		log.Printf("admin created id=%d\n", u.ID)
	}

	service.InitJWT(os.Getenv("JWT_SECRET"))
	token, err := service.GenerateJWT(u.ID, true)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
