package handlers

import (
	"travel_backend/internal/repository"
	"travel_backend/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB               *pgxpool.Pool
	AuthService      *service.AuthService
	PaymentService   *service.PaymentService
	UserRepo         *repository.UserRepository
	NotificationRepo *repository.NotificationRepository
}

func NewHandler(db *pgxpool.Pool, auth *service.AuthService, payments *service.PaymentService) *Handler {
	return &Handler{
		DB:               db,
		AuthService:      auth,
		PaymentService:   payments,
		UserRepo:         repository.NewUserRepository(db),
		NotificationRepo: repository.NewNotificationRepository(db),
	}
}

// getUserID extracts the caller identity set by the JWT middleware.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
