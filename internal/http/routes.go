package http

import (
	"travel_backend/internal/config"
	"travel_backend/internal/http/handlers"
	"travel_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the HTTP surface: health checks, auth, notifications
// and the payment order lifecycle.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, h *handlers.Handler, cfg *config.Config, version string) {
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth, with a tighter limit against credential stuffing
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authRL, h.Signup)
		auth.POST("/login", authRL, h.Login)
		auth.POST("/otp", authRL, h.RequestOTP)
		auth.POST("/otp/verify", authRL, h.VerifyOTP)
	}

	v1.GET("/me", middleware.JWT(), h.Me)

	notifications := v1.Group("/notifications")
	notifications.Use(middleware.JWT())
	{
		notifications.GET("", h.ListNotifications)
		notifications.PATCH("/read-all", h.MarkAllNotificationsRead)
		notifications.PATCH("/:id/read", h.MarkNotificationRead)
	}

	payments := v1.Group("/payments")
	payments.Use(middleware.JWT())
	{
		payments.POST("/order", h.CreateOrder)
		payments.POST("/verify", h.VerifyPayment)
		payments.POST("/:id/refund-request", h.RequestRefund)
		payments.GET("/transactions", h.MyTransactions)
		payments.POST("/refund", middleware.Admin(), h.Refund)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.JWT(), middleware.Admin())
	{
		admin.GET("/transactions", h.AllTransactions)
		admin.GET("/users/:id/transactions", h.UserTransactions)
	}
}
