package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel_backend/internal/config"
	"travel_backend/internal/db"
	httpServer "travel_backend/internal/http"
	"travel_backend/internal/http/handlers"
	"travel_backend/internal/http/middleware"
	"travel_backend/internal/razorpay"
	"travel_backend/internal/repository"
	"travel_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	service.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Payment gateway; nil when credentials are missing, which makes the
	// payment endpoints answer service-unavailable instead of crashing.
	var gateway service.Gateway
	if client := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret); client != nil {
		gateway = client
	}

	var mailer service.Mailer = service.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}

	userRepo := repository.NewUserRepository(dbPool)
	txRepo := repository.NewTransactionRepository(dbPool)
	otpRepo := repository.NewOTPRepository(middleware.RedisClient(), cfg.OTPTTL)

	authService := service.NewAuthService(userRepo, otpRepo, mailer)
	paymentService := service.NewPaymentService(gateway, cfg.RazorpayKeySecret, txRepo, userRepo)

	h := handlers.NewHandler(dbPool, authService, paymentService)
	httpServer.RegisterRoutes(r, dbPool, h, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		log.Println("server started on port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}

	log.Println("server exited")
}
