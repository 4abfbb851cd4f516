package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chirp-api/internal/application/delivery"
	"github.com/chirp-api/internal/application/notification"
	"github.com/chirp-api/internal/config"
	"github.com/chirp-api/internal/domain"
	"github.com/chirp-api/internal/infrastructure/email"
	"github.com/chirp-api/internal/infrastructure/memory"
	"github.com/chirp-api/internal/infrastructure/sns"
	"github.com/chirp-api/internal/infrastructure/toast"
	transporthttp "github.com/chirp-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("No .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		seed  []domain.Notification
		users []domain.User
	)
	if cfg.SeedData {
		seed = memory.Seed(time.Now().UTC())
		users = memory.SeedUsers()
	}
	repo := memory.NewNotificationRepo(seed...)
	userRepo := memory.NewUserRepo(users...)
	logger.Info("notification store ready", "records", repo.Len(), "users", len(users))

	deps := &transporthttp.Deps{
		NotificationRepo: repo,
		Users:            userRepo,
		Notifier:         toast.NewLogNotifier(logger),
		Deliverer:        newDeliverer(ctx, cfg, userRepo, logger),
		Logger:           logger,
	}

	router := transporthttp.NewRouter(ctx, cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "simulate_latency", cfg.SimulateLatency)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(cfg.LogLevel))
	opts := &slog.HandlerOptions{Level: level}
	if cfg.AppEnv == "development" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// newDeliverer wires the external channels. Channels that fail to initialise
// are disabled with a warning rather than stopping the server.
func newDeliverer(ctx context.Context, cfg *config.Config, users *memory.UserRepo, logger *slog.Logger) notification.Deliverer {
	if !cfg.DeliveryEnabled {
		return nil
	}

	var smsSender sns.SMSSender
	if s, err := sns.NewSender(ctx, cfg); err == nil {
		smsSender = s
	} else {
		logger.Warn("SNS sender not available", "err", err)
	}

	var mailer email.Sender
	if cfg.ResendAPIKey != "" {
		mailer = email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		mailer = email.NewSMTPSender(cfg)
	}

	return delivery.NewRouter(smsSender, mailer, users)
}
