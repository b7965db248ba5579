package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"options-trade-log-go/internal/auth"
	"options-trade-log-go/internal/config"
	"options-trade-log-go/internal/database"
	"options-trade-log-go/internal/logger"
	"options-trade-log-go/internal/server"
	"options-trade-log-go/internal/trades"
)

const devJWTSecret = "dev-secret-do-not-use-in-production"

func main() {
	// Secrets come from .env when present; viper picks them up via env vars.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	if cfg.Auth.JWTSecret == "" {
		log.Warn("auth.jwt_secret not set, using development fallback key")
		cfg.Auth.JWTSecret = devJWTSecret
	}

	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated")

	creds := auth.NewCredentialStore(db, cfg.Auth.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	repo := trades.NewRepository(db)
	srv := server.NewServer(&cfg, creds, tokens, repo, log)

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatal("API server failed", zap.Error(err))
	}
	log.Info("Server has been shut down")
}
