// Package main is the entry point for the Boss Bitch sync daemon.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/bossbitch/backend/config"
	"github.com/bossbitch/backend/internal/infra/db"
	"github.com/bossbitch/backend/internal/infra/dependency"
	"github.com/bossbitch/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Boss Bitch sync daemon",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Local store: always required, the daemon is unusable without it
	localDB, err := db.NewSQLiteConnection(&cfg.Local)
	if err != nil {
		slog.Error("Failed to open local database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := localDB.Close(); err != nil {
			slog.Error("Failed to close local database", "error", err)
		}
	}()

	if err := localDB.AutoMigrate(
		&model.LocalRecordModel{},
		&model.SyncActionModel{},
	); err != nil {
		slog.Error("Failed to run local database migrations", "error", err)
		os.Exit(1)
	}

	// Remote store: opened lazily, the daemon starts offline when the
	// backend is unreachable
	remoteDB, err := db.NewPostgresConnection(&cfg.Remote)
	if err != nil {
		slog.Error("Failed to configure remote database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := remoteDB.Close(); err != nil {
			slog.Error("Failed to close remote database", "error", err)
		}
	}()

	if remoteDB.HealthCheck() {
		if err := remoteDB.AutoMigrate(
			&model.UserModel{},
			&model.RefreshTokenModel{},
			&model.PasswordResetTokenModel{},
			&model.GoalModel{},
			&model.PreferencesModel{},
			&model.IncomeSourceModel{},
			&model.DailyEntryModel{},
			&model.MonthlyEntryModel{},
		); err != nil {
			slog.Error("Failed to run remote database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Remote database migrations completed successfully")
	} else {
		slog.Warn("Remote database unreachable, skipping migrations until it returns")
	}

	// Redis backs the login rate limiter
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}()

	// Wire everything
	injector, err := dependency.NewInjector(cfg, localDB, remoteDB, redisClient)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	// Start the connectivity monitor; regaining the remote triggers a
	// replay of queued offline actions
	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	injector.Monitor.Start(monitorCtx)
	defer stopMonitor()

	// Periodically drop expired refresh and reset tokens
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				if !injector.Monitor.Online() {
					continue
				}
				if err := injector.Tokens.PurgeExpired(monitorCtx, time.Now().UTC()); err != nil {
					slog.Warn("Failed to purge expired tokens", "error", err)
				}
			}
		}
	}()

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	injector.Monitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
