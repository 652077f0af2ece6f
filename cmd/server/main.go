package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"prep_tracker/internal/app/di"
	"prep_tracker/internal/app/seed"
	"prep_tracker/internal/config"
	"prep_tracker/internal/platform/db"
	jwtmw "prep_tracker/internal/platform/jwt"
	"prep_tracker/internal/platform/logger"
	infraredis "prep_tracker/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log, os.Stderr)
	log.Info("config loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	provider, err := db.NewProvider(db.Config{
		Driver:         cfg.Database.Driver,
		DSN:            cfg.Database.DSN,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Name:           cfg.Database.Name,
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		SSLMode:        cfg.Database.SSLMode,
		InstanceName:   cfg.Database.InstanceName,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()
	gdb, err := provider.Get()
	if err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		if err := gdb.AutoMigrate(di.Models()...); err != nil {
			return err
		}
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		tmp, err := infraredis.NewRedisClient(ctx, infraredis.Config{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	app, err := di.NewApp(cfg, gdb, rdb, log)
	if err != nil {
		return err
	}

	if cfg.Seed.Demo {
		tokens := jwtmw.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if _, err := seed.Demo(ctx, gdb, seed.GormDeps(tokens), time.Now()); err != nil {
			return err
		}
	}

	go di.RunRevocationSweeper(ctx, app.Revoker, cfg.Auth.RevocationGC)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
