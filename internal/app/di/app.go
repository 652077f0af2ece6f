package di

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"prep_tracker/internal/app/router"
	"prep_tracker/internal/config"
	authadapters "prep_tracker/internal/feature/auth/adapters"
	authentity "prep_tracker/internal/feature/auth/domain/entity"
	authhandler "prep_tracker/internal/feature/auth/transport/handler"
	authusecase "prep_tracker/internal/feature/auth/usecase"
	dashboardhandler "prep_tracker/internal/feature/dashboard/transport/handler"
	dashboardusecase "prep_tracker/internal/feature/dashboard/usecase"
	trackeradapters "prep_tracker/internal/feature/tracker/adapters"
	trackerhandler "prep_tracker/internal/feature/tracker/transport/handler"
	platformhandler "prep_tracker/internal/platform/http/handler"
	jwtmw "prep_tracker/internal/platform/jwt"
)

// App is the assembled HTTP application.
type App struct {
	Engine  *gin.Engine
	Stores  Stores
	Auth    authhandler.AuthUsecase
	Revoker authusecase.TokenRevoker
}

// NewApp wires repositories, usecases and handlers into a router. rdb may be nil.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) (*App, error) {
	// Repository
	userRepo := authadapters.NewUserGorm(db)
	revoker := NewTokenRevoker(rdb, db)
	stores := NewStores(db, rdb, cfg.Redis.CacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), revoker)
	dashboardUC := dashboardusecase.NewDashboardUsecase(dashboardusecase.Sources{
		DSA:      stores.DSA,
		CS:       stores.CS,
		Projects: stores.Projects,
		Mocks:    stores.Mocks,
		Logs:     stores.Logs,
	})

	// Handler
	var pinger platformhandler.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}
	handlers := router.Handlers{
		Health:    platformhandler.NewHealthHandler(pinger),
		Auth:      authhandler.NewAuthHandler(authUC),
		Dashboard: dashboardhandler.NewDashboardHandler(dashboardUC),
		Topics:    trackerhandler.NewTopicHandler(stores.Topics),
		Resources: map[string]router.ResourceHandler{
			"dsa":      trackerhandler.NewResourceHandler("dsa", stores.DSA),
			"cs":       trackerhandler.NewResourceHandler("cs", stores.CS),
			"projects": trackerhandler.NewResourceHandler("projects", stores.Projects),
			"mocks":    trackerhandler.NewResourceHandler("mocks", stores.Mocks),
			"logs":     trackerhandler.NewResourceHandler("logs", stores.Logs),
			"sections": trackerhandler.NewResourceHandler("sections", stores.Sections),
		},
	}

	engine, err := router.NewRouter(handlers, router.Options{
		JWTSecret:  cfg.Auth.JWTSecret,
		Revocation: revoker,
		CORS:       NewCORSConfig(cfg.CORS),
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	return &App{Engine: engine, Stores: stores, Auth: authUC, Revoker: revoker}, nil
}

// Models lists every table to migrate.
func Models() []any {
	return append([]any{
		&authentity.User{},
		&authadapters.RevokedTokenModel{},
	}, trackeradapters.Models()...)
}
