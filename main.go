package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"fittrack-backend/internal/api"
	"fittrack-backend/internal/auth"
	"fittrack-backend/internal/config"
	"fittrack-backend/internal/database"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info().Str("host", cfg.DB.Host).Str("database", cfg.DB.Name).
		Int("pool_size", cfg.DB.PoolSize).Msg("connecting to database")
	store, err := database.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	userRepo := database.NewUserRepo(store)
	workoutRepo := database.NewWorkoutRepo(store)
	typeRepo := database.NewTypeRepo(store)
	statsRepo := database.NewStatsRepo(store)
	auditRepo := database.NewAuditRepo(store)
	sessionRepo := database.NewSessionRepo(store)

	authSvc := auth.NewService(userRepo, sessionRepo, auditRepo, cfg.SessionTTL, log)
	handlers := api.NewHandlers(workoutRepo, typeRepo, statsRepo, auditRepo, userRepo, authSvc, log)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	handlers.RegisterRoutes(e, auth.DefaultLoginLimiter())

	// Sweep expired sessions in the background.
	go func() {
		ticker := time.NewTicker(cfg.SessionTTL)
		defer ticker.Stop()
		for range ticker.C {
			n, err := sessionRepo.DeleteExpired(context.Background())
			if err != nil {
				log.Warn().Err(err).Msg("session sweep failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("removed", n).Msg("expired sessions removed")
			}
		}
	}()

	log.Info().Int("port", cfg.HTTPPort).Msg("starting FitTrack backend")
	if err := e.Start(fmt.Sprintf(":%d", cfg.HTTPPort)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
