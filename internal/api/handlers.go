// Package api exposes the HTTP surface of the FitTrack backend.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"fittrack-backend/internal/auth"
	"fittrack-backend/internal/models"
)

// WorkoutStore is the slice of workout persistence the handlers need
type WorkoutStore interface {
	List(ctx context.Context, filter models.WorkoutFilter) ([]models.Workout, error)
	ListByUsername(ctx context.Context, username string) ([]models.Workout, error)
	Recent(ctx context.Context, username string, n int) ([]models.Workout, error)
	GetByID(ctx context.Context, id int64) (*models.Workout, error)
	Create(ctx context.Context, username string, req models.CreateWorkoutRequest) (int64, error)
	OwnedBy(ctx context.Context, id int64, username string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// TypeStore reads workout type reference data
type TypeStore interface {
	List(ctx context.Context) ([]models.WorkoutType, error)
}

// StatsStore computes the aggregate analytics views
type StatsStore interface {
	Lifetime(ctx context.Context, username string) (*models.LifetimeStats, error)
	PerType(ctx context.Context, username string) ([]models.TypeStats, error)
	Weekly(ctx context.Context, username string) ([]models.WeeklyBucket, error)
	Monthly(ctx context.Context, username string) ([]models.MonthlyBucket, error)
	Daily(ctx context.Context, username string) ([]models.DailyBucket, error)
}

// AuditStore reads the audit history
type AuditStore interface {
	List(ctx context.Context) ([]models.AuditEntry, error)
}

// UserDirectory reads the public user listing
type UserDirectory interface {
	ListPublic(ctx context.Context) ([]models.PublicUser, error)
}

// Handlers holds every dependency of the HTTP layer explicitly
type Handlers struct {
	workouts WorkoutStore
	types    TypeStore
	stats    StatsStore
	audit    AuditStore
	users    UserDirectory
	auth     *auth.Service
	limiter  *auth.LoginLimiter
	log      zerolog.Logger
}

// NewHandlers builds the handler set
func NewHandlers(workouts WorkoutStore, types TypeStore, stats StatsStore, audit AuditStore, users UserDirectory, authSvc *auth.Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		workouts: workouts,
		types:    types,
		stats:    stats,
		audit:    audit,
		users:    users,
		auth:     authSvc,
		log:      log,
	}
}

// healthCheck handles GET /healthz
func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// errorJSON writes a single-message error body
func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// fieldErrors writes field-level validation messages
func fieldErrors(c echo.Context, status int, errs auth.ValidationErrors) error {
	return c.JSON(status, map[string]any{"errors": errs})
}

// serverError logs the real failure for operators and returns a generic
// body; raw driver errors never reach a response.
func (h *Handlers) serverError(c echo.Context, err error, what string) error {
	h.log.Error().Err(err).Str("path", c.Path()).Msg(what)
	return errorJSON(c, http.StatusInternalServerError, "internal server error")
}

// sessionCookie builds the HttpOnly cookie carrying the session token
func sessionCookie(c echo.Context, token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteStrictMode,
		Expires:  expiresAt,
	}
}
