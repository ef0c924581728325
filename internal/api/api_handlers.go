package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fittrack-backend/internal/database"
	"fittrack-backend/internal/models"
	"fittrack-backend/internal/observability"
)

// listWorkouts handles GET /api/workouts with optional search, type,
// mindate, maxdate and sort query parameters. Only the filters actually
// supplied constrain the result.
func (h *Handlers) listWorkouts(c echo.Context) error {
	filter := models.WorkoutFilter{
		Search:  c.QueryParam("search"),
		MinDate: c.QueryParam("mindate"),
		MaxDate: c.QueryParam("maxdate"),
		Sort:    c.QueryParam("sort"),
	}
	if raw := c.QueryParam("type"); raw != "" {
		typeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "type must be numeric")
		}
		filter.TypeID = typeID
	}

	start := time.Now()
	workouts, err := h.workouts.List(c.Request().Context(), filter)
	if err != nil {
		return h.serverError(c, err, "list workouts failed")
	}
	observability.ObserveQuery("list_workouts", time.Since(start).Seconds())

	if workouts == nil {
		workouts = []models.Workout{}
	}
	return c.JSON(http.StatusOK, workouts)
}

// listWorkoutTypes handles GET /api/workout-types
func (h *Handlers) listWorkoutTypes(c echo.Context) error {
	types, err := h.types.List(c.Request().Context())
	if err != nil {
		return h.serverError(c, err, "list workout types failed")
	}
	if types == nil {
		types = []models.WorkoutType{}
	}
	return c.JSON(http.StatusOK, types)
}

// getWorkout handles GET /api/workouts/:id
func (h *Handlers) getWorkout(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid workout id")
	}

	workout, err := h.workouts.GetByID(c.Request().Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "workout not found")
	}
	if err != nil {
		return h.serverError(c, err, "get workout failed")
	}
	return c.JSON(http.StatusOK, workout)
}

// getStats handles GET /api/stats/:username
func (h *Handlers) getStats(c echo.Context) error {
	start := time.Now()
	stats, err := h.stats.Lifetime(c.Request().Context(), c.Param("username"))
	if err != nil {
		return h.serverError(c, err, "lifetime stats failed")
	}
	observability.ObserveQuery("lifetime_stats", time.Since(start).Seconds())
	return c.JSON(http.StatusOK, stats)
}

// getTypeAnalytics handles GET /api/analytics/:username/types
func (h *Handlers) getTypeAnalytics(c echo.Context) error {
	out, err := h.stats.PerType(c.Request().Context(), c.Param("username"))
	if err != nil {
		return h.serverError(c, err, "per-type analytics failed")
	}
	if out == nil {
		out = []models.TypeStats{}
	}
	return c.JSON(http.StatusOK, out)
}

// getWeeklyAnalytics handles GET /api/analytics/:username/weekly
func (h *Handlers) getWeeklyAnalytics(c echo.Context) error {
	out, err := h.stats.Weekly(c.Request().Context(), c.Param("username"))
	if err != nil {
		return h.serverError(c, err, "weekly analytics failed")
	}
	if out == nil {
		out = []models.WeeklyBucket{}
	}
	return c.JSON(http.StatusOK, out)
}

// getMonthlyAnalytics handles GET /api/analytics/:username/monthly
func (h *Handlers) getMonthlyAnalytics(c echo.Context) error {
	out, err := h.stats.Monthly(c.Request().Context(), c.Param("username"))
	if err != nil {
		return h.serverError(c, err, "monthly analytics failed")
	}
	if out == nil {
		out = []models.MonthlyBucket{}
	}
	return c.JSON(http.StatusOK, out)
}

// getDailyAnalytics handles GET /api/analytics/:username/daily
func (h *Handlers) getDailyAnalytics(c echo.Context) error {
	out, err := h.stats.Daily(c.Request().Context(), c.Param("username"))
	if err != nil {
		return h.serverError(c, err, "daily analytics failed")
	}
	if out == nil {
		out = []models.DailyBucket{}
	}
	return c.JSON(http.StatusOK, out)
}
