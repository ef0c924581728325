package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fittrack-backend/internal/auth"
	"fittrack-backend/internal/database"
	"fittrack-backend/internal/models"
	"fittrack-backend/internal/observability"
)

// myWorkouts handles GET /workouts/list for the current session's user
func (h *Handlers) myWorkouts(c echo.Context) error {
	username := auth.CurrentUsername(c)

	workouts, err := h.workouts.ListByUsername(c.Request().Context(), username)
	if err != nil {
		return h.serverError(c, err, "list my workouts failed")
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	return c.JSON(http.StatusOK, workouts)
}

// searchResults handles GET /workouts/search-result, the unauthenticated
// keyword/type/date-range search, always newest first.
func (h *Handlers) searchResults(c echo.Context) error {
	filter := models.WorkoutFilter{
		Search:  c.QueryParam("keyword"),
		MinDate: c.QueryParam("date_from"),
		MaxDate: c.QueryParam("date_to"),
		Sort:    "date",
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
		return h.serverError(c, err, "workout search failed")
	}
	observability.ObserveQuery("search_workouts", time.Since(start).Seconds())

	if workouts == nil {
		workouts = []models.Workout{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"keyword": filter.Search,
		"results": workouts,
	})
}

// addWorkout handles POST /workouts/add: validate, create, redirect to
// the listing. The owning user is taken from the session, never the body.
func (h *Handlers) addWorkout(c echo.Context) error {
	var req models.CreateWorkoutRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	if errs := auth.ValidateWorkout(&req); errs != nil {
		return fieldErrors(c, http.StatusBadRequest, errs)
	}

	username := auth.CurrentUsername(c)
	_, err := h.workouts.Create(c.Request().Context(), username, req)
	if errors.Is(err, database.ErrNotFound) {
		// Session outlived its user row.
		return errorJSON(c, http.StatusNotFound, "user not found")
	}
	if err != nil {
		return h.serverError(c, err, "create workout failed")
	}

	return c.Redirect(http.StatusFound, "/workouts/list")
}

// deleteWorkout handles POST /workouts/delete/:id. The acting session
// must own the workout; a mismatch is an explicit forbidden outcome,
// distinct from not-found, and the row is untouched.
func (h *Handlers) deleteWorkout(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid workout id")
	}

	username := auth.CurrentUsername(c)
	ctx := c.Request().Context()

	owned, err := h.workouts.OwnedBy(ctx, id, username)
	if err != nil {
		return h.serverError(c, err, "verify workout owner failed")
	}
	if !owned {
		if _, err := h.workouts.GetByID(ctx, id); errors.Is(err, database.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "workout not found")
		}
		return errorJSON(c, http.StatusForbidden, "not allowed to delete this workout")
	}

	if err := h.workouts.Delete(ctx, id); err != nil {
		return h.serverError(c, err, "delete workout failed")
	}

	return c.Redirect(http.StatusFound, "/workouts/list")
}

// dashboard handles GET /workouts/dashboard: lifetime totals plus the
// five most recent workouts.
func (h *Handlers) dashboard(c echo.Context) error {
	username := auth.CurrentUsername(c)
	ctx := c.Request().Context()

	stats, err := h.stats.Lifetime(ctx, username)
	if err != nil {
		return h.serverError(c, err, "dashboard stats failed")
	}

	recent, err := h.workouts.Recent(ctx, username, 5)
	if err != nil {
		return h.serverError(c, err, "recent workouts failed")
	}
	if recent == nil {
		recent = []models.Workout{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"username":        username,
		"stats":           stats,
		"recent_workouts": recent,
	})
}

// exportCSV handles GET /workouts/export/csv as a file attachment
func (h *Handlers) exportCSV(c echo.Context) error {
	username := auth.CurrentUsername(c)

	workouts, err := h.workouts.ListByUsername(c.Request().Context(), username)
	if err != nil {
		return h.serverError(c, err, "export workouts failed")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="workouts-export.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(exportWorkoutsCSV(workouts)))
}
