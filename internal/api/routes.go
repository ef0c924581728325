package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fittrack-backend/internal/auth"
)

// RegisterRoutes wires every endpoint, mirroring the public /api surface,
// the public /users and search pages, and the session-protected /workouts
// pages.
func (h *Handlers) RegisterRoutes(e *echo.Echo, loginLimiter *auth.LoginLimiter) {
	h.limiter = loginLimiter

	e.GET("/healthz", healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Read/query endpoints (public JSON)
	apiGroup := e.Group("/api")
	apiGroup.GET("/workouts", h.listWorkouts)
	apiGroup.GET("/workout-types", h.listWorkoutTypes)
	apiGroup.GET("/workouts/:id", h.getWorkout)
	apiGroup.GET("/stats/:username", h.getStats)
	apiGroup.GET("/analytics/:username/types", h.getTypeAnalytics)
	apiGroup.GET("/analytics/:username/weekly", h.getWeeklyAnalytics)
	apiGroup.GET("/analytics/:username/monthly", h.getMonthlyAnalytics)
	apiGroup.GET("/analytics/:username/daily", h.getDailyAnalytics)

	// Public user endpoints
	users := e.Group("/users")
	users.POST("/register", h.registerHandler)
	users.POST("/login", h.loginHandler, loginLimiter.Middleware())
	users.GET("/audit", h.auditHistory)
	users.POST("/logout", h.logoutHandler, auth.RequirePage(h.auth))
	users.GET("/list", h.listUsers, auth.RequirePage(h.auth))

	// Workout pages
	workouts := e.Group("/workouts")
	workouts.GET("/search-result", h.searchResults)
	workouts.GET("/:id", h.getWorkout)

	protected := workouts.Group("", auth.RequirePage(h.auth))
	protected.GET("/list", h.myWorkouts)
	protected.GET("/types", h.listWorkoutTypes)
	protected.POST("/add", h.addWorkout)
	protected.POST("/delete/:id", h.deleteWorkout)
	protected.GET("/export/csv", h.exportCSV)
	protected.GET("/dashboard", h.dashboard)
}
