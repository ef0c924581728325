package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"fittrack-backend/internal/auth"
	"fittrack-backend/internal/database"
	"fittrack-backend/internal/models"
)

// registerHandler handles POST /users/register
func (h *Handlers) registerHandler(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		var verrs auth.ValidationErrors
		if errors.As(err, &verrs) {
			return fieldErrors(c, http.StatusBadRequest, verrs)
		}
		return h.serverError(c, err, "registration failed")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("Hello %s %s, you are now registered", user.FirstName, user.LastName),
	})
}

// loginHandler handles POST /users/login. On success it sets the session
// cookie and redirects to the dashboard; on denial the response is the
// same generic message whether the user is unknown or the password is
// wrong.
func (h *Handlers) loginHandler(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return errorJSON(c, http.StatusBadRequest, "username and password are required")
	}

	result, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return errorJSON(c, http.StatusUnauthorized, "login failed")
		}
		return h.serverError(c, err, "login failed")
	}

	if h.limiter != nil {
		h.limiter.RecordSuccess(c.RealIP())
	}
	c.SetCookie(sessionCookie(c, result.Token, result.Session.ExpiresAt))
	return c.Redirect(http.StatusFound, "/workouts/dashboard")
}

// logoutHandler handles POST /users/logout
func (h *Handlers) logoutHandler(c echo.Context) error {
	token := auth.TokenFromRequest(c)
	if token != "" {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil &&
			!errors.Is(err, database.ErrSessionNotFound) {
			h.log.Warn().Err(err).Msg("logout failed")
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.Redirect(http.StatusFound, "/")
}

// listUsers handles GET /users/list, exposing only public fields
func (h *Handlers) listUsers(c echo.Context) error {
	users, err := h.users.ListPublic(c.Request().Context())
	if err != nil {
		return h.serverError(c, err, "list users failed")
	}
	if users == nil {
		users = []models.PublicUser{}
	}
	return c.JSON(http.StatusOK, users)
}

// auditHistory handles GET /users/audit, newest attempts first
func (h *Handlers) auditHistory(c echo.Context) error {
	entries, err := h.audit.List(c.Request().Context())
	if err != nil {
		return h.serverError(c, err, "audit history failed")
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
