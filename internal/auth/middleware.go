package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"fittrack-backend/internal/models"
)

// ContextKeySession is where the resolved session lives on the request
// context. The value is immutable once set.
const ContextKeySession = "session"

// SessionCookie is the name of the HttpOnly cookie carrying the token
const SessionCookie = "session_token"

// RequireSession gates JSON consumers: a missing or invalid session is a
// plain 401.
func RequireSession(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := resolveSession(c, svc)
			if session == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}
			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

// RequirePage gates page-shaped endpoints: absence of a valid session
// redirects the caller to the login entry point instead of failing.
func RequirePage(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := resolveSession(c, svc)
			if session == nil {
				return c.Redirect(http.StatusFound, "/users/login")
			}
			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

func resolveSession(c echo.Context, svc *Service) *models.Session {
	token := TokenFromRequest(c)
	if token == "" {
		return nil
	}
	session, err := svc.ValidateToken(c.Request().Context(), token)
	if err != nil {
		return nil
	}
	return session
}

// TokenFromRequest extracts the session token from the Authorization
// header or the session cookie.
func TokenFromRequest(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	cookie, err := c.Cookie(SessionCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}

// CurrentUsername returns the username claim of the request's session, or
// empty when the request is unauthenticated.
func CurrentUsername(c echo.Context) string {
	session, ok := c.Get(ContextKeySession).(*models.Session)
	if !ok || session == nil {
		return ""
	}
	return session.Username
}
