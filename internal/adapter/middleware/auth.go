package middleware

import (
	"net/http"
	"strings"

	userDomain "paycrest-backend/internal/domain/user"
	authUsecase "paycrest-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

const (
	// context keys set by Authenticate
	CtxUserID = "auth.user_id"
	CtxRole   = "auth.role"
)

// Authenticate validates the bearer token and loads the user, rejecting
// missing/invalid tokens and deactivated accounts.
func Authenticate(auth *authUsecase.Usecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			uid, role, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			if _, err := auth.LookupActive(c.Request().Context(), uid); err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "user inactive or not found"})
			}
			c.Set(CtxUserID, uid)
			c.Set(CtxRole, role)
			return next(c)
		}
	}
}

// RequireRoles is the single capability gate applied in front of every
// protected route group.
func RequireRoles(roles ...userDomain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(userDomain.Role)
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "not authorized for this operation"})
		}
	}
}

// UserID returns the authenticated user's id from the request context.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(CtxUserID).(int64)
	return id
}
