package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func IsAdmin(user *AppUser) bool {
	if user == nil {
		return false
	}
	return user.Role == "admin"
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := c.(*AppContext).User
		if user == nil {
			return c.JSON(http.StatusUnauthorized, authError{
				Error:   "MISSING_TOKEN",
				Message: "Authorization header with bearer token required",
			})
		}
		if !IsAdmin(user) {
			return c.JSON(http.StatusForbidden, authError{
				Error:   "FORBIDDEN",
				Message: "Admin access required",
			})
		}
		return next(c)
	}
}
