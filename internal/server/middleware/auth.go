package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type authError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, authError{
				Error:   "MISSING_TOKEN",
				Message: "Authorization header with bearer token required",
			})
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		app := c.(*AppContext).App
		keyfn := hmacKeyfunc(app.JWTSecret)
		if app.Key != nil {
			keyfn = (*app.Key).Keyfunc
		}

		parsed, err := jwt.Parse(token, keyfn)
		if err != nil || !parsed.Valid {
			return c.JSON(http.StatusUnauthorized, authError{
				Error:   "INVALID_TOKEN",
				Message: "Token is invalid or expired",
			})
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, authError{
				Error:   "INVALID_TOKEN",
				Message: "Token is invalid or expired",
			})
		}

		user, err := userFromClaims(claims)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, authError{
				Error:   "INVALID_TOKEN",
				Message: "Token is invalid or expired",
			})
		}

		c.(*AppContext).User = user
		return next(c)
	}
}

func hmacKeyfunc(secret []byte) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	}
}
