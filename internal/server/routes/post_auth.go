package routes

import (
	"net/http"

	"github.com/brimfrost/backend/internal/db"
	"github.com/brimfrost/backend/internal/server/middleware"
	"github.com/brimfrost/backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type sessionResponse struct {
	Token string  `json:"token"`
	User  db.User `json:"user"`
}

func LoginHandler(c echo.Context) error {
	type loginBody struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	data := new(loginBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
	}
	if err := c.Validate(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	user, err := q.GetUserByEmail(ctx, data.Email)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	}

	token, err := middleware.IssueToken(app.JWTSecret, sessionUser(user))
	if err != nil {
		logger.Error("Failed to sign token", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}

	return ok(c, http.StatusOK, sessionResponse{Token: token, User: user})
}

func RegisterHandler(c echo.Context) error {
	type registerBody struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
		Name     string `json:"name" validate:"required"`
	}

	data := new(registerBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email, password and name are required")
	}
	if err := c.Validate(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email, password and name are required")
	}
	if len(data.Password) < 8 {
		return fail(c, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	count, err := q.CountUsersByEmail(ctx, data.Email)
	if err != nil {
		logger.Error("Failed to check email", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	if count > 0 {
		return fail(c, http.StatusConflict, "USER_EXISTS", "A user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcryptCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}

	user, err := q.CreateUser(ctx, db.CreateUserParams{
		Email:        data.Email,
		PasswordHash: string(hash),
		Name:         data.Name,
	})
	if err != nil {
		logger.Error("Failed to create user", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}

	token, err := middleware.IssueToken(app.JWTSecret, sessionUser(user))
	if err != nil {
		logger.Error("Failed to sign token", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}

	return ok(c, http.StatusCreated, sessionResponse{Token: token, User: user})
}

func sessionUser(u db.User) middleware.AppUser {
	role := "user"
	if u.IsAdmin {
		role = "admin"
	}
	return middleware.AppUser{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   role,
	}
}
