package routes

import (
	"net/http"

	"github.com/brimfrost/backend/internal/db"
	"github.com/brimfrost/backend/internal/server/middleware"
	"github.com/brimfrost/backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

func GetUsersHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	users, err := db.New(conn).ListUsers(ctx)
	if err != nil {
		logger.Error("Failed to list users", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	if users == nil {
		users = []db.User{}
	}
	return ok(c, http.StatusOK, users)
}

func CreateUserHandler(c echo.Context) error {
	type createUserBody struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
		Name     string `json:"name" validate:"required"`
		IsAdmin  bool   `json:"is_admin"`
	}

	data := new(createUserBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if len(data.Password) < 8 {
		return fail(c, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

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
		IsAdmin:      data.IsAdmin,
	})
	if err != nil {
		logger.Error("Failed to create user", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	return ok(c, http.StatusCreated, user)
}

func EditUserHandler(c echo.Context) error {
	type editUserBody struct {
		ID       int64   `param:"id" validate:"required,numeric"`
		Email    *string `json:"email" validate:"omitempty,email"`
		Name     *string `json:"name"`
		Password *string `json:"password"`
		IsAdmin  *bool   `json:"is_admin"`
	}

	data := new(editUserBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	if _, err := q.GetUserByID(ctx, data.ID); err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	}

	var passwordHash *string
	if data.Password != nil {
		if len(*data.Password) < 8 {
			return fail(c, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*data.Password), bcryptCost)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
		}
		hashed := string(hash)
		passwordHash = &hashed
	}

	user, err := q.UpdateUser(ctx, db.UpdateUserParams{
		ID:           data.ID,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: passwordHash,
		IsAdmin:      data.IsAdmin,
	})
	if err != nil {
		logger.Error("Failed to update user", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	return ok(c, http.StatusOK, user)
}

func DeleteUserHandler(c echo.Context) error {
	type deleteUserParams struct {
		ID int64 `param:"id" validate:"required,numeric"`
	}

	params := new(deleteUserParams)
	if err := c.Bind(params); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
	}
	if err := c.Validate(params); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
	}

	user := c.(*middleware.AppContext).User
	if user != nil && user.UserID == params.ID {
		return fail(c, http.StatusBadRequest, "SELF_DELETE", "You cannot delete your own account")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	if _, err := q.GetUserByID(ctx, params.ID); err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	}
	if err := q.DeleteUser(ctx, params.ID); err != nil {
		logger.Error("Failed to delete user", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	return ok(c, http.StatusOK, map[string]int64{"deleted": params.ID})
}
