package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brimfrost/backend/internal/db"
	"github.com/brimfrost/backend/internal/server/middleware"
	"github.com/brimfrost/backend/internal/storage"
	"github.com/brimfrost/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

func CreatePersonHandler(c echo.Context) error {
	type createPersonBody struct {
		Name        string          `json:"name" validate:"required"`
		Bio         *string         `json:"bio"`
		PhotoURL    *string         `json:"photo_url"`
		BirthYear   *int32          `json:"birth_year"`
		DeathYear   *int32          `json:"death_year"`
		Gender      *string         `json:"gender" validate:"omitempty,oneof=M F"`
		SocialLinks json.RawMessage `json:"social_links"`
	}

	data := new(createPersonBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	person, err := q.CreatePerson(ctx, db.CreatePersonParams{
		Name:        data.Name,
		Bio:         data.Bio,
		PhotoURL:    data.PhotoURL,
		BirthYear:   data.BirthYear,
		DeathYear:   data.DeathYear,
		Gender:      data.Gender,
		SocialLinks: data.SocialLinks,
	})
	if err != nil {
		logger.Error("Failed to create person", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	return ok(c, http.StatusCreated, person)
}

func EditPersonHandler(c echo.Context) error {
	type editPersonBody struct {
		ID          int64           `param:"id" validate:"required,numeric"`
		Name        *string         `json:"name"`
		Bio         *string         `json:"bio"`
		PhotoURL    *string         `json:"photo_url"`
		BirthYear   *int32          `json:"birth_year"`
		DeathYear   *int32          `json:"death_year"`
		Gender      *string         `json:"gender" validate:"omitempty,oneof=M F"`
		SocialLinks json.RawMessage `json:"social_links"`
	}

	data := new(editPersonBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	if _, err := q.GetPerson(ctx, data.ID); err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Person not found")
	}

	person, err := q.UpdatePerson(ctx, db.UpdatePersonParams{
		ID:          data.ID,
		Name:        data.Name,
		Bio:         data.Bio,
		PhotoURL:    data.PhotoURL,
		BirthYear:   data.BirthYear,
		DeathYear:   data.DeathYear,
		Gender:      data.Gender,
		SocialLinks: data.SocialLinks,
	})
	if err != nil {
		logger.Error("Failed to update person", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	return ok(c, http.StatusOK, person)
}

func DeletePersonHandler(c echo.Context) error {
	type deletePersonParams struct {
		ID int64 `param:"id" validate:"required,numeric"`
	}

	params := new(deletePersonParams)
	if err := c.Bind(params); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid person id")
	}
	if err := c.Validate(params); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid person id")
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	if _, err := q.GetPerson(ctx, params.ID); err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Person not found")
	}
	// Relationship and media rows go with the person via FK cascade.
	if err := q.DeletePerson(ctx, params.ID); err != nil {
		logger.Error("Failed to delete person", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	if err := storage.DeleteFolder(ctx, app.S3, fmt.Sprintf("persons/%d", params.ID)); err != nil {
		logger.Warn("Failed to delete mirrored media folder", "person_id", params.ID, "err", err)
	}
	return ok(c, http.StatusOK, map[string]int64{"deleted": params.ID})
}
