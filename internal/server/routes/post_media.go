package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brimfrost/backend/internal/db"
	"github.com/brimfrost/backend/internal/queue"
	"github.com/brimfrost/backend/internal/server/middleware"
	"github.com/brimfrost/backend/internal/storage"
	"github.com/brimfrost/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

func storageDelete(c echo.Context, key string) error {
	app := c.(*middleware.AppContext).App
	return storage.DeleteFile(c.Request().Context(), app.S3, key)
}

func CreateMediaHandler(c echo.Context) error {
	type createMediaBody struct {
		PersonID    int64   `param:"id" validate:"required,numeric"`
		Type        string  `json:"type" validate:"required,oneof=photo video file"`
		URL         string  `json:"url" validate:"required,url"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}

	data := new(createMediaBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	if _, err := q.GetPerson(ctx, data.PersonID); err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Person not found")
	}

	media, err := q.CreateMedia(ctx, db.CreateMediaParams{
		PersonID:    data.PersonID,
		Type:        data.Type,
		URL:         data.URL,
		Title:       data.Title,
		Description: data.Description,
	})
	if err != nil {
		logger.Error("Failed to create media", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}

	// Remote media gets mirrored into our own bucket in the background; the
	// row is served from its original URL until the worker has re-homed it.
	if strings.HasPrefix(data.URL, "http://") || strings.HasPrefix(data.URL, "https://") {
		msg := queue.MediaMirrorMsg{
			PersonID: media.PersonID,
			Items: []queue.MediaMirrorItem{
				{MediaID: media.ID, URL: media.URL, Type: media.Type},
			},
		}
		body, err := json.Marshal(msg)
		if err == nil {
			err = queue.PublishFIFO(app.Queue, queue.MediaQueue, body)
		}
		if err != nil {
			logger.Error("Failed to enqueue media mirror job", "media_id", media.ID, "err", err)
		}
	}

	return ok(c, http.StatusCreated, media)
}

func DeleteMediaHandler(c echo.Context) error {
	type deleteMediaParams struct {
		ID int64 `param:"media_id" validate:"required,numeric"`
	}

	params := new(deleteMediaParams)
	if err := c.Bind(params); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid media id")
	}
	if err := c.Validate(params); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid media id")
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App
	q := db.New(app.DBConn)

	media, err := q.GetMedia(ctx, params.ID)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Media not found")
	}
	if err := q.DeleteMedia(ctx, params.ID); err != nil {
		logger.Error("Failed to delete media", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}

	if media.FileKey != nil {
		if err := storageDelete(c, *media.FileKey); err != nil {
			logger.Warn("Failed to delete mirrored object", "key", *media.FileKey, "err", err)
		}
	}
	return ok(c, http.StatusOK, map[string]int64{"deleted": params.ID})
}
