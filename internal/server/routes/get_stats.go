package routes

import (
	"net/http"

	"github.com/brimfrost/backend/internal/db"
	"github.com/brimfrost/backend/internal/server/middleware"
	"github.com/brimfrost/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

func GetStatsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	stats, err := db.New(conn).GetStats(ctx)
	if err != nil {
		logger.Error("Failed to load stats", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	return ok(c, http.StatusOK, stats)
}
