package routes

import (
	"net/http"

	"github.com/brimfrost/backend/internal/db"
	"github.com/brimfrost/backend/internal/server/middleware"
	"github.com/brimfrost/backend/pkg/familytree"
	"github.com/brimfrost/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

func GetRelationshipsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	rels, err := db.New(conn).ListRelationships(ctx)
	if err != nil {
		logger.Error("Failed to list relationships", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	if rels == nil {
		rels = []db.Relationship{}
	}
	return ok(c, http.StatusOK, rels)
}

func CreateRelationshipHandler(c echo.Context) error {
	type createRelationshipBody struct {
		PersonAID    int64  `json:"person_a_id" validate:"required,numeric"`
		PersonBID    int64  `json:"person_b_id" validate:"required,numeric"`
		RelationType string `json:"relation_type" validate:"required"`
		StartedYear  *int32 `json:"started_year"`
		EndedYear    *int32 `json:"ended_year"`
	}

	data := new(createRelationshipBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if err := c.Validate(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	kind, known := familytree.ParseRelationKind(data.RelationType)
	if !known {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "relation_type must be father, mother or spouse")
	}
	if data.PersonAID == data.PersonBID {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "A person cannot relate to themselves")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	for _, id := range []int64{data.PersonAID, data.PersonBID} {
		if _, err := q.GetPerson(ctx, id); err != nil {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Person not found")
		}
	}

	rel, err := q.CreateRelationship(ctx, db.CreateRelationshipParams{
		PersonAID:    data.PersonAID,
		PersonBID:    data.PersonBID,
		RelationType: string(kind),
		StartedYear:  data.StartedYear,
		EndedYear:    data.EndedYear,
	})
	if err != nil {
		logger.Error("Failed to create relationship", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	return ok(c, http.StatusCreated, rel)
}

func DeleteRelationshipHandler(c echo.Context) error {
	type deleteRelationshipParams struct {
		ID int64 `param:"id" validate:"required,numeric"`
	}

	params := new(deleteRelationshipParams)
	if err := c.Bind(params); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid relationship id")
	}
	if err := c.Validate(params); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid relationship id")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	if err := db.New(conn).DeleteRelationship(ctx, params.ID); err != nil {
		logger.Error("Failed to delete relationship", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	return ok(c, http.StatusOK, map[string]int64{"deleted": params.ID})
}
