package routes

import (
	"net/http"
	"strings"

	"github.com/brimfrost/backend/internal/db"
	"github.com/brimfrost/backend/internal/server/middleware"
	"github.com/brimfrost/backend/internal/storage"
	"github.com/brimfrost/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// personDetail is the bulk person shape: flat attributes plus the person's
// relationship rows from BOTH endpoints, so every edge appears in the lists
// of both persons it touches. The graph normalizer depends on that shape.
type personDetail struct {
	db.Person
	Relationships []db.Relationship `json:"relationships"`
	Tags          []db.Tag          `json:"tags"`
	Locations     []db.Location     `json:"locations"`
	Media         []db.Media        `json:"media"`
}

// fetchPersonDetails assembles the denormalized bulk view in four queries
// instead of N+1 per person.
func fetchPersonDetails(c echo.Context, q *db.Queries) ([]personDetail, error) {
	ctx := c.Request().Context()

	persons, err := q.ListPersons(ctx)
	if err != nil {
		return nil, err
	}
	rels, err := q.ListRelationships(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := q.ListPersonTags(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := q.ListPersonLocations(ctx)
	if err != nil {
		return nil, err
	}
	media, err := q.ListAllMedia(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]personDetail, 0, len(persons))
	index := make(map[int64]int, len(persons))
	for i, p := range persons {
		details = append(details, personDetail{
			Person:        p,
			Relationships: []db.Relationship{},
			Tags:          []db.Tag{},
			Locations:     []db.Location{},
			Media:         []db.Media{},
		})
		index[p.ID] = i
	}

	for _, r := range rels {
		if i, ok := index[r.PersonAID]; ok {
			details[i].Relationships = append(details[i].Relationships, r)
		}
		if i, ok := index[r.PersonBID]; ok && r.PersonAID != r.PersonBID {
			details[i].Relationships = append(details[i].Relationships, r)
		}
	}
	for _, t := range tags {
		if i, ok := index[t.PersonID]; ok {
			details[i].Tags = append(details[i].Tags, t.Tag)
		}
	}
	for _, l := range locations {
		if i, ok := index[l.PersonID]; ok {
			details[i].Locations = append(details[i].Locations, l.Location)
		}
	}
	for _, m := range media {
		if i, ok := index[m.PersonID]; ok {
			details[i].Media = append(details[i].Media, m)
		}
	}
	return details, nil
}

func GetPersonsHandler(c echo.Context) error {
	conn := c.(*middleware.AppContext).App.DBConn
	details, err := fetchPersonDetails(c, db.New(conn))
	if err != nil {
		logger.Error("Failed to list persons", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	return ok(c, http.StatusOK, details)
}

func SearchPersonsHandler(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if len(query) < 2 {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Search query must be at least 2 characters")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	rows, err := q.SearchPersons(ctx, query)
	if err != nil {
		logger.Error("Failed to search persons", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	if rows == nil {
		rows = []db.SearchPersonsRow{}
	}
	return ok(c, http.StatusOK, rows)
}

func GetPersonHandler(c echo.Context) error {
	type getPersonParams struct {
		ID int64 `param:"id" validate:"required,numeric"`
	}

	params := new(getPersonParams)
	if err := c.Bind(params); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid person id")
	}
	if err := c.Validate(params); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid person id")
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	person, err := q.GetPerson(ctx, params.ID)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Person not found")
	}
	return ok(c, http.StatusOK, person)
}

func GetPersonMediaHandler(c echo.Context) error {
	type getMediaParams struct {
		ID int64 `param:"id" validate:"required,numeric"`
	}

	params := new(getMediaParams)
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

	items, err := q.ListMediaForPerson(ctx, params.ID)
	if err != nil {
		logger.Error("Failed to list media", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}

	// Mirrored media is served through a short-lived presigned link; media
	// that has not been mirrored yet keeps its original remote URL.
	for i := range items {
		if items[i].FileKey == nil {
			continue
		}
		link, err := storage.GenerateDownloadLink(ctx, app.S3, *items[i].FileKey)
		if err != nil {
			logger.Warn("Failed to presign media link", "media_id", items[i].ID, "err", err)
			continue
		}
		items[i].URL = link
	}
	if items == nil {
		items = []db.Media{}
	}
	return ok(c, http.StatusOK, items)
}
