package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/brimfrost/backend/internal/db"
	"github.com/brimfrost/backend/internal/server/middleware"
	"github.com/brimfrost/backend/pkg/familytree"
	"github.com/brimfrost/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// rawPersonsFromDetails maps the bulk storage shape onto the engine's input
// shape. Storage ids are numeric; the engine works on strings throughout.
func rawPersonsFromDetails(details []personDetail) []familytree.RawPerson {
	raw := make([]familytree.RawPerson, 0, len(details))
	for _, d := range details {
		rp := familytree.RawPerson{
			ID:     strconv.FormatInt(d.ID, 10),
			Name:   d.Name,
			Social: map[string]string{},
		}
		if d.Bio != nil {
			rp.Bio = *d.Bio
		}
		if d.PhotoURL != nil {
			rp.PhotoURL = *d.PhotoURL
		}
		if d.BirthYear != nil {
			y := int(*d.BirthYear)
			rp.BirthYear = &y
		}
		if d.DeathYear != nil {
			y := int(*d.DeathYear)
			rp.DeathYear = &y
		}
		if d.Gender != nil {
			rp.Gender = *d.Gender
		}
		if len(d.SocialLinks) > 0 {
			// Non-object social_links values are ignored rather than failing
			// the whole load.
			_ = json.Unmarshal(d.SocialLinks, &rp.Social)
		}
		for _, t := range d.Tags {
			rp.Tags = append(rp.Tags, t.Name)
		}
		for _, l := range d.Locations {
			rp.Locations = append(rp.Locations, l.Name)
		}
		for _, m := range d.Media {
			title := ""
			if m.Title != nil {
				title = *m.Title
			}
			rp.Media = append(rp.Media, familytree.RawMedia{Type: m.Type, URL: m.URL, Title: title})
		}
		for _, r := range d.Relationships {
			kind, known := familytree.ParseRelationKind(r.RelationType)
			if !known {
				continue
			}
			rec := familytree.RelationshipRecord{
				PersonA: strconv.FormatInt(r.PersonAID, 10),
				PersonB: strconv.FormatInt(r.PersonBID, 10),
				Kind:    kind,
			}
			if r.StartedYear != nil {
				y := int(*r.StartedYear)
				rec.StartedYear = &y
			}
			if r.EndedYear != nil {
				y := int(*r.EndedYear)
				rec.EndedYear = &y
			}
			rp.Relationships = append(rp.Relationships, rec)
		}
		raw = append(raw, rp)
	}
	return raw
}

// reloadTree rebuilds the canonical graph from storage and swaps it into the
// session. Callers must hold the session lock.
func reloadTree(c echo.Context, tree *middleware.TreeSession) error {
	conn := c.(*middleware.AppContext).App.DBConn
	details, err := fetchPersonDetails(c, db.New(conn))
	if err != nil {
		return err
	}
	tree.Store.Replace(familytree.Normalize(rawPersonsFromDetails(details)))
	tree.Loaded = true
	return nil
}

// lockedTree hands back the session with the lock held, loading the graph
// from storage on first use.
func lockedTree(c echo.Context) (*middleware.TreeSession, error) {
	tree := c.(*middleware.AppContext).App.Tree
	tree.Lock()
	if !tree.Loaded {
		if err := reloadTree(c, tree); err != nil {
			tree.Unlock()
			return nil, err
		}
	}
	return tree, nil
}

func GetTreeHandler(c echo.Context) error {
	tree := c.(*middleware.AppContext).App.Tree
	tree.Lock()
	defer tree.Unlock()

	// An explicit tree fetch always reflects current storage, discarding
	// any session-local edits.
	if err := reloadTree(c, tree); err != nil {
		logger.Error("Failed to load tree", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	return ok(c, http.StatusOK, map[string]any{
		"persons": tree.Store.Export(),
		"count":   tree.Store.Len(),
	})
}

func GetTreeRelationHandler(c echo.Context) error {
	a, b := c.QueryParam("a"), c.QueryParam("b")
	if a == "" || b == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Query parameters a and b are required")
	}

	tree, err := lockedTree(c)
	if err != nil {
		logger.Error("Failed to load tree", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	defer tree.Unlock()

	edge := tree.Store.Classify(a, b)
	if edge == familytree.EdgeUnknown {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Person not found")
	}
	return ok(c, http.StatusOK, map[string]any{
		"a":            a,
		"b":            b,
		"relationship": edge,
	})
}

func GetTreePathHandler(c echo.Context) error {
	a, b := c.QueryParam("a"), c.QueryParam("b")
	if a == "" || b == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Query parameters a and b are required")
	}

	tree, err := lockedTree(c)
	if err != nil {
		logger.Error("Failed to load tree", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	defer tree.Unlock()

	for _, id := range []string{a, b} {
		if _, found := tree.Store.Get(id); !found {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Person not found")
		}
	}

	path, steps := tree.Store.Path(a, b)
	if path == nil {
		return ok(c, http.StatusOK, map[string]any{
			"connected": false,
			"path":      []string{},
			"steps":     []familytree.PathStep{},
		})
	}
	return ok(c, http.StatusOK, map[string]any{
		"connected": true,
		"path":      path,
		"steps":     steps,
		"degrees":   len(path) - 1,
	})
}

func GetTreeFilterHandler(c echo.Context) error {
	tree, err := lockedTree(c)
	if err != nil {
		logger.Error("Failed to load tree", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	defer tree.Unlock()

	matches := tree.Store.Filter(c.QueryParam("q"))
	out := make([]familytree.Person, 0, len(matches))
	for _, p := range matches {
		out = append(out, *p)
	}
	return ok(c, http.StatusOK, out)
}

func GetTreeExportHandler(c echo.Context) error {
	tree, err := lockedTree(c)
	if err != nil {
		logger.Error("Failed to load tree", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	defer tree.Unlock()

	return ok(c, http.StatusOK, tree.Store.Export())
}
