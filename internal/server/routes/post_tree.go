package routes

import (
	"io"
	"net/http"

	"github.com/brimfrost/backend/pkg/familytree"
	"github.com/brimfrost/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

func TreeCreatePersonHandler(c echo.Context) error {
	type createBody struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name"`
	}

	data := new(createBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "first_name is required")
	}
	if err := c.Validate(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "first_name is required")
	}

	tree, err := lockedTree(c)
	if err != nil {
		logger.Error("Failed to load tree", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	defer tree.Unlock()

	person := tree.Store.Create(data.FirstName, data.LastName)
	return ok(c, http.StatusCreated, person)
}

func TreeEditPersonHandler(c echo.Context) error {
	type editBody struct {
		ID   string                `param:"id"`
		Data familytree.PersonData `json:"data"`
		Rels familytree.Relations  `json:"rels"`
	}

	data := new(editBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if data.ID == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Person id is required")
	}

	tree, err := lockedTree(c)
	if err != nil {
		logger.Error("Failed to load tree", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	defer tree.Unlock()

	applied := tree.Store.Update(data.ID, familytree.Update{
		Data:     data.Data,
		Father:   data.Rels.Father,
		Mother:   data.Rels.Mother,
		Spouses:  data.Rels.Spouses,
		Children: data.Rels.Children,
	})
	if !applied {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Person not found")
	}

	person, _ := tree.Store.Get(data.ID)
	return ok(c, http.StatusOK, person)
}

func TreeDeletePersonHandler(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Person id is required")
	}

	tree, err := lockedTree(c)
	if err != nil {
		logger.Error("Failed to load tree", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	defer tree.Unlock()

	if !tree.Store.Delete(id) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Person not found")
	}
	return ok(c, http.StatusOK, map[string]any{
		"deleted": id,
		"count":   tree.Store.Len(),
	})
}

func TreeAddSiblingHandler(c echo.Context) error {
	type siblingBody struct {
		ID        string `param:"id"`
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name"`
	}

	data := new(siblingBody)
	if err := c.Bind(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "first_name is required")
	}
	if err := c.Validate(data); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "first_name is required")
	}
	if data.ID == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Person id is required")
	}

	tree, err := lockedTree(c)
	if err != nil {
		logger.Error("Failed to load tree", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	defer tree.Unlock()

	sibling, found := tree.Store.AddSibling(data.ID, data.FirstName, data.LastName)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Person not found")
	}
	return ok(c, http.StatusCreated, sibling)
}

func TreeImportHandler(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fail(c, http.StatusBadRequest, "IMPORT_ERROR", "Could not read request body")
	}

	tree, err := lockedTree(c)
	if err != nil {
		logger.Error("Failed to load tree", "err", err)
		return fail(c, http.StatusInternalServerError, "QUERY_ERROR", "Internal server error")
	}
	defer tree.Unlock()

	count, err := tree.Store.Import(body)
	if err != nil {
		return fail(c, http.StatusBadRequest, "IMPORT_ERROR", err.Error())
	}
	return ok(c, http.StatusOK, map[string]int{"imported": count})
}
