package server

import (
	"github.com/brimfrost/backend/internal/server/middleware"
	"github.com/brimfrost/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	// Auth routes (no token required)
	e.POST("/api/auth/login", routes.LoginHandler)
	e.POST("/api/auth/register", routes.RegisterHandler)

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Person routes
	apiRoutes.GET("/persons", routes.GetPersonsHandler)
	apiRoutes.GET("/persons/search", routes.SearchPersonsHandler)
	apiRoutes.GET("/persons/:id", routes.GetPersonHandler)
	apiRoutes.GET("/persons/:id/media", routes.GetPersonMediaHandler)

	// Tree routes (in-memory graph engine)
	apiRoutes.GET("/tree", routes.GetTreeHandler)
	apiRoutes.GET("/tree/relation", routes.GetTreeRelationHandler)
	apiRoutes.GET("/tree/path", routes.GetTreePathHandler)
	apiRoutes.GET("/tree/filter", routes.GetTreeFilterHandler)
	apiRoutes.GET("/tree/export", routes.GetTreeExportHandler)
	apiRoutes.POST("/tree/persons", routes.TreeCreatePersonHandler, middleware.RequireAdmin)
	apiRoutes.PATCH("/tree/persons/:id", routes.TreeEditPersonHandler, middleware.RequireAdmin)
	apiRoutes.DELETE("/tree/persons/:id", routes.TreeDeletePersonHandler, middleware.RequireAdmin)
	apiRoutes.POST("/tree/persons/:id/sibling", routes.TreeAddSiblingHandler, middleware.RequireAdmin)
	apiRoutes.POST("/tree/import", routes.TreeImportHandler, middleware.RequireAdmin)

	// Admin routes
	adminRoutes := apiRoutes.Group("/admin", middleware.RequireAdmin)
	adminRoutes.POST("/persons", routes.CreatePersonHandler)
	adminRoutes.PATCH("/persons/:id", routes.EditPersonHandler)
	adminRoutes.DELETE("/persons/:id", routes.DeletePersonHandler)
	adminRoutes.POST("/persons/:id/media", routes.CreateMediaHandler)
	adminRoutes.DELETE("/media/:media_id", routes.DeleteMediaHandler)
	adminRoutes.GET("/relationships", routes.GetRelationshipsHandler)
	adminRoutes.POST("/relationships", routes.CreateRelationshipHandler)
	adminRoutes.DELETE("/relationships/:id", routes.DeleteRelationshipHandler)
	adminRoutes.GET("/users", routes.GetUsersHandler)
	adminRoutes.POST("/users", routes.CreateUserHandler)
	adminRoutes.PATCH("/users/:id", routes.EditUserHandler)
	adminRoutes.DELETE("/users/:id", routes.DeleteUserHandler)
	adminRoutes.GET("/stats", routes.GetStatsHandler)
}
