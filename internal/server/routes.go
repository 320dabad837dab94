package server

import (
	"github.com/labstack/echo/v4"

	"github.com/oeis-tools/collab/internal/server/middleware"
	"github.com/oeis-tools/collab/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Build job routes
	apiRoutes.POST("/builds", routes.CreateBuildHandler, middleware.RequirePermission("graph.build"))
	apiRoutes.GET("/builds/:correlation_id", routes.GetBuildHandler, middleware.RequirePermission("job.view"))

	// Graph routes
	apiRoutes.GET("/graphs", routes.GetGraphsHandler, middleware.RequireAnyPermission("graph.view", "graph.view:all"))
	apiRoutes.GET("/graphs/:name", routes.GetGraphHandler, middleware.RequirePermission("graph.view"))
	apiRoutes.GET("/graphs/:name/stats", routes.GetGraphStatsHandler, middleware.RequirePermission("graph.view"))
	apiRoutes.GET("/graphs/:name/collaborators", routes.GetGraphCollaboratorsHandler, middleware.RequirePermission("graph.view"))
	apiRoutes.DELETE("/graphs/:name", routes.DeleteGraphHandler, middleware.RequirePermission("graph.delete"))
}
