package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oeis-tools/collab/internal/server/middleware"
	serverutil "github.com/oeis-tools/collab/internal/server/util"
	"github.com/oeis-tools/collab/pkg/graph"
	"github.com/oeis-tools/collab/pkg/logger"
	"github.com/oeis-tools/collab/pkg/store"
	graphstorage "github.com/oeis-tools/collab/pkg/store/pgx"
)

// GetGraphsHandler lists all stored graphs.
func GetGraphsHandler(c echo.Context) error {
	type getGraphsResponse struct {
		Message string            `json:"message"`
		Graphs  []store.GraphInfo `json:"graphs"`
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	storeClient := graphstorage.NewGraphDBStorageWithConnection(conn)

	graphs, err := storeClient.ListGraphs(ctx)
	if err != nil {
		logger.Error("Failed to list graphs", "err", err)
		return c.JSON(http.StatusInternalServerError, getGraphsResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getGraphsResponse{
		Message: "OK",
		Graphs:  graphs,
	})
}

// GetGraphHandler returns one graph as a node/link document.
func GetGraphHandler(c echo.Context) error {
	type getGraphParams struct {
		Name string `param:"name" validate:"required"`
	}

	params := new(getGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	g, err := loadGraph(c, params.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, graph.Encode(g))
}

// GetGraphStatsHandler returns summary statistics for one graph. The number
// of top authors reported is controlled via the top query parameter.
func GetGraphStatsHandler(c echo.Context) error {
	type getStatsParams struct {
		Name string `param:"name" validate:"required"`
		Top  int    `query:"top" validate:"omitempty,min=0"`
	}

	type getStatsResponse struct {
		Message string                 `json:"message"`
		Name    string                 `json:"name,omitempty"`
		Stats   *serverutil.GraphStats `json:"stats,omitempty"`
	}

	params := new(getStatsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getStatsResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getStatsResponse{
			Message: "Invalid request body",
		})
	}
	if params.Top == 0 {
		params.Top = 10
	}

	g, err := loadGraph(c, params.Name)
	if err != nil {
		return err
	}

	stats := serverutil.ComputeStats(g, params.Top)
	return c.JSON(http.StatusOK, getStatsResponse{
		Message: "OK",
		Name:    params.Name,
		Stats:   &stats,
	})
}

// GetGraphCollaboratorsHandler returns the direct collaborators of one
// author within a graph.
func GetGraphCollaboratorsHandler(c echo.Context) error {
	type getCollaboratorsParams struct {
		Name   string `param:"name" validate:"required"`
		Author string `query:"author" validate:"required"`
	}

	type getCollaboratorsResponse struct {
		Message       string   `json:"message"`
		Author        string   `json:"author,omitempty"`
		Collaborators []string `json:"collaborators,omitempty"`
	}

	params := new(getCollaboratorsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getCollaboratorsResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getCollaboratorsResponse{
			Message: "Invalid request body",
		})
	}

	g, err := loadGraph(c, params.Name)
	if err != nil {
		return err
	}

	if !g.HasNode(params.Author) {
		return c.JSON(http.StatusNotFound, getCollaboratorsResponse{
			Message: "Author not found in graph",
		})
	}

	return c.JSON(http.StatusOK, getCollaboratorsResponse{
		Message:       "OK",
		Author:        params.Author,
		Collaborators: g.Neighbors(params.Author),
	})
}

// loadGraph fetches a stored graph and writes the error response itself
// when the graph cannot be loaded.
func loadGraph(c echo.Context, name string) (*graph.Graph, error) {
	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	storeClient := graphstorage.NewGraphDBStorageWithConnection(conn)

	g, err := storeClient.LoadGraph(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, c.JSON(http.StatusNotFound, map[string]string{"message": "Graph not found"})
		}
		logger.Error("Failed to load graph", "graph", name, "err", err)
		return nil, c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}
	return g, nil
}
