package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oeis-tools/collab/internal/server/middleware"
	"github.com/oeis-tools/collab/pkg/logger"
	"github.com/oeis-tools/collab/pkg/store"
	graphstorage "github.com/oeis-tools/collab/pkg/store/pgx"
)

// GetBuildHandler returns the current state of a build job.
func GetBuildHandler(c echo.Context) error {
	type getBuildParams struct {
		CorrelationID string `param:"correlation_id" validate:"required"`
	}

	type getBuildResponse struct {
		Message string          `json:"message"`
		Job     *store.BuildJob `json:"job,omitempty"`
	}

	params := new(getBuildParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getBuildResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getBuildResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	storeClient := graphstorage.NewGraphDBStorageWithConnection(conn)

	job, err := storeClient.GetBuildJob(ctx, params.CorrelationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getBuildResponse{
				Message: "Build job not found",
			})
		}
		logger.Error("Failed to load build job", "err", err)
		return c.JSON(http.StatusInternalServerError, getBuildResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getBuildResponse{
		Message: "OK",
		Job:     job,
	})
}
