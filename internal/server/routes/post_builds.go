package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/oeis-tools/collab/internal/queue"
	"github.com/oeis-tools/collab/internal/server/middleware"
	"github.com/oeis-tools/collab/internal/util"
	"github.com/oeis-tools/collab/pkg/logger"
	graphstorage "github.com/oeis-tools/collab/pkg/store/pgx"
)

// CreateBuildHandler accepts a graph build request and enqueues it for the
// worker. The job can be polled under its correlation ID.
func CreateBuildHandler(c echo.Context) error {
	type createBuildBody struct {
		GraphName       string `json:"graph_name" validate:"required"`
		Source          string `json:"source" validate:"omitempty,oneof=dir s3"`
		Path            string `json:"path" validate:"required"`
		IncludeIsolated bool   `json:"include_isolated"`
		SkipErrors      bool   `json:"skip_errors"`
	}

	type createBuildResponse struct {
		Message       string `json:"message"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}

	data := new(createBuildBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createBuildResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createBuildResponse{
			Message: "Invalid request body",
		})
	}
	if data.Source == "" {
		data.Source = queue.SourceDirectory
	}

	correlationID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createBuildResponse{
			Message: "Internal server error",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	storeClient := graphstorage.NewGraphDBStorageWithConnection(conn)

	if err := storeClient.CreateBuildJob(ctx, correlationID, data.GraphName); err != nil {
		logger.Error("Failed to create build job", "err", err)
		return c.JSON(http.StatusInternalServerError, createBuildResponse{
			Message: "Internal server error",
		})
	}

	queueData := queue.QueueBuildMsg{
		Message:         "Build requested",
		CorrelationID:   correlationID,
		GraphName:       data.GraphName,
		Source:          data.Source,
		Path:            data.Path,
		IncludeIsolated: data.IncludeIsolated,
		SkipErrors:      data.SkipErrors,
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.BuildQueue, []byte(util.ConvertStructToJson(queueData))); err != nil {
		logger.Error("Failed to publish to build_queue", "err", err)
		return c.JSON(http.StatusInternalServerError, createBuildResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusAccepted, createBuildResponse{
		Message:       "Build accepted",
		CorrelationID: correlationID,
	})
}
