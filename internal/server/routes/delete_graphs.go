package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/oeis-tools/collab/internal/queue"
	"github.com/oeis-tools/collab/internal/server/middleware"
	"github.com/oeis-tools/collab/internal/util"
	"github.com/oeis-tools/collab/pkg/logger"
)

// DeleteGraphHandler enqueues deletion of a stored graph.
func DeleteGraphHandler(c echo.Context) error {
	type deleteGraphParams struct {
		Name string `param:"name" validate:"required"`
	}

	type deleteGraphResponse struct {
		Message       string `json:"message"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}

	params := new(deleteGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteGraphResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteGraphResponse{
			Message: "Invalid request body",
		})
	}

	correlationID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, deleteGraphResponse{
			Message: "Internal server error",
		})
	}

	queueData := queue.QueueDeleteMsg{
		Message:       "Delete requested",
		CorrelationID: correlationID,
		GraphName:     params.Name,
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.DeleteQueue, []byte(util.ConvertStructToJson(queueData))); err != nil {
		logger.Error("Failed to publish to delete_queue", "err", err)
		return c.JSON(http.StatusInternalServerError, deleteGraphResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusAccepted, deleteGraphResponse{
		Message:       "Delete accepted",
		CorrelationID: correlationID,
	})
}
