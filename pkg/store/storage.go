package store

import (
	"context"
	"errors"
	"time"

	"github.com/oeis-tools/collab/pkg/graph"
)

// ErrNotFound indicates the requested graph or build job does not exist.
var ErrNotFound = errors.New("not found")

// Build job lifecycle states.
const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// GraphInfo describes one persisted graph.
type GraphInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BuildJob tracks one queued graph build from enqueue to completion.
type BuildJob struct {
	ID             int64     `json:"id"`
	CorrelationID  string    `json:"correlation_id"`
	GraphName      string    `json:"graph_name"`
	Status         string    `json:"status"`
	TotalFiles     int       `json:"total_files"`
	ProcessedFiles int       `json:"processed_files"`
	FailedFiles    int       `json:"failed_files"`
	NodeCount      int       `json:"node_count"`
	EdgeCount      int       `json:"edge_count"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GraphStorage persists collaboration graphs under a name. Saving an
// existing name replaces its node and edge sets atomically.
type GraphStorage interface {
	SaveGraph(ctx context.Context, name string, g *graph.Graph) error
	LoadGraph(ctx context.Context, name string) (*graph.Graph, error)
	ListGraphs(ctx context.Context) ([]GraphInfo, error)
	DeleteGraph(ctx context.Context, name string) error
}

// BuildJobStore tracks the lifecycle of queued build jobs.
type BuildJobStore interface {
	CreateBuildJob(ctx context.Context, correlationID string, graphName string) error
	StartBuildJob(ctx context.Context, correlationID string, totalFiles int) error
	UpdateBuildJobProgress(ctx context.Context, correlationID string, processedFiles int, failedFiles int) error
	CompleteBuildJob(ctx context.Context, correlationID string, processedFiles int, failedFiles int, nodeCount int, edgeCount int) error
	FailBuildJob(ctx context.Context, correlationID string, message string) error
	GetBuildJob(ctx context.Context, correlationID string) (*BuildJob, error)
}
