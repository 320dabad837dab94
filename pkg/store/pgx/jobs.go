package pgx

import (
	"context"
	"errors"
	"fmt"

	pgxv5 "github.com/jackc/pgx/v5"

	"github.com/oeis-tools/collab/pkg/store"
)

// CreateBuildJob inserts a pending job row for a freshly enqueued build.
func (s *GraphDBStorage) CreateBuildJob(ctx context.Context, correlationID string, graphName string) error {
	_, err := s.conn.Exec(ctx, `
		INSERT INTO build_jobs (correlation_id, graph_name, status)
		VALUES ($1, $2, $3)
	`, correlationID, graphName, store.JobStatusPending)
	if err != nil {
		return fmt.Errorf("failed to create build job: %w", err)
	}
	return nil
}

// StartBuildJob marks a job as running and records the number of record
// documents the build will process.
func (s *GraphDBStorage) StartBuildJob(ctx context.Context, correlationID string, totalFiles int) error {
	_, err := s.conn.Exec(ctx, `
		UPDATE build_jobs
		SET status = $2, total_files = $3, processed_files = 0, failed_files = 0,
		    error_message = NULL, updated_at = now()
		WHERE correlation_id = $1
	`, correlationID, store.JobStatusRunning, totalFiles)
	if err != nil {
		return fmt.Errorf("failed to start build job: %w", err)
	}
	return nil
}

// UpdateBuildJobProgress records how many record documents have been
// processed so far.
func (s *GraphDBStorage) UpdateBuildJobProgress(ctx context.Context, correlationID string, processedFiles int, failedFiles int) error {
	_, err := s.conn.Exec(ctx, `
		UPDATE build_jobs
		SET processed_files = $2, failed_files = $3, updated_at = now()
		WHERE correlation_id = $1
	`, correlationID, processedFiles, failedFiles)
	if err != nil {
		return fmt.Errorf("failed to update build job progress: %w", err)
	}
	return nil
}

// CompleteBuildJob marks a job as completed and records the final counts.
func (s *GraphDBStorage) CompleteBuildJob(ctx context.Context, correlationID string, processedFiles int, failedFiles int, nodeCount int, edgeCount int) error {
	_, err := s.conn.Exec(ctx, `
		UPDATE build_jobs
		SET status = $2, processed_files = $3, failed_files = $4,
		    node_count = $5, edge_count = $6, updated_at = now()
		WHERE correlation_id = $1
	`, correlationID, store.JobStatusCompleted, processedFiles, failedFiles, nodeCount, edgeCount)
	if err != nil {
		return fmt.Errorf("failed to complete build job: %w", err)
	}
	return nil
}

// FailBuildJob marks a job as failed with a diagnostic message.
func (s *GraphDBStorage) FailBuildJob(ctx context.Context, correlationID string, message string) error {
	_, err := s.conn.Exec(ctx, `
		UPDATE build_jobs
		SET status = $2, error_message = $3, updated_at = now()
		WHERE correlation_id = $1
	`, correlationID, store.JobStatusFailed, message)
	if err != nil {
		return fmt.Errorf("failed to mark build job as failed: %w", err)
	}
	return nil
}

// GetBuildJob returns the job with the given correlation ID.
func (s *GraphDBStorage) GetBuildJob(ctx context.Context, correlationID string) (*store.BuildJob, error) {
	var (
		job          store.BuildJob
		errorMessage *string
	)
	err := s.conn.QueryRow(ctx, `
		SELECT id, correlation_id, graph_name, status, total_files,
		       processed_files, failed_files, node_count, edge_count,
		       error_message, created_at, updated_at
		FROM build_jobs
		WHERE correlation_id = $1
	`, correlationID).Scan(
		&job.ID, &job.CorrelationID, &job.GraphName, &job.Status, &job.TotalFiles,
		&job.ProcessedFiles, &job.FailedFiles, &job.NodeCount, &job.EdgeCount,
		&errorMessage, &job.CreatedAt, &job.UpdatedAt,
	)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return nil, fmt.Errorf("build job '%s': %w", correlationID, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query build job: %w", err)
	}
	if errorMessage != nil {
		job.ErrorMessage = *errorMessage
	}
	return &job, nil
}
