package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oeis-tools/collab/internal/util"
	"github.com/oeis-tools/collab/pkg/catalog"
	catalogio "github.com/oeis-tools/collab/pkg/catalog/io"
	catalogs3 "github.com/oeis-tools/collab/pkg/catalog/s3"
	"github.com/oeis-tools/collab/pkg/graph"
	"github.com/oeis-tools/collab/pkg/logger"
	"github.com/oeis-tools/collab/pkg/store"
	graphstorage "github.com/oeis-tools/collab/pkg/store/pgx"
)

// progressUpdateEvery controls how often build progress is written back to
// the job row. The final record always triggers an update.
const progressUpdateEvery = 50

// ProcessBuildMessage handles one build job: it assembles the record loader
// for the requested source, runs the builder, and persists the finished
// graph both to Postgres and as a node/link JSON document.
func ProcessBuildMessage(
	ctx context.Context,
	s3Client *awss3.Client,
	conn *pgxpool.Pool,
	msg string,
) (err error) {
	data := new(QueueBuildMsg)
	if err = json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	storeClient := graphstorage.NewGraphDBStorageWithConnection(conn)
	defer func() {
		if err == nil || data.CorrelationID == "" {
			return
		}
		updateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if updateErr := storeClient.FailBuildJob(updateCtx, data.CorrelationID, err.Error()); updateErr != nil {
			logger.Warn("[Queue] Failed to mark build job as failed", "correlation_id", data.CorrelationID, "err", updateErr)
		}
	}()

	loader, err := recordLoader(data, s3Client)
	if err != nil {
		return err
	}

	keys, err := loader.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list record documents: %w", err)
	}

	if err = storeClient.StartBuildJob(ctx, data.CorrelationID, len(keys)); err != nil {
		return err
	}

	logger.Info(
		"[Queue] Building graph",
		"graph", data.GraphName,
		"source", data.Source,
		"path", data.Path,
		"total_files", len(keys),
	)

	builder := graph.NewBuilder(graph.NewBuilderParams{
		Loader:          loader,
		ParallelFiles:   int(util.GetEnvNumeric("BUILD_PARALLEL_FILES", 4)),
		MaxRetries:      int(util.GetEnvNumeric("BUILD_MAX_RETRIES", 3)),
		IncludeIsolated: data.IncludeIsolated,
		FailFast:        !data.SkipErrors,
		OnProgress: func(done int, total int) {
			if done%progressUpdateEvery != 0 && done != total {
				return
			}
			if updateErr := storeClient.UpdateBuildJobProgress(ctx, data.CorrelationID, done, 0); updateErr != nil {
				logger.Warn("[Queue] Failed to update build progress", "correlation_id", data.CorrelationID, "err", updateErr)
			}
		},
	})

	g, report, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build graph '%s': %w", data.GraphName, err)
	}

	if err = storeClient.SaveGraph(ctx, data.GraphName, g); err != nil {
		return err
	}

	outputDir := util.GetEnvString("OUTPUT_DIR", "data")
	outputPath := filepath.Join(outputDir, data.GraphName+".json")
	if err = graph.WriteFile(outputPath, g); err != nil {
		return err
	}

	if err = storeClient.CompleteBuildJob(
		ctx,
		data.CorrelationID,
		report.Processed,
		len(report.Failed),
		g.NodeCount(),
		g.EdgeCount(),
	); err != nil {
		return err
	}

	logger.Info(
		"[Queue] Graph build completed",
		"graph", data.GraphName,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"failed_files", len(report.Failed),
		"document", outputPath,
	)

	return nil
}

// ProcessDeleteMessage removes a stored graph. Deleting a graph that does
// not exist is treated as already done.
func ProcessDeleteMessage(
	ctx context.Context,
	conn *pgxpool.Pool,
	msg string,
) error {
	data := new(QueueDeleteMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	storeClient := graphstorage.NewGraphDBStorageWithConnection(conn)

	logger.Info("[Queue] Deleting graph", "graph", data.GraphName)

	if err := storeClient.DeleteGraph(ctx, data.GraphName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Warn("[Queue] Graph already gone", "graph", data.GraphName)
			return nil
		}
		return err
	}

	logger.Info("[Queue] Graph deleted", "graph", data.GraphName)
	return nil
}

func recordLoader(data *QueueBuildMsg, s3Client *awss3.Client) (catalog.RecordLoader, error) {
	switch data.Source {
	case SourceS3:
		if s3Client == nil {
			return nil, fmt.Errorf("s3 record source requested but no S3 client is configured")
		}
		bucket := util.GetEnvString("AWS_BUCKET", "sequences")
		return catalogs3.NewS3RecordLoaderWithClient(bucket, data.Path, s3Client), nil
	case SourceDirectory, "":
		return catalogio.NewDirectoryRecordLoader(data.Path), nil
	default:
		return nil, fmt.Errorf("unknown record source '%s'", data.Source)
	}
}
