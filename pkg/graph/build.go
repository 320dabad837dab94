package graph

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	gUtil "github.com/oeis-tools/collab/internal/util"
	"github.com/oeis-tools/collab/pkg/catalog"
	"github.com/oeis-tools/collab/pkg/extract"
	"github.com/oeis-tools/collab/pkg/logger"
)

// FileError records a record document that could not be loaded or parsed.
type FileError struct {
	Key string
	Err error
}

// BuildReport summarizes one build run: how many record documents were
// listed, how many were processed, how many mutated the graph, and which
// ones failed.
type BuildReport struct {
	TotalFiles   int
	Processed    int
	Contributing int
	Failed       []FileError
}

// Builder folds a corpus of record documents into one collaboration graph.
// Records are loaded and extracted in parallel; the merge into the shared
// graph is serialized behind a mutex, since it is a small fraction of the
// per-record work.
type Builder struct {
	loader          catalog.RecordLoader
	extractor       *extract.Extractor
	parallelFiles   int
	maxRetries      int
	includeIsolated bool
	failFast        bool
	onProgress      func(done int, total int)
}

// NewBuilderParams defines the configuration parameters for creating a new
// Builder.
//
// Loader enumerates and reads the record documents. ParallelFiles controls
// how many records are loaded and extracted concurrently. MaxRetries bounds
// read retries per record. IncludeIsolated adds authors that never co-occur
// with another author as isolated nodes; by default such authors are not
// added at all. FailFast aborts the whole build on the first record failure
// instead of skipping and reporting it. OnProgress, when set, is called
// after every processed record with the running count and the total.
type NewBuilderParams struct {
	Loader          catalog.RecordLoader
	Extractor       *extract.Extractor
	ParallelFiles   int
	MaxRetries      int
	IncludeIsolated bool
	FailFast        bool
	OnProgress      func(done int, total int)
}

// NewBuilder creates a Builder configured with the provided parameters.
func NewBuilder(params NewBuilderParams) *Builder {
	extractor := params.Extractor
	if extractor == nil {
		extractor = extract.NewExtractor()
	}
	parallelFiles := params.ParallelFiles
	if parallelFiles <= 0 {
		parallelFiles = 4
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Builder{
		loader:          params.Loader,
		extractor:       extractor,
		parallelFiles:   parallelFiles,
		maxRetries:      maxRetries,
		includeIsolated: params.IncludeIsolated,
		failFast:        params.FailFast,
		onProgress:      params.OnProgress,
	}
}

// Build processes every record document the loader lists and returns the
// accumulated graph. The final node and edge sets are the union of the
// per-record cliques and do not depend on processing order.
//
// A record yielding fewer than two authors contributes no edge; unless
// IncludeIsolated is set it contributes no node either. Failed records
// either abort the build (FailFast) or are collected in the report.
func (b *Builder) Build(ctx context.Context) (*Graph, *BuildReport, error) {
	keys, err := b.loader.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list record documents: %w", err)
	}

	g := New()
	report := &BuildReport{TotalFiles: len(keys)}

	logger.Info("[Build] Processing records", "total_files", len(keys))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(b.parallelFiles)
	mergeMu := sync.Mutex{}
	done := 0

	for _, key := range keys {
		k := key
		eg.Go(func() error {
			select {
			case <-gCtx.Done():
				return nil
			default:
				authors, err := b.processRecord(gCtx, k)

				mergeMu.Lock()
				defer mergeMu.Unlock()
				done++

				if err != nil {
					if b.failFast {
						return fmt.Errorf("record %s: %w", k, err)
					}
					logger.Warn("[Build] Skipping record", "key", k, "err", err)
					report.Failed = append(report.Failed, FileError{Key: k, Err: err})
				} else {
					report.Processed++
					switch {
					case len(authors) >= 2:
						g.AddClique(authors)
						report.Contributing++
					case b.includeIsolated && len(authors) == 1:
						g.AddNode(authors[0])
						report.Contributing++
					}
				}

				if b.onProgress != nil {
					b.onProgress(done, len(keys))
				}
				return nil
			}
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, report, err
	}

	logger.Info(
		"[Build] Records processed",
		"processed", report.Processed,
		"failed", len(report.Failed),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
	)

	return g, report, nil
}

// processRecord loads, decodes, and extracts one record document.
func (b *Builder) processRecord(ctx context.Context, key string) ([]string, error) {
	data, err := gUtil.RetryWithContext(ctx, b.maxRetries, func(ctx context.Context) ([]byte, error) {
		return b.loader.Read(ctx, key)
	})
	if err != nil {
		return nil, err
	}

	record, err := catalog.DecodeRecord(data)
	if err != nil {
		return nil, err
	}

	return b.extractor.Extract(record), nil
}
