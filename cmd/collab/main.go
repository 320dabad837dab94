package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oeis-tools/collab/internal/server/util"
	envutil "github.com/oeis-tools/collab/internal/util"
	"github.com/oeis-tools/collab/pkg/catalog"
	catalogio "github.com/oeis-tools/collab/pkg/catalog/io"
	"github.com/oeis-tools/collab/pkg/graph"
	"github.com/oeis-tools/collab/pkg/logger"
	"github.com/oeis-tools/collab/pkg/logger/console"
)

// progressLogEvery controls how often build progress is logged.
const progressLogEvery = 500

func main() {
	build := flag.Bool("build", false, "build the graph from record documents instead of loading the stored one")
	dir := flag.String("dir", "data/sequences", "directory containing record documents")
	out := flag.String("out", "data", "directory for the stored graph document")
	name := flag.String("name", "comments_authors_graph", "name of the graph document (without extension)")
	inspect := flag.String("inspect", "", "pretty-print one record document and exit")
	isolated := flag.Bool("isolated", false, "keep authors without collaborators in the graph")
	skipErrors := flag.Bool("skip-errors", false, "skip unreadable or malformed record documents instead of aborting")
	parallel := flag.Int("parallel", 4, "number of record documents processed in parallel")
	flag.Parse()

	envutil.LoadEnv()

	debug := envutil.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	if *inspect != "" {
		if err := inspectRecord(*inspect); err != nil {
			logger.Fatal("Failed to inspect record", "path", *inspect, "err", err)
		}
		return
	}

	graphPath := filepath.Join(*out, *name+".json")

	var g *graph.Graph
	if *build {
		built, err := buildGraph(*dir, *parallel, *isolated, *skipErrors)
		if err != nil {
			logger.Fatal("Failed to build graph", "dir", *dir, "err", err)
		}
		if err := graph.WriteFile(graphPath, built); err != nil {
			logger.Fatal("Failed to write graph document", "path", graphPath, "err", err)
		}
		logger.Info("Graph document written", "path", graphPath)
		g = built
	} else {
		loaded, err := graph.ReadFile(graphPath)
		if err != nil {
			logger.Fatal("Failed to read graph document", "path", graphPath, "err", err)
		}
		g = loaded
	}

	stats := util.ComputeStats(g, 10)
	logger.Info(
		"Collaboration graph",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"density", fmt.Sprintf("%.6f", stats.Density),
	)
	for _, author := range stats.TopAuthors {
		logger.Info("Top collaborator", "author", author.Author, "degree", author.Degree)
	}
}

// inspectRecord pretty-prints one record document, its first result entry,
// and the comment annotations the extractor would see.
func inspectRecord(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))

	record, err := catalog.DecodeRecord(data)
	if err != nil {
		return err
	}
	if len(record.Results) == 0 {
		fmt.Println("record has no results")
		return nil
	}

	result, err := json.MarshalIndent(record.Results[0], "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(result))

	for _, comment := range record.Comments() {
		fmt.Println(comment)
	}
	return nil
}

func buildGraph(dir string, parallel int, isolated bool, skipErrors bool) (*graph.Graph, error) {
	builder := graph.NewBuilder(graph.NewBuilderParams{
		Loader:          catalogio.NewDirectoryRecordLoader(dir),
		ParallelFiles:   parallel,
		IncludeIsolated: isolated,
		FailFast:        !skipErrors,
		OnProgress: func(done int, total int) {
			if done%progressLogEvery != 0 && done != total {
				return
			}
			logger.Info("Building graph", "processed", done, "total", total)
		},
	})

	g, report, err := builder.Build(context.Background())
	if err != nil {
		return nil, err
	}

	for _, failure := range report.Failed {
		logger.Warn("Skipped record document", "key", failure.Key, "err", failure.Err)
	}
	logger.Info(
		"Build finished",
		"total_files", report.TotalFiles,
		"processed", report.Processed,
		"contributing", report.Contributing,
		"failed", len(report.Failed),
	)

	return g, nil
}
