package graph

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	catalogio "github.com/oeis-tools/collab/pkg/catalog/io"
)

func writeRecord(t *testing.T, dir string, name string, comments []string) {
	t.Helper()

	doc := map[string]any{
		"results": []map[string]any{
			{"comment": comments},
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
}

func TestBuildAccumulatesCliquesAcrossRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "a000001.json", []string{"_Alice Example_, _Dana Lee_"})
	writeRecord(t, dir, "a000002.json", []string{"_Dana Lee_ and _Bob Carter_"})
	writeRecord(t, dir, "a000003.json", []string{"_Alice Example_ alone."})
	writeRecord(t, dir, "a000004.json", []string{"No attribution at all."})

	builder := NewBuilder(NewBuilderParams{
		Loader: catalogio.NewDirectoryRecordLoader(dir),
	})

	g, report, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	wantNodes := []string{"Alice Example", "Bob Carter", "Dana Lee"}
	if got := g.Nodes(); !reflect.DeepEqual(got, wantNodes) {
		t.Fatalf("nodes = %v, want %v", got, wantNodes)
	}
	wantEdges := []Edge{
		{Source: "Alice Example", Target: "Dana Lee"},
		{Source: "Bob Carter", Target: "Dana Lee"},
	}
	if got := g.Edges(); !reflect.DeepEqual(got, wantEdges) {
		t.Fatalf("edges = %v, want %v", got, wantEdges)
	}

	if report.TotalFiles != 4 {
		t.Fatalf("total files = %d, want 4", report.TotalFiles)
	}
	if report.Processed != 4 {
		t.Fatalf("processed = %d, want 4", report.Processed)
	}
	if report.Contributing != 2 {
		t.Fatalf("contributing = %d, want 2", report.Contributing)
	}
	if len(report.Failed) != 0 {
		t.Fatalf("failed = %v, want none", report.Failed)
	}
}

func TestBuildIsOrderIndependent(t *testing.T) {
	t.Parallel()

	comments := map[string][]string{
		"x1.json": {"_Alice Example_, _Dana Lee_"},
		"x2.json": {"_Dana Lee_, _Bob Carter_"},
		"x3.json": {"_Bob Carter_, _Alice Example_"},
	}

	var graphs []*Graph
	for _, parallel := range []int{1, 3} {
		dir := t.TempDir()
		for name, lines := range comments {
			writeRecord(t, dir, name, lines)
		}

		builder := NewBuilder(NewBuilderParams{
			Loader:        catalogio.NewDirectoryRecordLoader(dir),
			ParallelFiles: parallel,
		})
		g, _, err := builder.Build(context.Background())
		if err != nil {
			t.Fatalf("build with parallelism %d failed: %v", parallel, err)
		}
		graphs = append(graphs, g)
	}

	if !reflect.DeepEqual(graphs[0].Nodes(), graphs[1].Nodes()) {
		t.Fatalf("node sets differ: %v vs %v", graphs[0].Nodes(), graphs[1].Nodes())
	}
	if !reflect.DeepEqual(graphs[0].Edges(), graphs[1].Edges()) {
		t.Fatalf("edge sets differ: %v vs %v", graphs[0].Edges(), graphs[1].Edges())
	}
}

func TestBuildIsolatedNodePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		includeIsolated bool
		wantNodes       []string
	}{
		{
			name:            "suppressed_by_default",
			includeIsolated: false,
			wantNodes:       nil,
		},
		{
			name:            "kept_when_enabled",
			includeIsolated: true,
			wantNodes:       []string{"Alice Example"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeRecord(t, dir, "solo.json", []string{"_Alice Example_ contributed this."})

			builder := NewBuilder(NewBuilderParams{
				Loader:          catalogio.NewDirectoryRecordLoader(dir),
				IncludeIsolated: tc.includeIsolated,
			})
			g, _, err := builder.Build(context.Background())
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}

			got := g.Nodes()
			if len(got) == 0 && len(tc.wantNodes) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.wantNodes) {
				t.Fatalf("nodes = %v, want %v", got, tc.wantNodes)
			}
		})
	}
}

func TestBuildFailFastAbortsOnMalformedRecord(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "good.json", []string{"_Alice Example_, _Dana Lee_"})
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	builder := NewBuilder(NewBuilderParams{
		Loader:   catalogio.NewDirectoryRecordLoader(dir),
		FailFast: true,
	})
	if _, _, err := builder.Build(context.Background()); err == nil {
		t.Fatal("expected build to fail on the malformed record")
	}
}

func TestBuildSkipsAndReportsMalformedRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "good.json", []string{"_Alice Example_, _Dana Lee_"})
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	builder := NewBuilder(NewBuilderParams{
		Loader: catalogio.NewDirectoryRecordLoader(dir),
	})
	g, report, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(report.Failed) != 1 {
		t.Fatalf("failed = %v, want exactly one entry", report.Failed)
	}
	if report.Failed[0].Key != "bad.json" {
		t.Fatalf("failed key = %q, want bad.json", report.Failed[0].Key)
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("edge count = %d, want 1", g.EdgeCount())
	}
}

func TestBuildIgnoresFilesWithOtherExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "a.json", []string{"_Alice Example_, _Dana Lee_"})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a record"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	builder := NewBuilder(NewBuilderParams{
		Loader: catalogio.NewDirectoryRecordLoader(dir),
	})
	_, report, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if report.TotalFiles != 1 {
		t.Fatalf("total files = %d, want 1", report.TotalFiles)
	}
}

func TestBuildReportsProgress(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "a.json", []string{"_Alice Example_, _Dana Lee_"})
	writeRecord(t, dir, "b.json", []string{"_Dana Lee_, _Bob Carter_"})

	var finalDone, finalTotal int
	builder := NewBuilder(NewBuilderParams{
		Loader:        catalogio.NewDirectoryRecordLoader(dir),
		ParallelFiles: 1,
		OnProgress: func(done int, total int) {
			finalDone, finalTotal = done, total
		},
	})
	if _, _, err := builder.Build(context.Background()); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if finalDone != 2 || finalTotal != 2 {
		t.Fatalf("final progress = %d/%d, want 2/2", finalDone, finalTotal)
	}
}
