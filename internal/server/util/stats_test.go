package util

import (
	"math"
	"reflect"
	"testing"

	"github.com/oeis-tools/collab/pkg/graph"
)

func TestDensity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		nodes int
		edges int
		want  float64
	}{
		{
			name:  "empty_graph",
			nodes: 0,
			edges: 0,
			want:  0,
		},
		{
			name:  "single_node",
			nodes: 1,
			edges: 0,
			want:  0,
		},
		{
			name:  "complete_pair",
			nodes: 2,
			edges: 1,
			want:  1,
		},
		{
			name:  "triangle",
			nodes: 3,
			edges: 3,
			want:  1,
		},
		{
			name:  "path_of_three",
			nodes: 3,
			edges: 2,
			want:  2.0 / 3.0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Density(tc.nodes, tc.edges)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("density = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddClique([]string{"Alice Example", "Bob Carter", "Dana Lee"})
	g.AddEdge("Alice Example", "Eve Fisher")

	stats := ComputeStats(g, 2)

	if stats.Nodes != 4 {
		t.Fatalf("nodes = %d, want 4", stats.Nodes)
	}
	if stats.Edges != 4 {
		t.Fatalf("edges = %d, want 4", stats.Edges)
	}

	want := []AuthorDegree{
		{Author: "Alice Example", Degree: 3},
		{Author: "Bob Carter", Degree: 2},
	}
	if !reflect.DeepEqual(stats.TopAuthors, want) {
		t.Fatalf("top authors = %v, want %v", stats.TopAuthors, want)
	}
}

func TestComputeStatsTiesBreakAlphabetically(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("Dana Lee", "Bob Carter")

	stats := ComputeStats(g, 10)

	want := []AuthorDegree{
		{Author: "Bob Carter", Degree: 1},
		{Author: "Dana Lee", Degree: 1},
	}
	if !reflect.DeepEqual(stats.TopAuthors, want) {
		t.Fatalf("top authors = %v, want %v", stats.TopAuthors, want)
	}
}

func TestComputeStatsWithoutTopAuthors(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("Alice Example", "Dana Lee")

	stats := ComputeStats(g, 0)
	if stats.TopAuthors != nil {
		t.Fatalf("top authors = %v, want none", stats.TopAuthors)
	}
}
