package util

import (
	"sort"

	"github.com/oeis-tools/collab/pkg/graph"
)

// AuthorDegree pairs an author with the number of distinct collaborators.
type AuthorDegree struct {
	Author string `json:"author"`
	Degree int    `json:"degree"`
}

// GraphStats summarizes a collaboration graph for API responses.
type GraphStats struct {
	Nodes      int            `json:"nodes"`
	Edges      int            `json:"edges"`
	Density    float64        `json:"density"`
	TopAuthors []AuthorDegree `json:"top_authors,omitempty"`
}

// ComputeStats derives summary statistics from a graph. topN limits the
// number of authors reported by degree; ties are broken alphabetically.
func ComputeStats(g *graph.Graph, topN int) GraphStats {
	stats := GraphStats{
		Nodes:   g.NodeCount(),
		Edges:   g.EdgeCount(),
		Density: Density(g.NodeCount(), g.EdgeCount()),
	}

	if topN <= 0 {
		return stats
	}

	degrees := make([]AuthorDegree, 0, g.NodeCount())
	for _, author := range g.Nodes() {
		degrees = append(degrees, AuthorDegree{
			Author: author,
			Degree: g.Degree(author),
		})
	}
	sort.Slice(degrees, func(i, j int) bool {
		if degrees[i].Degree != degrees[j].Degree {
			return degrees[i].Degree > degrees[j].Degree
		}
		return degrees[i].Author < degrees[j].Author
	})

	if len(degrees) > topN {
		degrees = degrees[:topN]
	}
	stats.TopAuthors = degrees

	return stats
}

// Density returns the edge density of a simple undirected graph:
// 2E / (N * (N - 1)). Graphs with fewer than two nodes have density 0.
func Density(nodes int, edges int) float64 {
	if nodes < 2 {
		return 0
	}
	return 2 * float64(edges) / (float64(nodes) * float64(nodes-1))
}
