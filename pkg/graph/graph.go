package graph

import "sort"

// Edge is an unordered pair of author names. Edges are normalized so that
// Source sorts before Target, which makes {a, b} and {b, a} the same value.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewEdge returns the normalized edge between a and b.
func NewEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{Source: a, Target: b}
}

// Graph is a simple undirected collaboration graph: a set of author nodes
// and a set of unordered author-pair edges, with no parallel edges and no
// self-loops. All mutations are idempotent set unions.
//
// Graph is not safe for concurrent mutation; the builder serializes its
// merge step behind a mutex.
type Graph struct {
	nodes map[string]struct{}
	edges map[Edge]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[Edge]struct{}),
	}
}

// AddNode adds an author node. Re-adding an existing node is a no-op.
func (g *Graph) AddNode(name string) {
	if name == "" {
		return
	}
	g.nodes[name] = struct{}{}
}

// HasNode reports whether the author is present in the graph.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// AddEdge adds the undirected edge {a, b} and both endpoint nodes.
// Self-loops are rejected and re-adding an existing edge is a no-op.
func (g *Graph) AddEdge(a, b string) {
	if a == "" || b == "" || a == b {
		return
	}
	g.AddNode(a)
	g.AddNode(b)
	g.edges[NewEdge(a, b)] = struct{}{}
}

// HasEdge reports whether the undirected edge {a, b} is present.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.edges[NewEdge(a, b)]
	return ok
}

// AddClique adds an edge for every unordered pair drawn from names, turning
// the set into a clique. Fewer than two names is a no-op.
func (g *Graph) AddClique(names []string) {
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			g.AddEdge(names[i], names[j])
		}
	}
}

// Merge folds every node and edge of other into g.
func (g *Graph) Merge(other *Graph) {
	if other == nil {
		return
	}
	for name := range other.nodes {
		g.nodes[name] = struct{}{}
	}
	for edge := range other.edges {
		g.edges[edge] = struct{}{}
	}
}

// NodeCount returns the number of author nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns all author names in sorted order.
func (g *Graph) Nodes() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Edges returns all edges sorted by source, then target.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for edge := range g.edges {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Neighbors returns the sorted collaborators of the given author.
func (g *Graph) Neighbors(name string) []string {
	var neighbors []string
	for edge := range g.edges {
		switch name {
		case edge.Source:
			neighbors = append(neighbors, edge.Target)
		case edge.Target:
			neighbors = append(neighbors, edge.Source)
		}
	}
	sort.Strings(neighbors)
	return neighbors
}

// Degree returns the number of collaborators of the given author.
func (g *Graph) Degree(name string) int {
	degree := 0
	for edge := range g.edges {
		if edge.Source == name || edge.Target == name {
			degree++
		}
	}
	return degree
}
