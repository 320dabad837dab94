package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// Node is one entry of a document's node list.
type Node struct {
	ID string `json:"id"`
}

// Document is the node/link exchange representation of a collaboration
// graph. The shape is compatible with the node-link JSON convention used by
// common graph toolkits, so a persisted graph can be handed straight to
// downstream clique or centrality analysis.
type Document struct {
	Directed   bool           `json:"directed"`
	Multigraph bool           `json:"multigraph"`
	Graph      map[string]any `json:"graph"`
	Nodes      []Node         `json:"nodes"`
	Links      []Edge         `json:"links"`
}

// Encode converts a graph into its exchange document. Nodes and links are
// emitted in sorted order so encoding is deterministic.
func Encode(g *Graph) *Document {
	nodes := make([]Node, 0, g.NodeCount())
	for _, name := range g.Nodes() {
		nodes = append(nodes, Node{ID: name})
	}
	return &Document{
		Directed:   false,
		Multigraph: false,
		Graph:      map[string]any{},
		Nodes:      nodes,
		Links:      g.Edges(),
	}
}

// Decode reconstructs a graph from an exchange document. Order is not
// significant; duplicate links collapse to one edge and self-loops are
// dropped, since the graph is simple.
func Decode(doc *Document) *Graph {
	g := New()
	if doc == nil {
		return g
	}
	for _, node := range doc.Nodes {
		g.AddNode(node.ID)
	}
	for _, link := range doc.Links {
		g.AddEdge(link.Source, link.Target)
	}
	return g
}

// Marshal encodes a graph to node/link JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	data, err := json.Marshal(Encode(g))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph document: %w", err)
	}
	return data, nil
}

// Unmarshal decodes node/link JSON bytes into a graph.
func Unmarshal(data []byte) (*Graph, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse graph document: %w", err)
	}
	return Decode(&doc), nil
}

// WriteFile persists a graph as a node/link JSON document at path.
func WriteFile(path string, g *Graph) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write graph document '%s': %w", path, err)
	}
	return nil
}

// ReadFile loads a graph from a node/link JSON document at path.
func ReadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph document '%s': %w", path, err)
	}
	g, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("graph document '%s': %w", path, err)
	}
	return g, nil
}
