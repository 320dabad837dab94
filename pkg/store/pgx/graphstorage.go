package pgx

import (
	"context"
	"errors"
	"fmt"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oeis-tools/collab/pkg/graph"
	"github.com/oeis-tools/collab/pkg/store"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// GraphDBStorage implements the GraphStorage and BuildJobStore interfaces
// using PostgreSQL. Node and edge sets are stored row-per-entry, which keeps
// the persisted representation independent of any in-memory graph layout.
type GraphDBStorage struct {
	conn pgxIConn
}

// NewGraphDBStorageWithConnection creates a new GraphDBStorage using an
// existing database connection or pool.
func NewGraphDBStorageWithConnection(conn pgxIConn) *GraphDBStorage {
	return &GraphDBStorage{
		conn: conn,
	}
}

// SaveGraph persists g under the given name, replacing any previously stored
// node and edge sets in one transaction.
func (s *GraphDBStorage) SaveGraph(ctx context.Context, name string, g *graph.Graph) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var graphID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO graphs (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id
	`, name).Scan(&graphID)
	if err != nil {
		return fmt.Errorf("failed to upsert graph '%s': %w", name, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM graph_nodes WHERE graph_id = $1`, graphID); err != nil {
		return fmt.Errorf("failed to clear graph nodes: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM graph_links WHERE graph_id = $1`, graphID); err != nil {
		return fmt.Errorf("failed to clear graph links: %w", err)
	}

	batch := &pgxv5.Batch{}
	for _, node := range g.Nodes() {
		batch.Queue(`INSERT INTO graph_nodes (graph_id, author) VALUES ($1, $2)`, graphID, node)
	}
	for _, edge := range g.Edges() {
		batch.Queue(`INSERT INTO graph_links (graph_id, source, target) VALUES ($1, $2, $3)`, graphID, edge.Source, edge.Target)
	}

	if batch.Len() > 0 {
		results := tx.SendBatch(ctx, batch)
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to insert graph rows: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit graph '%s': %w", name, err)
	}
	return nil
}

// LoadGraph reconstructs the graph stored under name. The returned graph has
// exactly the node and edge sets that were saved.
func (s *GraphDBStorage) LoadGraph(ctx context.Context, name string) (*graph.Graph, error) {
	graphID, err := s.graphID(ctx, name)
	if err != nil {
		return nil, err
	}

	g := graph.New()

	nodeRows, err := s.conn.Query(ctx, `SELECT author FROM graph_nodes WHERE graph_id = $1`, graphID)
	if err != nil {
		return nil, fmt.Errorf("failed to query graph nodes: %w", err)
	}
	defer nodeRows.Close()
	for nodeRows.Next() {
		var author string
		if err := nodeRows.Scan(&author); err != nil {
			return nil, fmt.Errorf("failed to scan graph node: %w", err)
		}
		g.AddNode(author)
	}
	if err := nodeRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read graph nodes: %w", err)
	}

	linkRows, err := s.conn.Query(ctx, `SELECT source, target FROM graph_links WHERE graph_id = $1`, graphID)
	if err != nil {
		return nil, fmt.Errorf("failed to query graph links: %w", err)
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var source, target string
		if err := linkRows.Scan(&source, &target); err != nil {
			return nil, fmt.Errorf("failed to scan graph link: %w", err)
		}
		g.AddEdge(source, target)
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read graph links: %w", err)
	}

	return g, nil
}

// ListGraphs returns every stored graph with its node and edge counts.
func (s *GraphDBStorage) ListGraphs(ctx context.Context) ([]store.GraphInfo, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT
			g.id,
			g.name,
			(SELECT count(*) FROM graph_nodes n WHERE n.graph_id = g.id),
			(SELECT count(*) FROM graph_links l WHERE l.graph_id = g.id),
			g.created_at,
			g.updated_at
		FROM graphs g
		ORDER BY g.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query graphs: %w", err)
	}
	defer rows.Close()

	infos := make([]store.GraphInfo, 0)
	for rows.Next() {
		var info store.GraphInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.NodeCount, &info.EdgeCount, &info.CreatedAt, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan graph info: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read graphs: %w", err)
	}
	return infos, nil
}

// DeleteGraph removes the graph stored under name together with its rows.
func (s *GraphDBStorage) DeleteGraph(ctx context.Context, name string) error {
	tag, err := s.conn.Exec(ctx, `DELETE FROM graphs WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete graph '%s': %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("graph '%s': %w", name, store.ErrNotFound)
	}
	return nil
}

func (s *GraphDBStorage) graphID(ctx context.Context, name string) (int64, error) {
	var graphID int64
	err := s.conn.QueryRow(ctx, `SELECT id FROM graphs WHERE name = $1`, name).Scan(&graphID)
	if errors.Is(err, pgxv5.ErrNoRows) {
		return 0, fmt.Errorf("graph '%s': %w", name, store.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query graph '%s': %w", name, err)
	}
	return graphID, nil
}
