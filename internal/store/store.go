package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lexreed/docgraph/internal/hierarchy"
)

// ErrNotFound is returned when a document id has no stored hierarchy.
var ErrNotFound = errors.New("document not found")

// Document is a stored hierarchy build result.
type Document struct {
	ID        string          `json:"doc_id"`
	Title     string          `json:"title"`
	CreatedAt time.Time       `json:"created_at"`
	Stats     hierarchy.Stats `json:"stats"`
	Hierarchy json.RawMessage `json:"hierarchy,omitempty"`
}

// Store persists built hierarchies in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path with WAL mode enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	schema := `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	created_at TEXT NOT NULL,
	stats TEXT NOT NULL,
	hierarchy TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces a document result.
func (s *Store) Save(ctx context.Context, doc Document) error {
	stats, err := json.Marshal(doc.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (id, title, created_at, stats, hierarchy) VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.CreatedAt.UTC().Format(time.RFC3339), string(stats), string(doc.Hierarchy),
	)
	if err != nil {
		return fmt.Errorf("save document %s: %w", doc.ID, err)
	}
	return nil
}

// Get returns a document with its full hierarchy JSON.
func (s *Store) Get(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, created_at, stats, hierarchy FROM documents WHERE id = ?`, id)

	var doc Document
	var createdAt, stats, tree string
	if err := row.Scan(&doc.ID, &doc.Title, &createdAt, &stats, &tree); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for %s: %w", id, err)
	}
	doc.CreatedAt = t
	if err := json.Unmarshal([]byte(stats), &doc.Stats); err != nil {
		return nil, fmt.Errorf("unmarshal stats for %s: %w", id, err)
	}
	doc.Hierarchy = json.RawMessage(tree)
	return &doc, nil
}

// List returns document metadata (no hierarchy payload), newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, created_at, stats FROM documents ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]Document, 0, 16)
	for rows.Next() {
		var doc Document
		var createdAt, stats string
		if err := rows.Scan(&doc.ID, &doc.Title, &createdAt, &stats); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", doc.ID, err)
		}
		doc.CreatedAt = t
		if err := json.Unmarshal([]byte(stats), &doc.Stats); err != nil {
			return nil, fmt.Errorf("unmarshal stats for %s: %w", doc.ID, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete removes a document. Returns ErrNotFound when the id is unknown.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
