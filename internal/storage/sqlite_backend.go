package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const stateDocumentKey = "state"

// SQLiteBackend keeps the document as a single row of the documents table.
type SQLiteBackend struct {
	db *sql.DB
}

func NewSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite store: path is required")
	}
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) DB() *sql.DB { return b.db }

func (b *SQLiteBackend) Read(ctx context.Context) ([]byte, error) {
	row := b.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, stateDocumentKey)
	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("document get: %w", err)
	}
	return []byte(body), nil
}

func (b *SQLiteBackend) Write(ctx context.Context, data []byte) error {
	return withTx(ctx, b.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
		`, stateDocumentKey, string(data), time.Now().UTC())
		if err != nil {
			return fmt.Errorf("document upsert: %w", err)
		}
		return nil
	})
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
