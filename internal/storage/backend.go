package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrNoDocument is returned by Backend.Read when nothing has been saved yet.
var ErrNoDocument = errors.New("no stored document")

// Backend stores one opaque document. Write must be all-or-nothing: a reader
// never observes a partially written document.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

func NewByEngine(ctx context.Context, engine string, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineJSON:
		return NewJSONBackend(path)
	case EngineSQLite:
		return NewSQLiteBackend(ctx, path)
	default:
		return nil, errors.New("unsupported store engine: " + engine)
	}
}
