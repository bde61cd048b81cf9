package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Gateway is the only component that touches durable storage. Load never fails;
// Save reports errors and leaves it to the caller whether they matter.
type Gateway struct {
	backend Backend
	log     *zap.Logger
}

func NewGateway(backend Backend, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{backend: backend, log: log}
}

// Load returns the stored state merged over defaults, or DefaultState when the
// document is missing or unreadable. found reports whether a usable document existed.
func (g *Gateway) Load(ctx context.Context) (st State, found bool) {
	data, err := g.backend.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoDocument) {
			g.log.Warn("load state failed, using defaults", zap.Error(err))
		}
		return DefaultState(), false
	}

	st, err = MergeOverDefaults(data)
	if err != nil {
		g.log.Warn("stored state is malformed, using defaults", zap.Error(err))
		return DefaultState(), false
	}
	return st, true
}

func (g *Gateway) Save(ctx context.Context, st State) error {
	st.normalize()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := g.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	g.log.Debug("state saved", zap.Int("bytes", len(data)))
	return nil
}

func (g *Gateway) Close() error {
	return g.backend.Close()
}
