package root

import (
	"context"

	"go.uber.org/zap"

	"reconnect/internal/engine"
	"reconnect/internal/storage"
)

func (a *app) openGateway(ctx context.Context) (*storage.Gateway, error) {
	path, err := a.cfg.Store.DataPath()
	if err != nil {
		return nil, err
	}
	backend, err := storage.NewByEngine(ctx, a.cfg.Store.Engine, path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("store opened", zap.String("engine", a.cfg.Store.Engine), zap.String("path", path))
	return storage.NewGateway(backend, a.log.Named("store")), nil
}

// openService loads the state and seeds sample data on a first run when the
// config asks for it.
func (a *app) openService(ctx context.Context) (*engine.Service, func(), error) {
	gw, err := a.openGateway(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = gw.Close()
	}

	svc := engine.NewService(ctx, gw, engine.WithLogger(a.log.Named("engine")))
	if a.cfg.SeedSampleData && svc.SeedSampleData(ctx) {
		a.log.Info("seeded sample data")
	}
	return svc, cleanup, nil
}

// shortID is the id prefix shown in listings; any unique prefix resolves.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
