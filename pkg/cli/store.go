package cli

import (
	"codeberg.org/miketth/kbswitch/pkg/config"
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"codeberg.org/miketth/kbswitch/pkg/layoutstore/json"
	"codeberg.org/miketth/kbswitch/pkg/layoutstore/memory"
	"codeberg.org/miketth/kbswitch/pkg/layoutstore/sqlite"
	"context"
	"fmt"
	"go.uber.org/zap"
)

// windowStore is a layout store with whatever upkeep it needs.
type windowStore struct {
	kbswitch.WindowLayoutStore

	// close flushes and releases the store.
	close func() error
	// loop runs in the background while the store is open, if set.
	loop func(ctx context.Context) error
}

func openStore(cfg *config.Config, log *zap.SugaredLogger) (*windowStore, error) {
	if cfg.Store == config.StoreMemory {
		return &windowStore{
			WindowLayoutStore: memory.NewLayoutStore(),
			close:             func() error { return nil },
		}, nil
	}

	path, err := cfg.StoreFile()
	if err != nil {
		return nil, err
	}

	switch cfg.Store {
	case config.StoreJSON:
		store, err := json.NewLayoutStore(path)
		if err != nil {
			return nil, fmt.Errorf("open json store %s: %w", path, err)
		}
		return &windowStore{
			WindowLayoutStore: store,
			close:             store.Close,
			loop:              store.SaveLooper,
		}, nil
	case config.StoreSQLite:
		store, err := sqlite.NewLayoutStore(path, log)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", path, err)
		}
		return &windowStore{
			WindowLayoutStore: store,
			close:             store.Close,
		}, nil
	}

	return nil, fmt.Errorf("%w %q", config.ErrUnknownStore, cfg.Store)
}
