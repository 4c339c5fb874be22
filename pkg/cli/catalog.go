package cli

import (
	"codeberg.org/miketth/kbswitch/pkg/config"
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"codeberg.org/miketth/kbswitch/pkg/layoutsource/ini"
	"codeberg.org/miketth/kbswitch/pkg/layoutsource/registry"
	"fmt"
	"go.uber.org/zap"
)

func layoutSource(cfg *config.Config, log *zap.SugaredLogger) layouts.Source {
	if cfg.LayoutsFile != "" {
		return ini.NewSource(cfg.LayoutsFile)
	}
	return registry.NewSource(log)
}

func loadCatalog(cfg *config.Config, log *zap.SugaredLogger) (*layouts.Catalog, error) {
	catalog, err := layouts.Load(layoutSource(cfg, log))
	if err != nil {
		return nil, fmt.Errorf("load layouts: %w", err)
	}

	log.Debugw("loaded layouts", "count", catalog.Len())
	return catalog, nil
}
