//go:build windows

// Package registry reads the installed keyboard layouts from the Windows
// registry.
package registry

import (
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"golang.org/x/sys/windows/registry"
)

const (
	LayoutsKey  = `SYSTEM\CurrentControlSet\Control\Keyboard Layouts`
	textKey     = "Layout Text"
	layoutIDKey = "Layout Id"
)

type Source struct {
	log *zap.SugaredLogger
}

func NewSource(log *zap.SugaredLogger) *Source {
	return &Source{log: log}
}

func (s *Source) Records() ([]layouts.Record, error) {
	root, err := registry.OpenKey(registry.LOCAL_MACHINE, LayoutsKey, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", LayoutsKey, err)
	}
	defer root.Close()

	names, err := root.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", LayoutsKey, err)
	}

	out := make([]layouts.Record, 0, len(names))
	for _, name := range names {
		rec, err := readRecord(root, name)
		if err != nil {
			s.log.Debugw("skipping keyboard layout", "key", name, "error", err)
			continue
		}
		out = append(out, rec)
	}

	return out, nil
}

func readRecord(root registry.Key, name string) (layouts.Record, error) {
	key, err := registry.OpenKey(root, name, registry.QUERY_VALUE)
	if err != nil {
		return layouts.Record{}, fmt.Errorf("open: %w", err)
	}
	defer key.Close()

	text, _, err := key.GetStringValue(textKey)
	if err != nil {
		return layouts.Record{}, fmt.Errorf("read %q: %w", textKey, err)
	}

	layoutID, _, err := key.GetStringValue(layoutIDKey)
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		return layouts.Record{}, fmt.Errorf("read %q: %w", layoutIDKey, err)
	}

	return layouts.Record{Key: name, Text: text, LayoutID: layoutID}, nil
}
