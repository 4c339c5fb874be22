package sqlite

import (
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"codeberg.org/miketth/kbswitch/pkg/layoutstore/sqlite/migrations"
	"context"
	"database/sql"
	"errors"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type LayoutStore struct {
	db      *sql.DB
	querier *Queries
}

func NewLayoutStore(filename string, log *zap.SugaredLogger) (*LayoutStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	querier := New(db)

	return &LayoutStore{
		db:      db,
		querier: querier,
	}, nil
}

func (s *LayoutStore) Close() error {
	return s.db.Close()
}

func (s *LayoutStore) GetWindowLayout(window kbswitch.Window) (kbswitch.WindowLayout, bool, error) {
	row, err := s.querier.GetWindowLayout(context.Background(), int64(window))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return kbswitch.WindowLayout{}, false, nil
	case err != nil:
		return kbswitch.WindowLayout{}, false, fmt.Errorf("sqlite select: %w", err)
	}

	return kbswitch.WindowLayout{
		Layout: layouts.Handle(row.Layout),
		Thread: uint32(row.ThreadID),
	}, true, nil
}

func (s *LayoutStore) SetWindowLayout(window kbswitch.Window, layout kbswitch.WindowLayout) error {
	if err := s.querier.SetWindowLayout(context.Background(), SetWindowLayoutParams{
		Hwnd:     int64(window),
		Layout:   int64(layout.Layout),
		ThreadID: int64(layout.Thread),
	}); err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}

func (s *LayoutStore) ForgetWindow(window kbswitch.Window) error {
	if err := s.querier.ForgetWindow(context.Background(), int64(window)); err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}

	return nil
}

func (s *LayoutStore) Windows() ([]kbswitch.Window, error) {
	hwnds, err := s.querier.ListWindows(context.Background())
	if err != nil {
		return nil, fmt.Errorf("sqlite select: %w", err)
	}

	windows := make([]kbswitch.Window, 0, len(hwnds))
	for _, hwnd := range hwnds {
		windows = append(windows, kbswitch.Window(hwnd))
	}

	return windows, nil
}
