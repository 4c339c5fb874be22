package json

import (
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"
)

const DefaultSaveInterval = time.Minute

type record struct {
	Layout layouts.Handle `json:"layout"`
	Thread uint32         `json:"thread"`
}

// UnmarshalJSON also reads the bare layout numbers of older files. Those
// carry no thread, so they never match a live window and get pruned.
func (r *record) UnmarshalJSON(data []byte) error {
	var layout layouts.Handle
	if err := json.Unmarshal(data, &layout); err == nil {
		*r = record{Layout: layout}
		return nil
	}

	type plain record
	return json.Unmarshal(data, (*plain)(r))
}

type LayoutStore struct {
	layouts map[kbswitch.Window]record
	file    *os.File
	lock    sync.Mutex
	dirty   bool

	SaveInterval time.Duration
}

func NewLayoutStore(filename string) (*LayoutStore, error) {
	fileExists := true
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		fileExists = false
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &LayoutStore{
		layouts:      make(map[kbswitch.Window]record),
		file:         file,
		dirty:        true,
		SaveInterval: DefaultSaveInterval,
	}

	if fileExists {
		err = store.load()
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("load: %w", err)
		}

		store.dirty = false
	}

	return store, nil
}

func (s *LayoutStore) Close() error {
	if err := s.save(); err != nil {
		s.file.Close()
		return fmt.Errorf("save: %w", err)
	}
	return s.file.Close()
}

func (s *LayoutStore) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	dec := json.NewDecoder(s.file)
	err = dec.Decode(&s.layouts)
	switch {
	case errors.Is(err, io.EOF):
		// empty file, nothing remembered yet
	case err != nil:
		return fmt.Errorf("decode json: %w", err)
	}

	if s.layouts == nil {
		s.layouts = make(map[kbswitch.Window]record)
	}

	return nil
}

func (s *LayoutStore) save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	_, err := s.file.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	err = s.file.Truncate(0)
	if err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	enc := json.NewEncoder(s.file)
	err = enc.Encode(s.layouts)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	s.dirty = false

	return nil
}

// SaveLooper writes pending changes every SaveInterval and once more when
// ctx is done.
func (s *LayoutStore) SaveLooper(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			err := s.save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}

			return ctx.Err()
		case <-time.After(s.SaveInterval):
			err := s.save()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *LayoutStore) GetWindowLayout(window kbswitch.Window) (kbswitch.WindowLayout, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	r, ok := s.layouts[window]
	return kbswitch.WindowLayout{Layout: r.Layout, Thread: r.Thread}, ok, nil
}

func (s *LayoutStore) SetWindowLayout(window kbswitch.Window, layout kbswitch.WindowLayout) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.layouts[window] = record{Layout: layout.Layout, Thread: layout.Thread}
	s.dirty = true
	return nil
}

func (s *LayoutStore) ForgetWindow(window kbswitch.Window) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.layouts[window]; !ok {
		return nil
	}
	delete(s.layouts, window)
	s.dirty = true
	return nil
}

func (s *LayoutStore) Windows() ([]kbswitch.Window, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	windows := make([]kbswitch.Window, 0, len(s.layouts))
	for window := range s.layouts {
		windows = append(windows, window)
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i] < windows[j] })
	return windows, nil
}
