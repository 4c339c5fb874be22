package memory

import (
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"sort"
)

type LayoutStore struct {
	layouts map[kbswitch.Window]kbswitch.WindowLayout
}

func NewLayoutStore() *LayoutStore {
	return &LayoutStore{
		layouts: make(map[kbswitch.Window]kbswitch.WindowLayout),
	}
}

func (s *LayoutStore) GetWindowLayout(window kbswitch.Window) (kbswitch.WindowLayout, bool, error) {
	layout, ok := s.layouts[window]
	return layout, ok, nil
}

func (s *LayoutStore) SetWindowLayout(window kbswitch.Window, layout kbswitch.WindowLayout) error {
	s.layouts[window] = layout
	return nil
}

func (s *LayoutStore) ForgetWindow(window kbswitch.Window) error {
	delete(s.layouts, window)
	return nil
}

func (s *LayoutStore) Windows() ([]kbswitch.Window, error) {
	windows := make([]kbswitch.Window, 0, len(s.layouts))
	for window := range s.layouts {
		windows = append(windows, window)
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i] < windows[j] })
	return windows, nil
}

func (s *LayoutStore) Len() int {
	return len(s.layouts)
}
