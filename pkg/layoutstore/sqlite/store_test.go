package sqlite

import (
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"go.uber.org/zap/zaptest"
	"path/filepath"
	"testing"
)

func TestLayoutStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.db")
	log := zaptest.NewLogger(t).Sugar()

	s, err := NewLayoutStore(path, log)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, err := s.GetWindowLayout(0x10); ok || err != nil {
		t.Fatalf("empty store: got %v, %v", ok, err)
	}

	_ = s.SetWindowLayout(0x10, kbswitch.WindowLayout{Layout: layouts.Handle(0x04090409), Thread: 5})
	_ = s.SetWindowLayout(0x20, kbswitch.WindowLayout{Layout: layouts.Handle(0xF0020409), Thread: 6})
	_ = s.SetWindowLayout(0x10, kbswitch.WindowLayout{Layout: layouts.Handle(0x04190419), Thread: 7})
	_ = s.ForgetWindow(0x30)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// migrations must be idempotent on reopen
	s, err = NewLayoutStore(path, log)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, ok, err := s.GetWindowLayout(0x10)
	if err != nil || !ok || got.Layout != 0x04190419 || got.Thread != 7 {
		t.Errorf("got %+v, %v, %v, want 04190419 on thread 7", got, ok, err)
	}

	got, ok, err = s.GetWindowLayout(0x20)
	if err != nil || !ok || got.Layout != 0xF0020409 || got.Thread != 6 {
		t.Errorf("got %+v, %v, %v, want F0020409 on thread 6", got, ok, err)
	}

	if err := s.ForgetWindow(0x10); err != nil {
		t.Fatal(err)
	}

	windows, err := s.Windows()
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 1 || windows[0] != 0x20 {
		t.Errorf("got windows %v, want [0x20]", windows)
	}
}

var _ kbswitch.WindowLayoutStore = (*LayoutStore)(nil)
