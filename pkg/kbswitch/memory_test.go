package kbswitch_test

import (
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	jsonstore "codeberg.org/miketth/kbswitch/pkg/layoutstore/json"
	"codeberg.org/miketth/kbswitch/pkg/layoutstore/memory"
	"errors"
	"go.uber.org/zap/zaptest"
	"path/filepath"
	"testing"
)

var (
	us      = layouts.MakeHandle(0x0409, 0x0409)
	russian = layouts.MakeHandle(0x0419, 0x0419)
	dvorak  = layouts.MakeVariantHandle(0x0409, 2)
	polish  = layouts.MakeHandle(0x0415, 0x0415)
)

func TestWindowMemory_RememberResolve(t *testing.T) {
	fs := newFakeSystem().add(1, fakeWindow{thread: 10})
	fs.threadLayouts[10] = us

	mem := kbswitch.NewWindowMemory(memory.NewLayoutStore(), fs, zaptest.NewLogger(t).Sugar())

	mem.Remember(1, russian)
	if got := mem.Resolve(1); got != russian {
		t.Errorf("got %s, want remembered %s", got, russian)
	}

	mem.Remember(1, dvorak)
	if got := mem.Resolve(1); got != dvorak {
		t.Errorf("got %s, want overwritten %s", got, dvorak)
	}
}

func TestWindowMemory_Forget(t *testing.T) {
	fs := newFakeSystem().add(1, fakeWindow{thread: 10})
	fs.threadLayouts[10] = us
	store := memory.NewLayoutStore()

	mem := kbswitch.NewWindowMemory(store, fs, zaptest.NewLogger(t).Sugar())
	mem.Remember(1, russian)
	mem.Forget(1)
	mem.Forget(1)

	if got := mem.Resolve(1); got != us {
		t.Errorf("got %s, want thread layout %s", got, us)
	}
	if _, ok, _ := store.GetWindowLayout(1); ok {
		t.Error("store still contains the forgotten window")
	}
}

func TestWindowMemory_FallsBackToDefault(t *testing.T) {
	fs := newFakeSystem().add(1, fakeWindow{thread: 10})
	fs.threadLayouts[0] = polish

	mem := kbswitch.NewWindowMemory(memory.NewLayoutStore(), fs, zaptest.NewLogger(t).Sugar())

	if got := mem.Resolve(1); got != polish {
		t.Errorf("got %s, want default %s", got, polish)
	}
}

type brokenStore struct {
	*memory.LayoutStore
}

func (brokenStore) GetWindowLayout(kbswitch.Window) (kbswitch.WindowLayout, bool, error) {
	return kbswitch.WindowLayout{Layout: russian, Thread: 10}, true, errors.New("disk on fire")
}

func TestWindowMemory_StoreErrorIsAMiss(t *testing.T) {
	fs := newFakeSystem().add(1, fakeWindow{thread: 10})
	fs.threadLayouts[10] = us

	mem := kbswitch.NewWindowMemory(brokenStore{memory.NewLayoutStore()}, fs, zaptest.NewLogger(t).Sugar())

	if got := mem.Resolve(1); got != us {
		t.Errorf("got %s, want %s", got, us)
	}
}

func TestWindowMemory_Prune(t *testing.T) {
	fs := newFakeSystem()
	store := memory.NewLayoutStore()
	mem := kbswitch.NewWindowMemory(store, fs, zaptest.NewLogger(t).Sugar())

	mem.Remember(1, us)
	mem.Remember(2, russian)
	mem.Remember(3, dvorak)

	pruned, err := mem.Prune(func(w kbswitch.Window) bool { return w == 2 })
	if err != nil {
		t.Fatal(err)
	}
	if pruned != 2 {
		t.Errorf("pruned %d windows, want 2", pruned)
	}

	windows, _ := store.Windows()
	if len(windows) != 1 || windows[0] != 2 {
		t.Errorf("got %v, want only window 2", windows)
	}
}

func TestWindowMemory_ReusedHandle(t *testing.T) {
	fs := newFakeSystem().add(1, fakeWindow{thread: 10})
	fs.threadLayouts[99] = us
	store := memory.NewLayoutStore()

	mem := kbswitch.NewWindowMemory(store, fs, zaptest.NewLogger(t).Sugar())
	mem.Remember(1, russian)

	// the console closed without a destroy notification and a new window
	// on another thread got the same handle
	fs.add(1, fakeWindow{thread: 99})

	if got := mem.Resolve(1); got != us {
		t.Errorf("got %s, want the new window's thread layout %s", got, us)
	}
	if store.Len() != 0 {
		t.Errorf("store still holds %d entries", store.Len())
	}
}

func TestWindowMemory_PruneReusedHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "windows.json")
	log := zaptest.NewLogger(t).Sugar()

	store, err := jsonstore.NewLayoutStore(path)
	if err != nil {
		t.Fatal(err)
	}
	before := newFakeSystem().
		add(1, fakeWindow{thread: 10}).
		add(2, fakeWindow{thread: 20})
	mem := kbswitch.NewWindowMemory(store, before, log)
	mem.Remember(1, russian)
	mem.Remember(2, dvorak)
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = jsonstore.NewLayoutStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	after := newFakeSystem().
		add(1, fakeWindow{thread: 99}).
		add(2, fakeWindow{thread: 20})
	after.threadLayouts[99] = us
	mem = kbswitch.NewWindowMemory(store, after, log)

	pruned, err := mem.Prune(func(kbswitch.Window) bool { return true })
	if err != nil {
		t.Fatal(err)
	}
	if pruned != 1 {
		t.Errorf("pruned %d windows, want 1", pruned)
	}

	if got := mem.Resolve(1); got != us {
		t.Errorf("reused handle: got %s, want %s", got, us)
	}
	if got := mem.Resolve(2); got != dvorak {
		t.Errorf("surviving window: got %s, want %s", got, dvorak)
	}
}
