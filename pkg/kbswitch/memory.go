package kbswitch

import (
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"go.uber.org/zap"
)

type layoutQuerier interface {
	ThreadID(window Window) uint32
	KeyboardLayout(threadID uint32) layouts.Handle
}

// WindowMemory remembers the layout of windows whose threads can't be asked.
type WindowMemory struct {
	store   WindowLayoutStore
	querier layoutQuerier
	log     *zap.SugaredLogger
}

func NewWindowMemory(store WindowLayoutStore, querier layoutQuerier, log *zap.SugaredLogger) *WindowMemory {
	return &WindowMemory{
		store:   store,
		querier: querier,
		log:     log,
	}
}

func (m *WindowMemory) Remember(window Window, layout layouts.Handle) {
	remembered := WindowLayout{Layout: layout, Thread: m.querier.ThreadID(window)}
	if err := m.store.SetWindowLayout(window, remembered); err != nil {
		m.log.Warnw("failed to remember window layout", "window", window, "layout", layout, "error", err)
	}
}

// Resolve returns the remembered layout of window, falling back to the
// layout of its thread and then to the layout of the calling thread. An
// entry recorded for another thread belongs to a dead window whose handle
// was reused; it is forgotten.
func (m *WindowMemory) Resolve(window Window) layouts.Handle {
	thread := m.querier.ThreadID(window)

	remembered, found, err := m.store.GetWindowLayout(window)
	switch {
	case err != nil:
		m.log.Warnw("failed to recall window layout", "window", window, "error", err)
	case found && remembered.Thread == thread:
		return remembered.Layout
	case found:
		m.log.Debugw("dropping layout of a reused window handle", "window", window, "thread", thread, "remembered_thread", remembered.Thread)
		m.Forget(window)
	}

	layout := m.querier.KeyboardLayout(thread)
	if layout == 0 {
		layout = m.querier.KeyboardLayout(0)
	}

	return layout
}

func (m *WindowMemory) Forget(window Window) {
	if err := m.store.ForgetWindow(window); err != nil {
		m.log.Warnw("failed to forget window layout", "window", window, "error", err)
	}
}

// Prune drops remembered windows that are gone or whose handle now belongs
// to another thread. Persistent stores outlive the windows they describe,
// so this runs once after opening them.
func (m *WindowMemory) Prune(alive func(Window) bool) (int, error) {
	windows, err := m.store.Windows()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, window := range windows {
		remembered, found, err := m.store.GetWindowLayout(window)
		if err != nil {
			return pruned, err
		}
		if found && alive(window) && remembered.Thread == m.querier.ThreadID(window) {
			continue
		}
		if err := m.store.ForgetWindow(window); err != nil {
			return pruned, err
		}
		pruned++
	}

	return pruned, nil
}
