package kbswitch

import (
	"codeberg.org/miketth/kbswitch/pkg/menu"
	"context"
	"go.uber.org/zap"
)

type Tracker struct {
	windows   WindowSystem
	filter    Filter
	indicator Indicator
	describer menu.Describer
	log       *zap.SugaredLogger
}

func NewTracker(
	windows WindowSystem,
	indicator Indicator,
	describer menu.Describer,
	log *zap.SugaredLogger,
) *Tracker {
	return &Tracker{
		windows:   windows,
		filter:    NewFilter(windows),
		indicator: indicator,
		describer: describer,
		log:       log,
	}
}

// Start shows the layout of kbswitch's own thread before any event arrives.
func (t *Tracker) Start(st *State) {
	st.TrayWindow = t.windows.TrayWindow()
	st.Current = t.windows.KeyboardLayout(0)
	t.refresh(st)
}

// Run handles events until ctx is done or events is closed.
func (t *Tracker) Run(ctx context.Context, st *State, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.Handle(st, ev)
		}
	}
}

func (t *Tracker) Handle(st *State, ev Event) {
	switch ev := ev.(type) {
	case LanguageChanged:
		t.processLanguageChange(st, ev)
	case WindowActivated:
		t.processActivation(st, ev)
	case WindowCreated:
		t.log.Debugw("window created", t.describe(ev.Window)...)
	case WindowDestroyed:
		t.processDestroy(st, ev)
	case FocusSet:
		t.log.Debugw("focus set", append(t.describe(ev.Gaining), "losing", ev.Losing)...)
	case TimerTick:
		t.processTick(st)
	case LayoutRequested:
		t.chooseLayout(st, ev.Layout)
		st.Current = ev.Layout
		t.refresh(st)
	case NextLayoutRequested:
		next, ok := NextLayout(t.windows.KeyboardLayouts(), st.Current)
		if !ok {
			t.log.Debugw("no next layout", "current", st.Current)
			return
		}
		t.chooseLayout(st, next)
	case TaskbarRestarted:
		st.TrayWindow = t.windows.TrayWindow()
		t.refresh(st)
	default:
		t.log.Warnf("unknown event %T", ev)
	}
}

func (t *Tracker) processLanguageChange(st *State, ev LanguageChanged) {
	t.log.Debugw("language changed", append(t.describe(ev.Window), "layout", ev.Layout)...)

	if ev.Window == 0 || ev.Layout == 0 {
		return
	}
	if t.filter.IsIgnored(ev.Window, st.TrayWindow) {
		return
	}

	if IsConsole(t.windows, ev.Window) {
		st.Memory.Remember(ev.Window, ev.Layout)
	}

	st.Current = ev.Layout
	t.refresh(st)
}

func (t *Tracker) processActivation(st *State, ev WindowActivated) {
	if t.filter.IsIgnored(ev.Window, st.TrayWindow) {
		return
	}

	t.log.Debugw("window activated", t.describe(ev.Window)...)

	if IsConsole(t.windows, ev.Window) {
		st.Current = st.Memory.Resolve(ev.Window)
	} else {
		st.Current = t.windows.KeyboardLayout(t.windows.ThreadID(ev.Window))
	}

	t.refresh(st)
}

func (t *Tracker) processDestroy(st *State, ev WindowDestroyed) {
	t.log.Debugw("window destroyed", t.describe(ev.Window)...)

	// the class may already be gone by now, and forgetting an unknown
	// window is a no-op
	st.Memory.Forget(ev.Window)
}

func (t *Tracker) processTick(st *State) {
	window := t.windows.Foreground()
	if t.filter.IsIgnored(window, st.TrayWindow) {
		return
	}

	t.setLastActive(st, window)

	layout := t.windows.KeyboardLayout(t.windows.ThreadID(window))
	if layout == 0 {
		layout = st.Memory.Resolve(window)
	}

	st.Current = layout
	t.refresh(st)
}

func (t *Tracker) setLastActive(st *State, window Window) {
	if st.LastActive == window {
		return
	}

	t.log.Debugw("last active window changed", t.describe(window)...)
	st.LastActive = window
}

func (t *Tracker) refresh(st *State) {
	entry, ok := st.Catalog.Find(st.Current)
	if !ok {
		t.log.Debugw("layout not in catalog", "layout", st.Current)
		return
	}

	view := View{
		Layout:       st.Current,
		Entry:        entry,
		Abbreviation: t.describer.Abbreviation(st.Current.LangID()),
		Menu:         st.Menus.Build(t.windows.KeyboardLayouts(), st.Catalog, st.Current, t.describer),
	}

	if err := t.indicator.Show(view); err != nil {
		t.log.Warnw("failed to update indicator", "layout", st.Current, "error", err)
	}
}

func (t *Tracker) describe(window Window) []interface{} {
	return []interface{}{
		"window", window,
		"class", t.windows.ClassName(window),
		"title", t.windows.Title(window),
	}
}
