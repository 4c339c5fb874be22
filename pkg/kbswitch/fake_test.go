package kbswitch_test

import (
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"errors"
)

const desktop kbswitch.Window = 0xFFFF

type fakeWindow struct {
	owner   kbswitch.Window
	parent  kbswitch.Window
	child   bool
	visible bool
	class   string
	thread  uint32
	popup   kbswitch.Window

	codePages uint32
}

type layoutRequest struct {
	window    kbswitch.Window
	supported bool
	layout    layouts.Handle
}

// fakeSystem is an in-memory window manager.
type fakeSystem struct {
	windows         map[kbswitch.Window]*fakeWindow
	foreground      kbswitch.Window
	tray            kbswitch.Window
	threadLayouts   map[uint32]layouts.Handle
	installed       []layouts.Handle
	localeCodePages map[uint16]uint32

	refuseForeground bool
	failRequests     bool
	raised           []kbswitch.Window
	requests         []layoutRequest
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		windows:         make(map[kbswitch.Window]*fakeWindow),
		threadLayouts:   make(map[uint32]layouts.Handle),
		localeCodePages: make(map[uint16]uint32),
	}
}

func (f *fakeSystem) add(w kbswitch.Window, win fakeWindow) *fakeSystem {
	f.windows[w] = &win
	return f
}

func (f *fakeSystem) get(w kbswitch.Window) fakeWindow {
	if win, ok := f.windows[w]; ok {
		return *win
	}
	return fakeWindow{}
}

func (f *fakeSystem) Desktop() kbswitch.Window                { return desktop }
func (f *fakeSystem) IsChild(w kbswitch.Window) bool          { return f.get(w).child }
func (f *fakeSystem) Owner(w kbswitch.Window) kbswitch.Window { return f.get(w).owner }
func (f *fakeSystem) Parent(w kbswitch.Window) kbswitch.Window {
	if p := f.get(w).parent; p != 0 {
		return p
	}
	return desktop
}
func (f *fakeSystem) IsVisible(w kbswitch.Window) bool   { return f.get(w).visible }
func (f *fakeSystem) ClassName(w kbswitch.Window) string { return f.get(w).class }
func (f *fakeSystem) Title(w kbswitch.Window) string     { return "" }
func (f *fakeSystem) ThreadID(w kbswitch.Window) uint32  { return f.get(w).thread }

func (f *fakeSystem) KeyboardLayout(thread uint32) layouts.Handle {
	return f.threadLayouts[thread]
}

func (f *fakeSystem) KeyboardLayouts() []layouts.Handle {
	return f.installed
}

func (f *fakeSystem) LocaleCodePages(lang uint16) (uint32, bool) {
	cp, ok := f.localeCodePages[lang]
	return cp, ok
}

func (f *fakeSystem) Foreground() kbswitch.Window { return f.foreground }
func (f *fakeSystem) TrayWindow() kbswitch.Window { return f.tray }

func (f *fakeSystem) LastActivePopup(w kbswitch.Window) kbswitch.Window {
	if p := f.get(w).popup; p != 0 {
		return p
	}
	return w
}

func (f *fakeSystem) SetForeground(w kbswitch.Window) bool {
	if f.refuseForeground {
		return false
	}
	f.raised = append(f.raised, w)
	f.foreground = w
	return true
}

func (f *fakeSystem) CodePages(w kbswitch.Window) uint32 {
	return f.get(w).codePages
}

func (f *fakeSystem) RequestLayout(w kbswitch.Window, supported bool, layout layouts.Handle) error {
	if f.failRequests {
		return errors.New("window is gone")
	}
	f.requests = append(f.requests, layoutRequest{window: w, supported: supported, layout: layout})
	return nil
}

type fakeIndicator struct {
	views []kbswitch.View
	err   error
}

func (i *fakeIndicator) Show(view kbswitch.View) error {
	i.views = append(i.views, view)
	return i.err
}

func (i *fakeIndicator) last() (kbswitch.View, bool) {
	if len(i.views) == 0 {
		return kbswitch.View{}, false
	}
	return i.views[len(i.views)-1], true
}

type fakeDescriber struct{}

func (fakeDescriber) LanguageName(lang uint16) string        { return "lang" }
func (fakeDescriber) IMEDescription(layouts.Handle) string   { return "ime" }
func (fakeDescriber) Abbreviation(lang uint16) string {
	switch lang {
	case 0x0409:
		return "EN"
	case 0x0419:
		return "RU"
	}
	return "??"
}

var _ kbswitch.WindowSystem = (*fakeSystem)(nil)
