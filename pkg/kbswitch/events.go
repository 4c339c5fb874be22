package kbswitch

import "codeberg.org/miketth/kbswitch/pkg/layouts"

// Event is anything the tracker reacts to. All events go through a single
// channel and are handled in arrival order.
type Event interface {
	event()
}

type LanguageChanged struct {
	Window Window
	Layout layouts.Handle
}

type WindowActivated struct {
	Window Window
}

type WindowCreated struct {
	Window Window
}

type WindowDestroyed struct {
	Window Window
}

type FocusSet struct {
	Gaining Window
	Losing  Window
}

type TimerTick struct{}

// LayoutRequested asks to switch the last active window to Layout.
type LayoutRequested struct {
	Layout layouts.Handle
}

type NextLayoutRequested struct{}

// TaskbarRestarted is sent when explorer recreates the taskbar.
type TaskbarRestarted struct{}

func (LanguageChanged) event()     {}
func (WindowActivated) event()     {}
func (WindowCreated) event()       {}
func (WindowDestroyed) event()     {}
func (FocusSet) event()            {}
func (TimerTick) event()           {}
func (LayoutRequested) event()     {}
func (NextLayoutRequested) event() {}
func (TaskbarRestarted) event()    {}
