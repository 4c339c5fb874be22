package kbswitch

import (
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"codeberg.org/miketth/kbswitch/pkg/menu"
	"context"
	"fmt"
)

// Window is an opaque OS window handle. Zero means no window.
type Window uintptr

func (w Window) String() string {
	return fmt.Sprintf("%#x", uintptr(w))
}

const (
	// ClassName is the window class of kbswitch's own windows.
	ClassName = "kbswitcher"
	// ConsoleClassName is the class of console host windows. Their threads
	// don't report layout changes reliably, so their layouts are remembered.
	ConsoleClassName = "ConsoleWindowClass"
)

type WindowTree interface {
	Desktop() Window
	IsChild(window Window) bool
	Owner(window Window) Window
	Parent(window Window) Window
	IsVisible(window Window) bool
	ClassName(window Window) string
	Title(window Window) string
	ThreadID(window Window) uint32
}

type InputLanguages interface {
	// KeyboardLayout returns the active layout of a thread, 0 meaning the
	// calling thread. It returns 0 when the thread has no layout.
	KeyboardLayout(threadID uint32) layouts.Handle
	// KeyboardLayouts lists the loaded layouts in the order the OS cycles them.
	KeyboardLayouts() []layouts.Handle
	// LocaleCodePages returns the ANSI code page bitfield the locale's fonts support.
	LocaleCodePages(lang uint16) (uint32, bool)
}

type WindowActivator interface {
	Foreground() Window
	TrayWindow() Window
	LastActivePopup(window Window) Window
	SetForeground(window Window) bool
	// CodePages returns the code page bitfield of the window's text charset.
	CodePages(window Window) uint32
	RequestLayout(window Window, charsetSupported bool, layout layouts.Handle) error
}

type WindowSystem interface {
	WindowTree
	InputLanguages
	WindowActivator
}

// WindowLayout is a remembered layout. Thread is the thread that owned the
// window when it was remembered; handles get reused, so an entry is only
// valid while the window still belongs to that thread.
type WindowLayout struct {
	Layout layouts.Handle
	Thread uint32
}

type WindowLayoutStore interface {
	GetWindowLayout(window Window) (WindowLayout, bool, error)
	SetWindowLayout(window Window, layout WindowLayout) error
	ForgetWindow(window Window) error
	Windows() ([]Window, error)
}

// View is what the indicator shows for the current layout.
type View struct {
	Layout       layouts.Handle
	Entry        layouts.Entry
	Abbreviation string
	Menu         menu.Menu
}

type Indicator interface {
	Show(view View) error
}

type EventSource interface {
	Run(ctx context.Context, events chan<- Event) error
}
