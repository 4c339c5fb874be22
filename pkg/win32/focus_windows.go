//go:build windows

package win32

import (
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"context"
	"errors"
	"fmt"
	"github.com/lxn/win"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
	"runtime"
	"sync"
	"sync/atomic"
)

var (
	ErrFocusHookRunning = errors.New("a focus hook is already installed")

	focusProcOnce     sync.Once
	focusProcCallback uintptr

	focusActive atomic.Pointer[FocusSource]
)

// FocusSource reports keyboard focus changes through an out-of-context
// WinEvent hook. The hook calls back on the thread that installed it, so
// that thread pumps messages until the source stops.
type FocusSource struct {
	log      *zap.SugaredLogger
	incoming chan kbswitch.Event
	last     kbswitch.Window
}

func NewFocusSource(log *zap.SugaredLogger) *FocusSource {
	return &FocusSource{
		log:      log,
		incoming: make(chan kbswitch.Event, hostQueueSize),
	}
}

func (s *FocusSource) Run(ctx context.Context, events chan<- kbswitch.Event) error {
	if !focusActive.CompareAndSwap(nil, s) {
		return ErrFocusHookRunning
	}
	defer focusActive.CompareAndSwap(s, nil)

	ready := make(chan error, 1)
	threadID := make(chan uint32, 1)
	stopped := make(chan struct{})
	go s.pump(ready, threadID, stopped)

	if err := <-ready; err != nil {
		return err
	}
	tid := <-threadID

	defer func() {
		procPostThreadMessageW.Call(uintptr(tid), win.WM_QUIT, 0, 0)
		<-stopped
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.incoming:
			select {
			case events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (s *FocusSource) pump(ready chan<- error, threadID chan<- uint32, stopped chan<- struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(stopped)

	focusProcOnce.Do(func() {
		focusProcCallback = windows.NewCallback(focusProc)
	})

	hook, _, err := procSetWinEventHook.Call(
		eventObjectFocus, eventObjectFocus,
		0, focusProcCallback,
		0, 0,
		wineventOutOfContext|wineventSkipOwnProcess,
	)
	if hook == 0 {
		ready <- fmt.Errorf("install focus hook: %w", err)
		return
	}
	defer procUnhookWinEvent.Call(hook)

	ready <- nil
	threadID <- windows.GetCurrentThreadId()

	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

func (s *FocusSource) focus(window kbswitch.Window) {
	if window == 0 || window == s.last {
		return
	}

	ev := kbswitch.FocusSet{Gaining: window, Losing: s.last}
	s.last = window

	select {
	case s.incoming <- ev:
	default:
		s.log.Debugw("event queue full, dropping focus change", "window", window)
	}
}

func focusProc(hook, event, hwnd, object, child, thread, time uintptr) uintptr {
	if s := focusActive.Load(); s != nil {
		s.focus(kbswitch.Window(hwnd))
	}
	return 0
}
