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
	"unsafe"
)

const hostQueueSize = 64

var (
	ErrHostRunning = errors.New("a host window already exists")

	wndProcOnce     sync.Once
	wndProcCallback uintptr

	// activeHostLock serializes NewHost; wndProc reads activeHost without it
	activeHostLock sync.Mutex
	activeHost     atomic.Pointer[Host]
)

// Host owns the hidden kbswitcher window. The shell reports window and
// language changes to it, and Explorer broadcasts TaskbarCreated to it when
// the taskbar comes back. It is an event source.
type Host struct {
	system   *System
	log      *zap.SugaredLogger
	hwnd     win.HWND
	shellMsg uint32
	tbMsg    uint32
	hooked   bool
	incoming chan kbswitch.Event
	done     chan struct{}
	stopOnce sync.Once
}

// NewHost registers the window class, creates the window on its own OS
// thread, and starts pumping its messages. Failing to register for shell
// notifications is not fatal; the poller still sees foreground changes.
func NewHost(system *System, log *zap.SugaredLogger) (*Host, error) {
	activeHostLock.Lock()
	defer activeHostLock.Unlock()

	if activeHost.Load() != nil {
		return nil, ErrHostRunning
	}

	h := &Host{
		system:   system,
		log:      log,
		incoming: make(chan kbswitch.Event, hostQueueSize),
		done:     make(chan struct{}),
	}

	ready := make(chan error, 1)
	go h.loop(ready)
	if err := <-ready; err != nil {
		return nil, err
	}

	activeHost.Store(h)
	return h, nil
}

// Window is the hidden window's handle.
func (h *Host) Window() kbswitch.Window {
	return kbswitch.Window(h.hwnd)
}

func (h *Host) Run(ctx context.Context, events chan<- kbswitch.Event) error {
	defer h.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.done:
			return nil
		case ev := <-h.incoming:
			select {
			case events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Close destroys the window and waits for its thread to exit.
func (h *Host) Close() {
	h.stopOnce.Do(func() {
		win.PostMessage(h.hwnd, win.WM_CLOSE, 0, 0)
		<-h.done

		activeHost.CompareAndSwap(h, nil)
	})
}

func (h *Host) loop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(h.done)

	if err := h.create(); err != nil {
		ready <- err
		return
	}
	ready <- nil

	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}

	className, _ := windows.UTF16PtrFromString(kbswitch.ClassName)
	win.UnregisterClass(className)
}

func (h *Host) create() error {
	wndProcOnce.Do(func() {
		wndProcCallback = windows.NewCallback(wndProc)
	})

	className, err := windows.UTF16PtrFromString(kbswitch.ClassName)
	if err != nil {
		return err
	}

	instance := win.GetModuleHandle(nil)

	var wc win.WNDCLASSEX
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	wc.LpfnWndProc = wndProcCallback
	wc.HInstance = instance
	wc.LpszClassName = className

	if win.RegisterClassEx(&wc) == 0 {
		return fmt.Errorf("register window class %q: %w", kbswitch.ClassName, windows.GetLastError())
	}

	// wndProc looks the host up while CreateWindowEx is still running
	activeHost.Store(h)

	h.hwnd = win.CreateWindowEx(0, className, className, 0, 0, 0, 0, 0, 0, 0, instance, nil)
	if h.hwnd == 0 {
		err := windows.GetLastError()
		activeHost.CompareAndSwap(h, nil)
		win.UnregisterClass(className)
		return fmt.Errorf("create %s window: %w", kbswitch.ClassName, err)
	}

	h.shellMsg = registerMessage("SHELLHOOK")
	h.tbMsg = registerMessage("TaskbarCreated")

	if ok, _, err := procRegisterShellHookWindow.Call(uintptr(h.hwnd)); ok == 0 {
		h.log.Warnw("failed to register for shell notifications, running without them", "error", err)
	} else {
		h.hooked = true
	}

	return nil
}

func (h *Host) handle(msg uint32, wParam, lParam uintptr) bool {
	switch {
	case msg == h.shellMsg && h.shellMsg != 0:
		h.shellEvent(wParam&^hshellHighBit, kbswitch.Window(lParam))
		return true
	case msg == h.tbMsg && h.tbMsg != 0:
		h.post(kbswitch.TaskbarRestarted{})
		return true
	case msg == win.WM_DESTROY:
		if h.hooked {
			procDeregisterShellHookWindow.Call(uintptr(h.hwnd))
		}
		win.PostQuitMessage(0)
		return true
	}
	return false
}

func (h *Host) shellEvent(code uintptr, window kbswitch.Window) {
	switch code {
	case hshellWindowCreated:
		h.post(kbswitch.WindowCreated{Window: window})
	case hshellWindowDestroyed:
		h.post(kbswitch.WindowDestroyed{Window: window})
	case hshellWindowActivated:
		h.post(kbswitch.WindowActivated{Window: window})
	case hshellLanguage:
		// Console windows do not report their thread's layout reliably, so
		// for them this can be stale or the conhost thread's layout.
		h.post(kbswitch.LanguageChanged{
			Window: window,
			Layout: h.system.KeyboardLayout(h.system.ThreadID(window)),
		})
	}
}

// post never blocks the window procedure.
func (h *Host) post(ev kbswitch.Event) {
	select {
	case h.incoming <- ev:
	default:
		h.log.Debugw("event queue full, dropping event", "event", fmt.Sprintf("%T", ev))
	}
}

func wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	if h := activeHost.Load(); h != nil && h.handle(msg, wParam, lParam) {
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func registerMessage(name string) uint32 {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0
	}
	return win.RegisterWindowMessage(p)
}
