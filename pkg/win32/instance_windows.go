//go:build windows

package win32

import (
	"errors"
	"fmt"
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var ErrAlreadyRunning = errors.New("another instance is already running")

// Instance holds the named mutex that keeps a second copy from starting.
type Instance struct {
	mutex windows.Handle
}

func AcquireInstance(name string) (*Instance, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}

	mutex, err := windows.CreateMutex(nil, true, p)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		windows.CloseHandle(mutex)
		return nil, ErrAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("create instance mutex: %w", err)
	}

	return &Instance{mutex: mutex}, nil
}

func (i *Instance) Release() error {
	if err := windows.ReleaseMutex(i.mutex); err != nil {
		windows.CloseHandle(i.mutex)
		return err
	}
	return windows.CloseHandle(i.mutex)
}

// ShowError shows a modal error box. It is the only way to tell the user
// about a fatal error when there is no console.
func ShowError(caption, text string) {
	c, err := windows.UTF16PtrFromString(caption)
	if err != nil {
		return
	}
	t, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return
	}
	win.MessageBox(0, t, c, win.MB_OK|win.MB_ICONERROR)
}
