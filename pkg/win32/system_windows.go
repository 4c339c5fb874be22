//go:build windows

// Package win32 talks to the Windows desktop: window queries, keyboard
// layouts, locale data, and the hidden window receiving shell notifications.
package win32

import (
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"fmt"
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
	"unsafe"
)

const (
	trayClassName = "Shell_TrayWnd"
	maxTextLength = 256
)

// System implements kbswitch.WindowSystem and menu.Describer.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (s *System) Desktop() kbswitch.Window {
	return kbswitch.Window(win.GetDesktopWindow())
}

func (s *System) IsChild(window kbswitch.Window) bool {
	return win.GetWindowLongPtr(win.HWND(window), win.GWL_STYLE)&win.WS_CHILD != 0
}

func (s *System) Owner(window kbswitch.Window) kbswitch.Window {
	return kbswitch.Window(win.GetWindow(win.HWND(window), win.GW_OWNER))
}

func (s *System) Parent(window kbswitch.Window) kbswitch.Window {
	return kbswitch.Window(win.GetParent(win.HWND(window)))
}

func (s *System) IsVisible(window kbswitch.Window) bool {
	return win.IsWindowVisible(win.HWND(window))
}

// IsWindow reports whether window still exists.
func (s *System) IsWindow(window kbswitch.Window) bool {
	return windows.IsWindow(windows.HWND(window))
}

func (s *System) ClassName(window kbswitch.Window) string {
	if window == 0 {
		return ""
	}

	var buf [maxTextLength]uint16
	n, err := win.GetClassName(win.HWND(window), &buf[0], len(buf))
	if err != nil || n <= 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func (s *System) Title(window kbswitch.Window) string {
	if window == 0 {
		return ""
	}

	var buf [maxTextLength]uint16
	n, _, _ := procGetWindowTextW.Call(uintptr(window), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

func (s *System) ThreadID(window kbswitch.Window) uint32 {
	if window == 0 {
		return 0
	}
	return win.GetWindowThreadProcessId(win.HWND(window), nil)
}

func (s *System) KeyboardLayout(threadID uint32) layouts.Handle {
	r, _, _ := procGetKeyboardLayout.Call(uintptr(threadID))
	return layouts.Handle(r)
}

func (s *System) KeyboardLayouts() []layouts.Handle {
	n, _, _ := procGetKeyboardLayoutList.Call(0, 0)
	if n == 0 {
		return nil
	}

	buf := make([]uintptr, n)
	n, _, _ = procGetKeyboardLayoutList.Call(n, uintptr(unsafe.Pointer(&buf[0])))

	handles := make([]layouts.Handle, 0, n)
	for _, h := range buf[:n] {
		handles = append(handles, layouts.Handle(h))
	}
	return handles
}

func (s *System) LocaleCodePages(lang uint16) (uint32, bool) {
	var sig localeSignature
	size := int32(unsafe.Sizeof(sig) / 2)
	if win.GetLocaleInfo(win.LCID(lang), localeFontSignature, (*uint16)(unsafe.Pointer(&sig)), size) == 0 {
		return 0, false
	}
	return sig.supported(), true
}

func (s *System) Foreground() kbswitch.Window {
	return kbswitch.Window(win.GetForegroundWindow())
}

func (s *System) TrayWindow() kbswitch.Window {
	className, err := windows.UTF16PtrFromString(trayClassName)
	if err != nil {
		return 0
	}
	return kbswitch.Window(win.FindWindow(className, nil))
}

func (s *System) LastActivePopup(window kbswitch.Window) kbswitch.Window {
	r, _, _ := procGetLastActivePopup.Call(uintptr(window))
	return kbswitch.Window(r)
}

func (s *System) SetForeground(window kbswitch.Window) bool {
	return win.SetForegroundWindow(win.HWND(window))
}

func (s *System) CodePages(window kbswitch.Window) uint32 {
	dc := win.GetDC(win.HWND(window))
	if dc == 0 {
		return 0
	}
	charset, _, _ := procGetTextCharset.Call(uintptr(dc))
	win.ReleaseDC(win.HWND(window), dc)

	var info charsetInfo
	// the charset is passed by value in the pointer argument
	ok, _, _ := procTranslateCharsetInfo.Call(charset, uintptr(unsafe.Pointer(&info)), tciSrcCharset)
	if ok == 0 {
		return 0
	}
	return info.FS.Csb[0]
}

func (s *System) RequestLayout(window kbswitch.Window, charsetSupported bool, layout layouts.Handle) error {
	var wParam uintptr
	if charsetSupported {
		wParam = 1
	}

	if win.PostMessage(win.HWND(window), win.WM_INPUTLANGCHANGEREQUEST, wParam, uintptr(layout)) == 0 {
		return fmt.Errorf("post layout change request to %s: %w", window, windows.GetLastError())
	}
	return nil
}

func (s *System) LanguageName(lang uint16) string {
	return localeString(lang, localeSLanguage)
}

func (s *System) Abbreviation(lang uint16) string {
	return localeString(lang, localeSAbbrevLangName|localeNoUserOverride)
}

func (s *System) IMEDescription(layout layouts.Handle) string {
	var buf [maxTextLength]uint16
	n, _, _ := procImmGetDescriptionW.Call(uintptr(layout), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func localeString(lang uint16, lcType uint32) string {
	var buf [maxTextLength]uint16
	n := win.GetLocaleInfo(win.LCID(lang), win.LCTYPE(lcType), &buf[0], int32(len(buf)))
	if n <= 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}
