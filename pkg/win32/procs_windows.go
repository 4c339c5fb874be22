//go:build windows

package win32

import "golang.org/x/sys/windows"

// Calls that neither lxn/win nor x/sys/windows bind.
var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")
	imm32  = windows.NewLazySystemDLL("imm32.dll")

	procGetKeyboardLayout         = user32.NewProc("GetKeyboardLayout")
	procGetKeyboardLayoutList     = user32.NewProc("GetKeyboardLayoutList")
	procGetLastActivePopup        = user32.NewProc("GetLastActivePopup")
	procGetWindowTextW            = user32.NewProc("GetWindowTextW")
	procRegisterShellHookWindow   = user32.NewProc("RegisterShellHookWindow")
	procDeregisterShellHookWindow = user32.NewProc("DeregisterShellHookWindow")
	procSetWinEventHook           = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent            = user32.NewProc("UnhookWinEvent")
	procPostThreadMessageW        = user32.NewProc("PostThreadMessageW")

	procGetTextCharset       = gdi32.NewProc("GetTextCharset")
	procTranslateCharsetInfo = gdi32.NewProc("TranslateCharsetInfo")

	procImmGetDescriptionW = imm32.NewProc("ImmGetDescriptionW")
)

const (
	localeSLanguage       = 0x00000002
	localeSAbbrevLangName = 0x00000003
	localeFontSignature   = 0x00000058
	localeNoUserOverride  = 0x80000000

	tciSrcCharset = 1

	hshellWindowCreated   = 1
	hshellWindowDestroyed = 2
	hshellWindowActivated = 4
	hshellLanguage        = 8
	hshellHighBit         = 0x8000

	eventObjectFocus       = 0x8005
	wineventOutOfContext   = 0x0000
	wineventSkipOwnProcess = 0x0002
)

type localeSignature struct {
	Usb          [4]uint32
	CsbDefault   [2]uint32
	CsbSupported [2]uint32
}

// supported is the ANSI code page bitfield of every charset the locale can
// be typed in, not just its default one.
func (sig localeSignature) supported() uint32 {
	return sig.CsbSupported[0]
}

type fontSignature struct {
	Usb [4]uint32
	Csb [2]uint32
}

type charsetInfo struct {
	Charset uint32
	ACP     uint32
	FS      fontSignature
}
