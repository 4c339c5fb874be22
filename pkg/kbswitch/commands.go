package kbswitch

import "codeberg.org/miketth/kbswitch/pkg/layouts"

// NextLayout returns the layout after current in installed, wrapping around.
func NextLayout(installed []layouts.Handle, current layouts.Handle) (layouts.Handle, bool) {
	for i, layout := range installed {
		if layout == current {
			return installed[(i+1)%len(installed)], true
		}
	}
	return 0, false
}

// CharsetSupported reports whether a window using codePages can display
// text in the locale described by localeCodePages.
func CharsetSupported(codePages, localeCodePages uint32) bool {
	return codePages&localeCodePages != 0
}

// chooseLayout asks the application behind the last active window to
// switch to layout. Switching the input language of another process only
// works by posting the request to its window, so the window is brought to
// the front first.
func (t *Tracker) chooseLayout(st *State, layout layouts.Handle) {
	if st.LastActive == 0 {
		t.log.Debugw("no active window to switch", "layout", layout)
		return
	}

	top := RealTopLevelOwner(t.windows, st.LastActive)
	target := t.windows.LastActivePopup(top)
	if target == 0 {
		target = top
	}

	if !t.windows.SetForeground(target) {
		t.log.Debugw("could not bring window to the foreground", t.describe(target)...)
	}

	supported := t.charsetSupported(st, target, layout)
	if err := t.windows.RequestLayout(target, supported, layout); err != nil {
		t.log.Debugw("layout change request failed", "window", target, "layout", layout, "error", err)
		return
	}

	t.log.Debugw("requested layout", "window", target, "layout", layout, "charset_supported", supported)
}

func (t *Tracker) charsetSupported(st *State, window Window, layout layouts.Handle) bool {
	localeCodePages, ok := t.windows.LocaleCodePages(layout.LangID())
	if !ok {
		return false
	}

	codePages := t.windows.CodePages(window)
	if codePages == 0 {
		codePages = st.CodePages
	}

	return CharsetSupported(codePages, localeCodePages)
}
