package kbswitch

import "strings"

// TopLevelOwner walks up from window until the desktop: owner links for
// top-level windows, parent links for child windows.
func TopLevelOwner(tree WindowTree, window Window) Window {
	desktop := tree.Desktop()
	top := window

	for window != 0 && window != desktop {
		top = window
		if tree.IsChild(window) {
			window = tree.Parent(window)
		} else {
			window = tree.Owner(window)
		}
	}

	return top
}

// RealTopLevelOwner is TopLevelOwner, except that an owner running on a
// different thread than window is not trusted and window is returned as is.
func RealTopLevelOwner(tree WindowTree, window Window) Window {
	top := TopLevelOwner(tree, window)
	if tree.ThreadID(top) != tree.ThreadID(window) {
		return window
	}
	return top
}

func IsClass(tree WindowTree, window Window, class string) bool {
	name := tree.ClassName(window)
	return name != "" && strings.EqualFold(name, class)
}

func IsConsole(tree WindowTree, window Window) bool {
	return IsClass(tree, window, ConsoleClassName)
}

// Filter decides which windows the tracker should follow.
type Filter struct {
	Tree     WindowTree
	OwnClass string
}

func NewFilter(tree WindowTree) Filter {
	return Filter{Tree: tree, OwnClass: ClassName}
}

// IsIgnored reports whether window belongs to something that is not a
// visible application: hidden windows, the taskbar and kbswitch itself.
func (f Filter) IsIgnored(window, tray Window) bool {
	top := RealTopLevelOwner(f.Tree, window)

	return !f.Tree.IsVisible(top) ||
		(tray != 0 && top == tray) ||
		IsClass(f.Tree, top, f.OwnClass)
}
