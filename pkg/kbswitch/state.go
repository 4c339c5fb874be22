package kbswitch

import (
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"codeberg.org/miketth/kbswitch/pkg/menu"
)

// State is everything the tracker mutates. It belongs to the goroutine
// running Tracker.Run and is handed to every handler.
type State struct {
	Catalog *layouts.Catalog
	Memory  *WindowMemory
	Menus   *menu.Builder

	// LastActive is the last foreground window that wasn't ignored.
	LastActive Window
	// Current is the layout the indicator shows.
	Current    layouts.Handle
	TrayWindow Window
	// CodePages is kbswitch's own code page bitfield, used when the target
	// window doesn't report one.
	CodePages uint32
}

func NewState(catalog *layouts.Catalog, memory *WindowMemory) *State {
	return &State{
		Catalog: catalog,
		Memory:  memory,
		Menus:   menu.NewBuilder(),
	}
}
