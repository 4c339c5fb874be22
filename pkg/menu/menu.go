// Package menu builds the layout menu shown from the tray icon.
//
// The menu is rebuilt every time it is shown so that layouts added or
// removed in the meantime show up. Every build gets a new generation, and
// command ids from an earlier build are rejected.
package menu

import (
	"codeberg.org/miketth/kbswitch/pkg/layouts"
)

const unknownText = "(Unknown)"

type Describer interface {
	// LanguageName is the localized name of a language, e.g. "English (United States)".
	LanguageName(lang uint16) string
	IMEDescription(layout layouts.Handle) string
	// Abbreviation is the two letter code drawn on the tray icon.
	Abbreviation(lang uint16) string
}

type CommandID struct {
	Generation uint64
	Index      int
}

type Item struct {
	ID      CommandID
	Layout  layouts.Handle
	Text    string
	Checked bool
}

type Menu struct {
	Generation uint64
	Items      []Item
}

// Lookup returns the layout of the item id points at.
func (m Menu) Lookup(id CommandID) (layouts.Handle, bool) {
	if id.Generation != m.Generation {
		return 0, false
	}

	for _, item := range m.Items {
		if item.ID.Index == id.Index {
			return item.Layout, true
		}
	}

	return 0, false
}

type Builder struct {
	generation uint64
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build lists the installed layouts known to catalog, checking current.
// Item indexes are positions in installed.
func (b *Builder) Build(
	installed []layouts.Handle,
	catalog *layouts.Catalog,
	current layouts.Handle,
	describer Describer,
) Menu {
	b.generation++
	m := Menu{Generation: b.generation}

	for i, layout := range installed {
		entry, ok := catalog.Find(layout)
		if !ok {
			continue
		}

		m.Items = append(m.Items, Item{
			ID:      CommandID{Generation: b.generation, Index: i},
			Layout:  layout,
			Text:    itemText(layout, entry, describer),
			Checked: layout == current,
		})
	}

	return m
}

func itemText(layout layouts.Handle, entry layouts.Entry, describer Describer) string {
	var text string

	if layout.IsIME() {
		text = describer.IMEDescription(layout)
	} else {
		text = describer.LanguageName(layout.LangID())
		if layout.Low() != layout.High() && entry.Text != "" {
			text += " - " + entry.Text
		}
	}

	if text == "" {
		return unknownText
	}

	return text
}

type Command int

const (
	CommandNextLayout Command = iota + 1
	CommandPreferences
	CommandExit
)

func (c Command) String() string {
	switch c {
	case CommandNextLayout:
		return "Next layout"
	case CommandPreferences:
		return "Preferences"
	case CommandExit:
		return "Exit"
	}
	return "Unknown"
}
