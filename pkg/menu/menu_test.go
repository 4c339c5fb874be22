package menu

import (
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"testing"
)

type fakeDescriber struct{}

func (fakeDescriber) LanguageName(lang uint16) string {
	switch lang {
	case 0x0409:
		return "English (United States)"
	case 0x0419:
		return "Russian"
	}
	return ""
}

func (fakeDescriber) IMEDescription(layouts.Handle) string {
	return "Microsoft IME"
}

func (fakeDescriber) Abbreviation(uint16) string {
	return "EN"
}

var testCatalog = layouts.NewCatalog(
	layouts.Entry{ID: 0x0409, Text: "US"},
	layouts.Entry{ID: 0x0409, Text: "Dvorak", Variant: 2},
	layouts.Entry{ID: 0x0419, Text: "Russian"},
	layouts.Entry{ID: 0x0406, Text: "Danish"},
	layouts.Entry{ID: 0xE0010411, Text: "Japanese IME"},
)

func TestBuild(t *testing.T) {
	installed := []layouts.Handle{
		layouts.MakeHandle(0x0409, 0x0409),
		layouts.MakeHandle(0x0415, 0x0415), // not in the catalog
		layouts.MakeVariantHandle(0x0409, 2),
		layouts.MakeHandle(0x0419, 0x0419),
		layouts.Handle(0xE0010411),
		layouts.MakeHandle(0x0406, 0x0406),
	}

	m := NewBuilder().Build(installed, testCatalog, installed[3], fakeDescriber{})

	want := []Item{
		{ID: CommandID{1, 0}, Layout: installed[0], Text: "English (United States)"},
		{ID: CommandID{1, 2}, Layout: installed[2], Text: "English (United States) - Dvorak"},
		{ID: CommandID{1, 3}, Layout: installed[3], Text: "Russian", Checked: true},
		{ID: CommandID{1, 4}, Layout: installed[4], Text: "Microsoft IME"},
		{ID: CommandID{1, 5}, Layout: installed[5], Text: unknownText},
	}

	if len(m.Items) != len(want) {
		t.Fatalf("got %d items, want %d: %+v", len(m.Items), len(want), m.Items)
	}
	for i := range want {
		if m.Items[i] != want[i] {
			t.Errorf("item %d: got %+v, want %+v", i, m.Items[i], want[i])
		}
	}
}

func TestLookup_RejectsOtherGenerations(t *testing.T) {
	installed := []layouts.Handle{
		layouts.MakeHandle(0x0409, 0x0409),
		layouts.MakeHandle(0x0419, 0x0419),
	}

	b := NewBuilder()
	first := b.Build(installed, testCatalog, installed[0], fakeDescriber{})
	second := b.Build(installed[1:], testCatalog, installed[1], fakeDescriber{})

	if first.Generation == second.Generation {
		t.Fatalf("generations must differ, both are %d", first.Generation)
	}

	staleID := first.Items[1].ID
	if _, ok := second.Lookup(staleID); ok {
		t.Errorf("id %+v from an older menu must not resolve", staleID)
	}

	layout, ok := second.Lookup(second.Items[0].ID)
	if !ok || layout != installed[1] {
		t.Errorf("got %s, %v, want %s", layout, ok, installed[1])
	}

	if _, ok := second.Lookup(CommandID{second.Generation, 7}); ok {
		t.Error("unknown index must not resolve")
	}
}

func TestCommandString(t *testing.T) {
	for _, c := range []Command{CommandNextLayout, CommandPreferences, CommandExit} {
		if c.String() == "Unknown" {
			t.Errorf("command %d has no label", c)
		}
	}
}
