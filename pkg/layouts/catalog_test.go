package layouts

import (
	"errors"
	"testing"
)

type fakeSource struct {
	records []Record
	err     error
}

func (s fakeSource) Records() ([]Record, error) {
	return s.records, s.err
}

func TestLoad(t *testing.T) {
	src := fakeSource{records: []Record{
		{Key: "00000409", Text: "US"},
		{Key: "00010409", Text: "United States-Dvorak", LayoutID: "0002"},
		{Key: "00000407", Text: ""},
		{Key: "not-hex", Text: "Broken"},
		{Key: "E0010411", Text: "Japanese IME"},
		{Key: "0000040c", Text: "French", LayoutID: "zz"},
	}}

	catalog, err := Load(src)
	if err != nil {
		t.Fatal(err)
	}

	want := []Entry{
		{ID: 0x00000409, Text: "US"},
		{ID: 0x00010409, Text: "United States-Dvorak", Variant: 2},
		{ID: 0xE0010411, Text: "Japanese IME"},
		{ID: 0x0000040C, Text: "French"},
	}
	got := catalog.Entries()
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoad_SourceError(t *testing.T) {
	rootErr := errors.New("access denied")
	_, err := Load(fakeSource{err: rootErr})
	if !errors.Is(err, rootErr) {
		t.Errorf("got %v, want wrapped %v", err, rootErr)
	}
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load(fakeSource{records: []Record{{Key: "00000409"}}})
	if !errors.Is(err, ErrNoLayouts) {
		t.Errorf("got %v, want %v", err, ErrNoLayouts)
	}
}

func TestFind_RoundTrip(t *testing.T) {
	catalog := NewCatalog(
		Entry{ID: 0x0409, Text: "US"},
		Entry{ID: 0x0409, Text: "Dvorak", Variant: 1},
		Entry{ID: 0x0419, Text: "Russian"},
		Entry{ID: 0xE0010411, Text: "Japanese IME"},
		Entry{ID: 0x0407, Text: "German (IBM)", Variant: 0x0C},
	)

	for _, entry := range catalog.Entries() {
		got, ok := catalog.Find(entry.Handle())
		if !ok {
			t.Errorf("Find(%s) for %+v: not found", entry.Handle(), entry)
			continue
		}
		if got != entry {
			t.Errorf("Find(%s): got %+v, want %+v", entry.Handle(), got, entry)
		}
	}
}

func TestFind_Variant(t *testing.T) {
	catalog := NewCatalog(
		Entry{ID: 0x0409, Text: "US", Variant: 0},
		Entry{ID: 0x0409, Text: "Dvorak", Variant: 1},
	)

	tests := []struct {
		handle Handle
		want   string
		found  bool
	}{
		{MakeVariantHandle(0x0409, 1), "Dvorak", true},
		{MakeVariantHandle(0x0409, 0), "US", true},
		{MakeVariantHandle(0x0409, 2), "", false},
		{MakeVariantHandle(0x0407, 1), "", false},
	}

	for _, tt := range tests {
		got, ok := catalog.Find(tt.handle)
		if ok != tt.found {
			t.Errorf("Find(%s): found = %v, want %v", tt.handle, ok, tt.found)
			continue
		}
		if got.Text != tt.want {
			t.Errorf("Find(%s): got %q, want %q", tt.handle, got.Text, tt.want)
		}
	}
}

func TestFind_IMEMatchesExactly(t *testing.T) {
	catalog := NewCatalog(
		Entry{ID: 0x0411, Text: "Japanese"},
		Entry{ID: 0xE0010411, Text: "Japanese IME"},
	)

	got, ok := catalog.Find(Handle(0xE0010411))
	if !ok || got.Text != "Japanese IME" {
		t.Errorf("got %+v, %v", got, ok)
	}

	if _, ok := catalog.Find(Handle(0xE0020411)); ok {
		t.Error("unknown IME handle should not match the plain layout")
	}
}

func TestFind_PlainFallsBackToHighWord(t *testing.T) {
	catalog := NewCatalog(
		Entry{ID: 0x0409, Text: "US"},
		Entry{ID: 0x0419, Text: "Russian"},
	)

	// English input language using the Russian layout: 0x0419 in the high word
	got, ok := catalog.Find(MakeHandle(0x0809, 0x0419))
	if !ok || got.Text != "Russian" {
		t.Errorf("got %+v, %v, want Russian", got, ok)
	}

	// low word takes precedence
	got, ok = catalog.Find(MakeHandle(0x0409, 0x0419))
	if !ok || got.Text != "US" {
		t.Errorf("got %+v, %v, want US", got, ok)
	}

	if _, ok := catalog.Find(MakeHandle(0x0415, 0x0415)); ok {
		t.Error("Polish should not be found")
	}
}

func TestFind_NilCatalog(t *testing.T) {
	var catalog *Catalog
	if _, ok := catalog.Find(MakeHandle(0x0409, 0x0409)); ok {
		t.Error("nil catalog should not find anything")
	}
}

func TestHandle(t *testing.T) {
	h := Handle(0xF0020409)
	if !h.IsVariant() || h.IsIME() {
		t.Errorf("%s: variant = %v, ime = %v", h, h.IsVariant(), h.IsIME())
	}
	if h.Variant() != 2 || h.Low() != 0x0409 {
		t.Errorf("%s: variant = %d, low = %04X", h, h.Variant(), h.Low())
	}
	if h.String() != "F0020409" {
		t.Errorf("got %q", h.String())
	}

	ime := Handle(0xE0010411)
	if !ime.IsIME() || ime.IsVariant() {
		t.Errorf("%s: variant = %v, ime = %v", ime, ime.IsVariant(), ime.IsIME())
	}
}
