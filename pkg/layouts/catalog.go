package layouts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrNoLayouts = errors.New("no keyboard layouts found")

type Entry struct {
	ID      uint32
	Text    string
	Variant uint32
}

func (e Entry) LangID() uint16 {
	return uint16(e.ID & 0xFFFF)
}

// Handle is the handle the OS hands out once the entry is loaded.
func (e Entry) Handle() Handle {
	switch {
	case Handle(e.ID).IsIME():
		return Handle(e.ID)
	case e.Variant != 0:
		return MakeVariantHandle(e.LangID(), e.Variant)
	default:
		return MakeHandle(e.LangID(), e.LangID())
	}
}

type Catalog struct {
	entries []Entry
}

func NewCatalog(entries ...Entry) *Catalog {
	return &Catalog{entries: append([]Entry(nil), entries...)}
}

// Load reads every usable record from src into a new catalog. Records
// without a display name or with a malformed key are skipped.
func Load(src Source) (*Catalog, error) {
	records, err := src.Records()
	if err != nil {
		return nil, fmt.Errorf("read layout records: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entry, ok := parseRecord(rec)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrNoLayouts
	}

	return &Catalog{entries: entries}, nil
}

func parseRecord(rec Record) (Entry, bool) {
	if rec.Text == "" {
		return Entry{}, false
	}

	id, err := strconv.ParseUint(strings.TrimSpace(rec.Key), 16, 32)
	if err != nil {
		return Entry{}, false
	}

	entry := Entry{ID: uint32(id), Text: rec.Text}
	if rec.LayoutID != "" {
		// a garbled variant falls back to the base layout
		variant, err := strconv.ParseUint(strings.TrimSpace(rec.LayoutID), 16, 32)
		if err == nil {
			entry.Variant = uint32(variant)
		}
	}

	return entry, true
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return append([]Entry(nil), c.entries...)
}

// Find resolves a layout handle to its catalog entry.
//
// IME handles must match an entry id exactly, variant handles must match both
// the language word and the variant number. Plain handles are matched on the
// language word first and, failing that, on the high word, since the OS puts
// the layout's own language there for substituted layouts.
func (c *Catalog) Find(h Handle) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}

	switch {
	case h.IsIME():
		for _, e := range c.entries {
			if Handle(e.ID) == h {
				return e, true
			}
		}

	case h.IsVariant():
		variant := h.Variant()
		for _, e := range c.entries {
			if e.LangID() == h.Low() && e.Variant == variant {
				return e, true
			}
		}

	default:
		if e, ok := c.findLang(h.Low()); ok {
			return e, true
		}
		return c.findLang(h.High())
	}

	return Entry{}, false
}

func (c *Catalog) findLang(lang uint16) (Entry, bool) {
	for _, e := range c.entries {
		if e.LangID() == lang {
			return e, true
		}
	}
	return Entry{}, false
}
