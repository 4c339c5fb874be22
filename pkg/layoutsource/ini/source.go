// Package ini reads keyboard layouts from an INI file laid out like the
// registry's "Keyboard Layouts" key:
//
//	[00000409]
//	Layout Text = US
//
//	[00010409]
//	Layout Text = United States-Dvorak
//	Layout Id   = 0002
package ini

import (
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"fmt"
	"gopkg.in/ini.v1"
)

const (
	textKey     = "Layout Text"
	layoutIDKey = "Layout Id"
)

type Source struct {
	Path string
}

func NewSource(path string) *Source {
	return &Source{Path: path}
}

func (s *Source) Records() ([]layouts.Record, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, s.Path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Path, err)
	}

	return records(file), nil
}

func records(file *ini.File) []layouts.Record {
	var out []layouts.Record
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}

		out = append(out, layouts.Record{
			Key:      section.Name(),
			Text:     section.Key(textKey).String(),
			LayoutID: section.Key(layoutIDKey).String(),
		})
	}

	return out
}
