package cli

import (
	"fmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"io"
)

type layoutRow struct {
	ID      string `yaml:"id"`
	Handle  string `yaml:"handle"`
	Text    string `yaml:"text"`
	Variant uint32 `yaml:"variant,omitempty"`
	IME     bool   `yaml:"ime,omitempty"`
}

func newLayoutsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the keyboard layouts kbswitch knows about",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(opts.cfg, opts.log)
			if err != nil {
				return err
			}

			rows := make([]layoutRow, 0, catalog.Len())
			for _, entry := range catalog.Entries() {
				h := entry.Handle()
				rows = append(rows, layoutRow{
					ID:      fmt.Sprintf("%08X", entry.ID),
					Handle:  h.String(),
					Text:    entry.Text,
					Variant: entry.Variant,
					IME:     h.IsIME(),
				})
			}

			return writeYAML(cmd.OutOrStdout(), rows)
		},
	}
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
