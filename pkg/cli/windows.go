package cli

import (
	"codeberg.org/miketth/kbswitch/pkg/config"
	"fmt"
	"github.com/spf13/cobra"
)

type windowRow struct {
	Window string `yaml:"window"`
	Layout string `yaml:"layout"`
	Thread uint32 `yaml:"thread"`
}

func newWindowsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "List the console windows whose layouts are remembered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Store == config.StoreMemory {
				fmt.Fprintln(cmd.OutOrStdout(), "the memory store keeps nothing between runs")
				return nil
			}

			store, err := openStore(opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer store.close()

			windows, err := store.Windows()
			if err != nil {
				return fmt.Errorf("list windows: %w", err)
			}

			rows := make([]windowRow, 0, len(windows))
			for _, window := range windows {
				remembered, found, err := store.GetWindowLayout(window)
				if err != nil {
					return fmt.Errorf("get layout of %s: %w", window, err)
				}
				if !found {
					continue
				}
				rows = append(rows, windowRow{
					Window: window.String(),
					Layout: remembered.Layout.String(),
					Thread: remembered.Thread,
				})
			}

			return writeYAML(cmd.OutOrStdout(), rows)
		},
	}
}
