// Package cli wires kbswitch together behind a cobra command tree.
package cli

import (
	"codeberg.org/miketth/kbswitch/pkg/config"
	"codeberg.org/miketth/kbswitch/pkg/logging"
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"time"
)

// ErrAlreadyRunning is returned when another kbswitch owns the desktop.
// It is not worth reporting; the caller just exits.
var ErrAlreadyRunning = errors.New("kbswitch is already running")

type options struct {
	configPath   string
	debug        bool
	layoutsFile  string
	store        string
	pollInterval time.Duration

	cfg *config.Config
	log *zap.SugaredLogger
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "kbswitch",
		Short:         "Keyboard layout indicator and switcher",
		Long:          "kbswitch shows the keyboard layout of the active window in the notification area and switches it from a menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray(opts.cfg, opts.log)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.yaml")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.layoutsFile, "layouts-file", "", "read layouts from an INI file instead of the registry")
	root.PersistentFlags().StringVar(&opts.store, "store", "", "window layout store: memory, json or sqlite")
	root.PersistentFlags().DurationVar(&opts.pollInterval, "poll-interval", 0, "how often to check the foreground window")

	root.AddCommand(
		newLayoutsCommand(opts),
		newWindowsCommand(opts),
	)

	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}

func (o *options) setup() error {
	path := o.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	o.override(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	log, err := logging.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	o.cfg = cfg
	o.log = log
	return nil
}

// override applies the flags that were set on top of the config file.
func (o *options) override(cfg *config.Config) {
	if o.debug {
		cfg.Debug = true
	}
	if o.layoutsFile != "" {
		cfg.LayoutsFile = o.layoutsFile
	}
	if o.store != "" {
		cfg.Store = config.StoreKind(o.store)
	}
	if o.pollInterval != 0 {
		cfg.PollInterval = o.pollInterval
	}
}
