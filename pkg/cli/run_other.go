//go:build !windows

package cli

import (
	"codeberg.org/miketth/kbswitch/pkg/config"
	"errors"
	"go.uber.org/zap"
)

var ErrUnsupported = errors.New("the tray indicator only runs on windows")

func runTray(*config.Config, *zap.SugaredLogger) error {
	return ErrUnsupported
}
