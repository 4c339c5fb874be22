//go:build !windows

package registry

import (
	"codeberg.org/miketth/kbswitch/pkg/layouts"
	"errors"
	"go.uber.org/zap"
)

var ErrUnsupported = errors.New("the keyboard layout registry is only available on windows")

type Source struct{}

func NewSource(*zap.SugaredLogger) *Source {
	return &Source{}
}

func (s *Source) Records() ([]layouts.Record, error) {
	return nil, ErrUnsupported
}
