package kbswitch

import (
	"context"
	"sync/atomic"
	"time"
)

const DefaultPollInterval = time.Second

// Poller sends a TimerTick every interval. It catches foreground changes
// that no hook reported, and it is the only source when hooks are missing.
type Poller struct {
	interval time.Duration
	paused   atomic.Int32
}

func NewPoller(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{interval: interval}
}

// Pause drops ticks until every Pause has been matched by a Resume.
func (p *Poller) Pause() {
	p.paused.Add(1)
}

// Resume undoes one Pause. Extra calls are ignored.
func (p *Poller) Resume() {
	for {
		n := p.paused.Load()
		if n <= 0 || p.paused.CompareAndSwap(n, n-1) {
			return
		}
	}
}

func (p *Poller) Paused() bool {
	return p.paused.Load() > 0
}

func (p *Poller) Run(ctx context.Context, events chan<- Event) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p.Paused() {
				continue
			}

			select {
			case events <- TimerTick{}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
