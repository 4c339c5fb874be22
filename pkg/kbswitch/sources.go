package kbswitch

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"sync"
)

// RunSources runs every source until ctx is done. A source that fails only
// takes itself down; the rest keep feeding events.
func RunSources(ctx context.Context, events chan<- Event, log *zap.SugaredLogger, sources ...EventSource) {
	var wg sync.WaitGroup
	wg.Add(len(sources))

	for _, source := range sources {
		go func(source EventSource) {
			defer wg.Done()

			err := source.Run(ctx, events)
			switch {
			case err == nil, errors.Is(err, context.Canceled):
			default:
				log.Warnw("event source stopped, running without it", "source", fmt.Sprintf("%T", source), "error", err)
			}
		}(source)
	}

	wg.Wait()
}
