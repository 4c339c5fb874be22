//go:build windows

package cli

import (
	"codeberg.org/miketth/kbswitch/pkg/config"
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"codeberg.org/miketth/kbswitch/pkg/tray"
	"codeberg.org/miketth/kbswitch/pkg/win32"
	"context"
	"errors"
	"fmt"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"sync"
)

const eventQueueSize = 64

func runTray(cfg *config.Config, log *zap.SugaredLogger) error {
	instance, err := win32.AcquireInstance(kbswitch.ClassName)
	if errors.Is(err, win32.ErrAlreadyRunning) {
		return ErrAlreadyRunning
	}
	if err != nil {
		return err
	}
	closer.Bind(func() {
		if err := instance.Release(); err != nil {
			log.Warnw("failed to release instance mutex", "error", err)
		}
	})

	catalog, err := loadCatalog(cfg, log)
	if err != nil {
		win32.ShowError("kbswitch", err.Error())
		return err
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	var closeOnce sync.Once
	closeStore := func() {
		closeOnce.Do(func() {
			if err := store.close(); err != nil {
				log.Warnw("failed to close layout store", "error", err)
			}
		})
	}
	closer.Bind(closeStore)
	defer closeStore()

	system := win32.NewSystem()
	host, err := win32.NewHost(system, log)
	if err != nil {
		win32.ShowError("kbswitch", err.Error())
		return fmt.Errorf("create host window: %w", err)
	}
	defer host.Close()

	memory := kbswitch.NewWindowMemory(store, system, log)
	pruned, err := memory.Prune(system.IsWindow)
	if err != nil {
		log.Warnw("failed to prune remembered windows", "error", err)
	} else if pruned > 0 {
		log.Debugw("pruned remembered windows", "count", pruned)
	}

	state := kbswitch.NewState(catalog, memory)
	state.CodePages = system.CodePages(host.Window())

	events := make(chan kbswitch.Event, eventQueueSize)
	poller := kbswitch.NewPoller(cfg.PollInterval)
	indicator := tray.New(events, poller, tray.Options{PreferencesCommand: cfg.PreferencesCommand}, log)
	tracker := kbswitch.NewTracker(system, indicator, system, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	closer.Bind(indicator.Quit)

	var wg sync.WaitGroup
	onReady := func() {
		log.Infow("started kbswitch", "layouts", catalog.Len(), "store", cfg.Store)

		wg.Add(2)
		go func() {
			defer wg.Done()
			tracker.Start(state)
			if err := tracker.Run(ctx, state, events); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorw("tracker stopped", "error", err)
			}
		}()

		go func() {
			defer wg.Done()
			kbswitch.RunSources(ctx, events, log, host, win32.NewFocusSource(log), poller)
		}()

		if store.loop != nil {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := store.loop(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Warnw("store save loop stopped", "error", err)
				}
			}()
		}
	}

	indicator.Run(onReady, func() {
		log.Info("shutting down")
		cancel()
	})

	cancel()
	wg.Wait()
	return nil
}
