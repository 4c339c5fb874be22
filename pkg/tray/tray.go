// Package tray is the notification area icon: it shows the current layout
// and turns menu clicks into tracker events.
package tray

import (
	"codeberg.org/miketth/kbswitch/pkg/indicator"
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"codeberg.org/miketth/kbswitch/pkg/menu"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"os/exec"
	"strings"
	"sync"
)

// MaxLayoutSlots is how many layouts the menu can list. Menu items can't be
// removed, so the slots are allocated once and hidden when unused.
const MaxLayoutSlots = 16

var ErrNoPreferences = errors.New("no preferences command configured")

// Launcher starts a program without waiting for it.
type Launcher func(command []string) error

func StartProcess(command []string) error {
	if len(command) == 0 {
		return ErrNoPreferences
	}
	return exec.Command(command[0], command[1:]...).Start()
}

// Alert tells the user about an error.
type Alert func(caption, text string)

type Options struct {
	PreferencesCommand []string
	Style              indicator.Style
	Launch             Launcher
	Alert              Alert
}

type Tray struct {
	events chan<- kbswitch.Event
	poller *kbswitch.Poller
	opts   Options
	log    *zap.SugaredLogger
	quit   chan struct{}

	mu        sync.Mutex
	menu      menu.Menu
	slotIDs   [MaxLayoutSlots]menu.CommandID
	slotCount int
	label     string
	quitOnce  sync.Once

	items *menuItems
}

func New(events chan<- kbswitch.Event, poller *kbswitch.Poller, opts Options, log *zap.SugaredLogger) *Tray {
	if opts.Launch == nil {
		opts.Launch = StartProcess
	}
	if opts.Alert == nil {
		opts.Alert = defaultAlert
	}
	if opts.Style.Size == 0 {
		opts.Style = indicator.DefaultStyle()
	}

	return &Tray{
		events: events,
		poller: poller,
		opts:   opts,
		log:    log,
		quit:   make(chan struct{}),
	}
}

// update is what changed since the last view.
type update struct {
	icon    []byte
	tooltip string
	items   []menu.Item
}

// prepare records view as the shown one and renders what the tray needs.
// icon is nil when the label didn't change.
func (t *Tray) prepare(view kbswitch.View) (update, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	items := view.Menu.Items
	if len(items) > MaxLayoutSlots {
		t.log.Debugw("too many layouts for the menu", "layouts", len(items), "shown", MaxLayoutSlots)
		items = items[:MaxLayoutSlots]
	}

	t.menu = view.Menu
	t.slotCount = len(items)
	for i, item := range items {
		t.slotIDs[i] = item.ID
	}

	u := update{
		tooltip: view.Entry.Text,
		items:   items,
	}

	label := indicator.Label(view.Abbreviation)
	if label != t.label {
		icon, err := indicator.Icon(label, t.opts.Style)
		if err != nil {
			return u, fmt.Errorf("draw %q icon: %w", label, err)
		}
		t.label = label
		u.icon = icon
	}

	return u, nil
}

func (t *Tray) layoutClicked(slot int) {
	t.mu.Lock()
	if slot < 0 || slot >= t.slotCount {
		t.mu.Unlock()
		return
	}
	id := t.slotIDs[slot]
	layout, ok := t.menu.Lookup(id)
	t.mu.Unlock()

	if !ok {
		t.log.Debugw("stale menu command", "generation", id.Generation, "index", id.Index)
		return
	}

	t.send(kbswitch.LayoutRequested{Layout: layout})
}

func (t *Tray) command(cmd menu.Command) {
	switch cmd {
	case menu.CommandNextLayout:
		t.send(kbswitch.NextLayoutRequested{})
	case menu.CommandPreferences:
		t.openPreferences()
	case menu.CommandExit:
		t.Quit()
	}
}

func (t *Tray) openPreferences() {
	if err := t.opts.Launch(t.opts.PreferencesCommand); err != nil {
		t.log.Warnw("failed to open preferences", "command", t.opts.PreferencesCommand, "error", err)
		t.opts.Alert("kbswitch", fmt.Sprintf("Can't start %s", strings.Join(t.opts.PreferencesCommand, " ")))
	}
}

// send hands ev to the tracker with the poller paused, so that a tick
// doesn't overwrite the layout before the request lands.
func (t *Tray) send(ev kbswitch.Event) {
	t.poller.Pause()
	defer t.poller.Resume()

	select {
	case t.events <- ev:
	case <-t.quit:
	}
}

// Done is closed once the tray is asked to quit.
func (t *Tray) Done() <-chan struct{} {
	return t.quit
}
