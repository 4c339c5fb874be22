//go:build windows

package tray

import (
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"codeberg.org/miketth/kbswitch/pkg/menu"
	"codeberg.org/miketth/kbswitch/pkg/win32"
	"github.com/getlantern/systray"
)

var defaultAlert Alert = win32.ShowError

type menuItems struct {
	layouts     [MaxLayoutSlots]*systray.MenuItem
	next        *systray.MenuItem
	preferences *systray.MenuItem
	exit        *systray.MenuItem
}

// Run shows the icon and blocks until Quit. onReady runs once the icon
// exists; Show must not be called before that.
func (t *Tray) Run(onReady, onExit func()) {
	systray.Run(func() {
		t.setup()
		onReady()
	}, onExit)
}

func (t *Tray) Quit() {
	t.quitOnce.Do(func() {
		close(t.quit)
		systray.Quit()
	})
}

func (t *Tray) setup() {
	systray.SetTooltip("kbswitch")

	items := &menuItems{}
	for i := range items.layouts {
		items.layouts[i] = systray.AddMenuItem("", "")
		items.layouts[i].Hide()
		go t.watch(items.layouts[i], func(slot int) func() {
			return func() { t.layoutClicked(slot) }
		}(i))
	}

	systray.AddSeparator()
	items.next = systray.AddMenuItem("Next layout", "Switch the active window to the next layout")
	items.preferences = systray.AddMenuItem("Preferences...", "Open the input language settings")
	systray.AddSeparator()
	items.exit = systray.AddMenuItem("Exit", "")

	go t.watch(items.next, func() { t.command(menu.CommandNextLayout) })
	go t.watch(items.preferences, func() { t.command(menu.CommandPreferences) })
	go t.watch(items.exit, func() { t.command(menu.CommandExit) })

	t.mu.Lock()
	t.items = items
	t.mu.Unlock()
}

func (t *Tray) watch(item *systray.MenuItem, clicked func()) {
	for {
		select {
		case <-t.quit:
			return
		case <-item.ClickedCh:
			clicked()
		}
	}
}

// Show implements kbswitch.Indicator.
func (t *Tray) Show(view kbswitch.View) error {
	u, err := t.prepare(view)

	if u.icon != nil {
		systray.SetIcon(u.icon)
	}
	systray.SetTooltip(u.tooltip)

	t.mu.Lock()
	items := t.items
	t.mu.Unlock()
	if items == nil {
		return err
	}

	for i, slot := range items.layouts {
		if i >= len(u.items) {
			slot.Hide()
			continue
		}

		slot.SetTitle(u.items[i].Text)
		if u.items[i].Checked {
			slot.Check()
		} else {
			slot.Uncheck()
		}
		slot.Show()
	}

	return err
}
