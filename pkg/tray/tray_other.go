//go:build !windows

package tray

import (
	"codeberg.org/miketth/kbswitch/pkg/kbswitch"
	"fmt"
	"os"
)

func defaultAlert(caption, text string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", caption, text)
}

type menuItems struct{}

func (t *Tray) Quit() {
	t.quitOnce.Do(func() {
		close(t.quit)
	})
}

// Show renders the view without displaying it; there is no tray here.
func (t *Tray) Show(view kbswitch.View) error {
	_, err := t.prepare(view)
	return err
}
