package layouts

// Record is one raw entry of the installed layouts configuration store.
type Record struct {
	// Key is the hex layout id the entry is stored under, e.g. "00000409".
	Key string
	// Text is the "Layout Text" value.
	Text string
	// LayoutID is the optional hex "Layout Id" value.
	LayoutID string
}

// Source enumerates the installed layouts configuration store. Records must
// only fail as a whole when the store itself can't be opened; unreadable
// individual entries are left out of the result.
type Source interface {
	Records() ([]Record, error)
}
