package store

// Store persists the set of listing links already notified. Load never
// fails: a missing or corrupt state is treated as an empty set, which is
// expected on first run. Save replaces the persisted set completely with
// the links observed in the current run; it does not union with the
// previous contents.
type Store interface {
	// Load returns the set of previously notified listing links
	Load() map[string]bool

	// Save overwrites the persisted set with the given links
	Save(links map[string]bool) error
}
