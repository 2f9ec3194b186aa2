package ports

import "tally/internal/domain"

// DayStore defines the interface for per-day ledger persistence.
//
// Save must be atomic enough that a crash mid-write cannot corrupt a
// previously saved day (write-then-rename discipline). Concurrent processes
// writing the same day are out of scope and may race; tally assumes a single
// user and a single invocation at a time.
type DayStore interface {
	// Load returns the raw entries for a date, or an empty slice (nil error)
	// when no file exists.
	Load(date domain.Date) ([]domain.Entry, error)

	// Save persists the entries for a date, replacing any previous content.
	Save(date domain.Date, entries []domain.Entry) error

	// Exists reports whether a day file with at least one entry exists.
	Exists(date domain.Date) bool

	// Path returns the data file path for a date.
	Path(date domain.Date) string

	// Clear removes the day file. Removing an absent file is not an error.
	Clear(date domain.Date) error
}
