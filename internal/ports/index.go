package ports

import "tally/internal/domain"

// StatsIndex is a queryable cache of per-day per-activity totals, kept in
// sync with the day files. It exists so long ranges (a year of ledgers) can
// be aggregated without opening hundreds of JSON files; its results must be
// identical to aggregating the files directly.
type StatsIndex interface {
	// Sync brings the index up to date for the given dates, re-reading only
	// day files whose mtime changed since the last sync.
	Sync(dates []domain.Date) (*SyncStats, error)

	// Aggregate returns the summary over the given dates from the index.
	Aggregate(dates []domain.Date, acts domain.Activities) (domain.Summary, error)

	Close() error
}

// SyncStats reports what an index sync did.
type SyncStats struct {
	FilesScanned int
	DaysUpdated  int
	DaysRemoved  int
}
