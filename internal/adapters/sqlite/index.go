package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"tally/internal/domain"
	"tally/internal/ports"
)

// Index implements ports.StatsIndex: a SQLite cache of per-day per-activity
// totals, kept in sync with the JSON day files by their mtimes. It only
// accelerates reads; the day files stay the source of truth.
type Index struct {
	db    *sql.DB
	store ports.DayStore
}

var _ ports.StatsIndex = (*Index)(nil)

// New opens (or creates) the index database at dbPath. On a fresh install
// the data directory may not exist yet; create it so opening the index
// before the first save still works.
func New(store ports.DayStore, dbPath string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir %s: %w", filepath.Dir(dbPath), err)
	}
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS day_totals (
			date     TEXT NOT NULL,
			activity TEXT NOT NULL,
			seconds  INTEGER NOT NULL,
			PRIMARY KEY (date, activity)
		);
		CREATE TABLE IF NOT EXISTS day_meta (
			date  TEXT PRIMARY KEY,
			mtime INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init index schema: %w", err)
	}
	return &Index{db: db, store: store}, nil
}

func (idx *Index) Close() error {
	return idx.db.Close()
}

// Aggregate sums the indexed totals over the given dates.
func (idx *Index) Aggregate(dates []domain.Date, acts domain.Activities) (domain.Summary, error) {
	summary := domain.NewSummary()
	if len(dates) == 0 {
		return summary, nil
	}

	placeholders := make([]string, len(dates))
	args := make([]any, len(dates))
	for i, d := range dates {
		placeholders[i] = "?"
		args[i] = d.String()
	}
	query := fmt.Sprintf(
		`SELECT activity, SUM(seconds) FROM day_totals WHERE date IN (%s) GROUP BY activity`,
		strings.Join(placeholders, ","))

	rows, err := idx.db.Query(query, args...)
	if err != nil {
		return summary, fmt.Errorf("query day totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var activity string
		var seconds int64
		if err := rows.Scan(&activity, &seconds); err != nil {
			return summary, fmt.Errorf("scan day totals: %w", err)
		}
		d := secondsToDuration(seconds)
		summary.ByActivity[activity] = d
		summary.Total += d
		if a, ok := acts.ByID(activity); ok && a.Productive {
			summary.Productive += d
		}
	}
	return summary, rows.Err()
}
