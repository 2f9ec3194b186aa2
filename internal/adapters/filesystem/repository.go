package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tally/internal/domain"
	"tally/internal/ports"
)

// Repository implements ports.DayStore with one JSON file per calendar day
// under a data directory. Writes go through a temp file plus rename, so a
// crash mid-write never corrupts a previously saved day.
type Repository struct {
	dataDir string
}

var _ ports.DayStore = (*Repository)(nil)

// NewRepository creates a day store rooted at dataDir.
func NewRepository(dataDir string) *Repository {
	if strings.HasPrefix(dataDir, "~") {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, dataDir[1:])
	}
	return &Repository{dataDir: dataDir}
}

// Path returns the data file path for a date.
func (r *Repository) Path(date domain.Date) string {
	return filepath.Join(r.dataDir, date.String()+".json")
}

// Load returns the stored entries for a date; an absent file is an empty
// day, not an error.
func (r *Repository) Load(date domain.Date) ([]domain.Entry, error) {
	data, err := os.ReadFile(r.Path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.Path(date), err)
	}
	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.Path(date), err)
	}
	return entries, nil
}

// Save atomically replaces the day file. The temp file lives in the data
// directory so the rename stays on one filesystem.
func (r *Repository) Save(date domain.Date, entries []domain.Entry) error {
	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", r.dataDir, err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode day %s: %w", date, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(r.dataDir, "."+date.String()+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), r.Path(date)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename to %s: %w", r.Path(date), err)
	}
	return nil
}

// Exists reports whether the date has a ledger with at least one entry.
func (r *Repository) Exists(date domain.Date) bool {
	entries, err := r.Load(date)
	return err == nil && len(entries) > 0
}

// Clear removes the day file; clearing an absent day is a no-op.
func (r *Repository) Clear(date domain.Date) error {
	if err := os.Remove(r.Path(date)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", r.Path(date), err)
	}
	return nil
}
