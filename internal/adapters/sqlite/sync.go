package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"tally/internal/domain"
	"tally/internal/ports"
)

func secondsToDuration(s int64) time.Duration {
	return time.Duration(s) * time.Second
}

// Sync brings the index up to date for the given dates. A day file is
// re-read only when its mtime differs from the recorded one; removed files
// drop out of the index.
func (idx *Index) Sync(dates []domain.Date) (*ports.SyncStats, error) {
	stats := &ports.SyncStats{}
	for _, date := range dates {
		stats.FilesScanned++

		fi, err := os.Stat(idx.store.Path(date))
		if err != nil {
			if os.IsNotExist(err) {
				removed, err := idx.remove(date)
				if err != nil {
					return nil, err
				}
				if removed {
					stats.DaysRemoved++
				}
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", idx.store.Path(date), err)
		}

		var known int64
		err = idx.db.QueryRow(`SELECT mtime FROM day_meta WHERE date = ?`, date.String()).Scan(&known)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("read index mtime for %s: %w", date, err)
		}
		if err == nil && known == fi.ModTime().Unix() {
			continue
		}

		if err := idx.reindex(date, fi.ModTime().Unix()); err != nil {
			return nil, err
		}
		stats.DaysUpdated++
	}
	return stats, nil
}

func (idx *Index) remove(date domain.Date) (bool, error) {
	res, err := idx.db.Exec(`DELETE FROM day_meta WHERE date = ?`, date.String())
	if err != nil {
		return false, fmt.Errorf("drop day %s from index: %w", date, err)
	}
	if _, err := idx.db.Exec(`DELETE FROM day_totals WHERE date = ?`, date.String()); err != nil {
		return false, fmt.Errorf("drop day %s from index: %w", date, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (idx *Index) reindex(date domain.Date, mtime int64) error {
	entries, err := idx.store.Load(date)
	if err != nil {
		return err
	}
	ledger, err := domain.NewLedger(date, entries)
	if err != nil {
		return fmt.Errorf("stored day %s: %w", date, err)
	}

	totals := map[string]time.Duration{}
	for _, e := range ledger.Entries {
		totals[e.Activity] += e.Duration()
	}

	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("begin index update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM day_totals WHERE date = ?`, date.String()); err != nil {
		return fmt.Errorf("reindex day %s: %w", date, err)
	}
	for activity, d := range totals {
		if _, err := tx.Exec(
			`INSERT INTO day_totals (date, activity, seconds) VALUES (?, ?, ?)`,
			date.String(), activity, int64(d.Seconds()),
		); err != nil {
			return fmt.Errorf("reindex day %s: %w", date, err)
		}
	}
	if _, err := tx.Exec(
		`INSERT INTO day_meta (date, mtime) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET mtime = excluded.mtime`,
		date.String(), mtime,
	); err != nil {
		return fmt.Errorf("record day %s mtime: %w", date, err)
	}
	return tx.Commit()
}
