package domain

import (
	"sort"
	"time"
)

// Ledger holds the ordered entries of one calendar day. Entries are kept in
// non-decreasing start order and never overlap once Normalize has passed.
type Ledger struct {
	Date    Date
	Entries []Entry
}

// NewLedger builds a ledger from raw entries and normalizes it.
func NewLedger(date Date, entries []Entry) (*Ledger, error) {
	l := &Ledger{Date: date, Entries: entries}
	if err := l.Normalize(); err != nil {
		return nil, err
	}
	return l, nil
}

// Normalize sorts entries by start time and verifies the order and
// non-overlap invariants. Violations are reported, not repaired; the caller
// decides whether to surface them or abort.
func (l *Ledger) Normalize() error {
	sort.SliceStable(l.Entries, func(i, j int) bool {
		return l.Entries[i].Start.Before(l.Entries[j].Start)
	})
	for i, e := range l.Entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if i > 0 && l.Entries[i-1].Overlaps(e) {
			return &OverlapError{First: l.Entries[i-1], Second: e}
		}
	}
	return nil
}

// Coalesce merges adjacent entries that share an activity, carry no comment,
// and touch exactly. Purely an on-disk size optimization; totals are
// unchanged.
func (l *Ledger) Coalesce() {
	if len(l.Entries) < 2 {
		return
	}
	out := l.Entries[:1]
	for _, e := range l.Entries[1:] {
		last := &out[len(out)-1]
		if last.Activity == e.Activity && last.Comment == "" && e.Comment == "" && last.End.Equal(e.Start) {
			last.End = e.End
			continue
		}
		out = append(out, e)
	}
	l.Entries = out
}

// LastEntry returns the chronologically latest entry, if any.
func (l *Ledger) LastEntry() (Entry, bool) {
	if len(l.Entries) == 0 {
		return Entry{}, false
	}
	return l.Entries[len(l.Entries)-1], true
}

// EntriesIn returns the entries clipped to the half-open window [from, to).
func (l *Ledger) EntriesIn(from, to time.Time) []Entry {
	var out []Entry
	for _, e := range l.Entries {
		if clipped, ok := e.Clip(from, to); ok {
			out = append(out, clipped)
		}
	}
	return out
}

// Total returns the summed duration of all entries.
func (l *Ledger) Total() time.Duration {
	var total time.Duration
	for _, e := range l.Entries {
		total += e.Duration()
	}
	return total
}

// Append validates e against the ledger and inserts it in order.
func (l *Ledger) Append(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	for _, existing := range l.Entries {
		if existing.Overlaps(e) {
			return &OverlapError{First: existing, Second: e}
		}
	}
	l.Entries = append(l.Entries, e)
	return l.Normalize()
}

// Gap is the unrecorded interval between the last entry and now. It is
// computed on demand and never persisted.
type Gap struct {
	Start time.Time
	End   time.Time
}

// Duration returns the gap length; zero or negative means up to date.
func (g Gap) Duration() time.Duration {
	return g.End.Sub(g.Start)
}

// IsZero reports whether there is nothing to fill.
func (g Gap) IsZero() bool {
	return !g.Start.Before(g.End)
}

// Gap returns the open interval [lastEntry.End, now). For an empty ledger
// the gap opens at now truncated to the quantum, so the in-progress quantum
// is immediately recordable.
func (l *Ledger) Gap(now time.Time, quantum time.Duration) Gap {
	if last, ok := l.LastEntry(); ok {
		return Gap{Start: last.End, End: now}
	}
	return Gap{Start: now.Truncate(quantum), End: now}
}
