package domain

import (
	"errors"
	"testing"
	"time"
)

var testDate = Date{Year: 2026, Month: time.September, Day: 1}

// at builds a timestamp on the test date.
func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, time.September, 1, hour, min, 0, 0, time.Local)
}

func entry(t *testing.T, startH, startM, endH, endM int, activity string) Entry {
	t.Helper()
	return Entry{Start: at(t, startH, startM), End: at(t, endH, endM), Activity: activity}
}

func TestNormalizeSortsByStart(t *testing.T) {
	l := &Ledger{Date: testDate, Entries: []Entry{
		entry(t, 14, 0, 15, 0, "work"),
		entry(t, 9, 0, 10, 0, "work"),
		entry(t, 10, 0, 12, 0, "break"),
	}}
	if err := l.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !l.Entries[0].Start.Equal(at(t, 9, 0)) {
		t.Errorf("expected earliest entry first, got start %v", l.Entries[0].Start)
	}
	if !l.Entries[2].Start.Equal(at(t, 14, 0)) {
		t.Errorf("expected latest entry last, got start %v", l.Entries[2].Start)
	}
}

func TestNormalizeRejectsOverlap(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr bool
	}{
		{
			name: "touching entries do not overlap",
			entries: []Entry{
				entry(t, 9, 0, 10, 0, "work"),
				entry(t, 10, 0, 11, 0, "break"),
			},
		},
		{
			name: "shared instant overlaps",
			entries: []Entry{
				entry(t, 9, 0, 10, 30, "work"),
				entry(t, 10, 0, 11, 0, "break"),
			},
			wantErr: true,
		},
		{
			name: "contained entry overlaps",
			entries: []Entry{
				entry(t, 9, 0, 12, 0, "work"),
				entry(t, 10, 0, 11, 0, "break"),
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Ledger{Date: testDate, Entries: tt.entries}
			err := l.Normalize()
			if tt.wantErr {
				var overlapErr *OverlapError
				if !errors.As(err, &overlapErr) {
					t.Fatalf("expected OverlapError, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeRejectsBadOrder(t *testing.T) {
	l := &Ledger{Date: testDate, Entries: []Entry{
		{Start: at(t, 10, 0), End: at(t, 10, 0), Activity: "work"},
	}}
	var orderErr *OrderError
	if err := l.Normalize(); !errors.As(err, &orderErr) {
		t.Fatalf("expected OrderError for zero-length entry, got %v", err)
	}
}

func TestCoalescePreservesTotal(t *testing.T) {
	l := &Ledger{Date: testDate, Entries: []Entry{
		entry(t, 9, 0, 9, 30, "work"),
		entry(t, 9, 30, 10, 0, "work"),
		entry(t, 10, 0, 10, 30, "break"),
		entry(t, 10, 30, 11, 0, "work"),
	}}
	if err := l.Normalize(); err != nil {
		t.Fatal(err)
	}
	before := l.Total()

	l.Coalesce()
	if got := len(l.Entries); got != 3 {
		t.Errorf("expected 3 entries after coalesce, got %d", got)
	}
	if l.Total() != before {
		t.Errorf("coalesce changed total: %v != %v", l.Total(), before)
	}
}

func TestCoalesceKeepsCommentedEntries(t *testing.T) {
	first := entry(t, 9, 0, 9, 30, "work")
	first.Comment = "standup"
	l := &Ledger{Date: testDate, Entries: []Entry{
		first,
		entry(t, 9, 30, 10, 0, "work"),
	}}
	l.Coalesce()
	if len(l.Entries) != 2 {
		t.Fatalf("commented entry must not merge, got %d entries", len(l.Entries))
	}
}

func TestEntriesInClips(t *testing.T) {
	l := &Ledger{Date: testDate, Entries: []Entry{
		entry(t, 9, 0, 11, 0, "work"),
		entry(t, 12, 0, 13, 0, "break"),
	}}
	got := l.EntriesIn(at(t, 10, 0), at(t, 12, 30))
	if len(got) != 2 {
		t.Fatalf("expected 2 clipped entries, got %d", len(got))
	}
	if !got[0].Start.Equal(at(t, 10, 0)) || !got[0].End.Equal(at(t, 11, 0)) {
		t.Errorf("first entry clipped wrong: %v-%v", got[0].Start, got[0].End)
	}
	if !got[1].End.Equal(at(t, 12, 30)) {
		t.Errorf("second entry end not clipped: %v", got[1].End)
	}
}

func TestEntriesInFullDayEqualsTotal(t *testing.T) {
	l := &Ledger{Date: testDate, Entries: []Entry{
		entry(t, 9, 0, 10, 45, "work"),
		entry(t, 11, 0, 12, 15, "break"),
	}}
	var sum time.Duration
	for _, e := range l.EntriesIn(testDate.Time(), testDate.AddDays(1).Time()) {
		sum += e.Duration()
	}
	if sum != l.Total() {
		t.Errorf("full-day window total %v != ledger total %v", sum, l.Total())
	}
}

func TestGap(t *testing.T) {
	quantum := 15 * time.Minute

	t.Run("after last entry", func(t *testing.T) {
		l := &Ledger{Date: testDate, Entries: []Entry{entry(t, 20, 0, 20, 30, "break")}}
		gap := l.Gap(at(t, 23, 15), quantum)
		if !gap.Start.Equal(at(t, 20, 30)) || !gap.End.Equal(at(t, 23, 15)) {
			t.Errorf("gap %v-%v", gap.Start, gap.End)
		}
		if gap.Duration() != 2*time.Hour+45*time.Minute {
			t.Errorf("gap duration %v", gap.Duration())
		}
	})

	t.Run("empty ledger starts at quantum mark", func(t *testing.T) {
		l := &Ledger{Date: testDate}
		gap := l.Gap(at(t, 12, 7), quantum)
		if !gap.Start.Equal(at(t, 12, 0)) {
			t.Errorf("gap start %v, want 12:00", gap.Start)
		}
	})

	t.Run("up to date", func(t *testing.T) {
		l := &Ledger{Date: testDate, Entries: []Entry{entry(t, 20, 0, 20, 30, "break")}}
		if gap := l.Gap(at(t, 20, 30), quantum); !gap.IsZero() {
			t.Errorf("expected zero gap, got %v-%v", gap.Start, gap.End)
		}
	})
}

func TestAppendRejectsOverlap(t *testing.T) {
	l := &Ledger{Date: testDate, Entries: []Entry{entry(t, 9, 0, 10, 0, "work")}}
	var overlapErr *OverlapError
	if err := l.Append(entry(t, 9, 30, 10, 30, "break")); !errors.As(err, &overlapErr) {
		t.Fatalf("expected OverlapError, got %v", err)
	}
	if err := l.Append(entry(t, 10, 0, 10, 30, "break")); err != nil {
		t.Fatalf("touching append failed: %v", err)
	}
	if len(l.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(l.Entries))
	}
}
