package domain

import "time"

// Window restricts aggregation to the half-open interval [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// Summary is the derived per-activity accounting over any set of ledgers.
// Never persisted.
type Summary struct {
	ByActivity map[string]time.Duration
	Productive time.Duration
	Total      time.Duration
}

// NewSummary returns an empty, all-zero summary.
func NewSummary() Summary {
	return Summary{ByActivity: map[string]time.Duration{}}
}

// Aggregate folds the ledgers into a summary, clipping each entry to window
// when it is non-nil. Ledgers are read-only here. Empty input yields a zero
// summary.
func Aggregate(ledgers []*Ledger, window *Window, acts Activities) Summary {
	s := NewSummary()
	for _, l := range ledgers {
		entries := l.Entries
		if window != nil {
			entries = l.EntriesIn(window.From, window.To)
		}
		for _, e := range entries {
			d := e.Duration()
			s.ByActivity[e.Activity] += d
			s.Total += d
			if a, ok := acts.ByID(e.Activity); ok && a.Productive {
				s.Productive += d
			}
		}
	}
	return s
}

// Merge combines two summaries. Merge is associative and commutative, so
// aggregating ledgers in any partition order gives the same result.
func (s Summary) Merge(other Summary) Summary {
	out := NewSummary()
	for id, d := range s.ByActivity {
		out.ByActivity[id] += d
	}
	for id, d := range other.ByActivity {
		out.ByActivity[id] += d
	}
	out.Productive = s.Productive + other.Productive
	out.Total = s.Total + other.Total
	return out
}

// ProductiveHours expresses the productive total in fractional hours rounded
// to the quantum's precision. A non-zero total never rounds below one
// quantum.
func (s Summary) ProductiveHours(quantum time.Duration) float64 {
	return roundHours(s.Productive, quantum)
}

// Hours returns the rounded fractional hours recorded for one activity.
func (s Summary) Hours(activityID string, quantum time.Duration) float64 {
	return roundHours(s.ByActivity[activityID], quantum)
}

func roundHours(d, quantum time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	rounded := d.Round(quantum)
	if rounded < quantum {
		rounded = quantum
	}
	return rounded.Hours()
}

// Score relates productive hours to the daily target over n days.
func (s Summary) Score(target float64, days int, quantum time.Duration) float64 {
	if target <= 0 || days <= 0 {
		return 0
	}
	return s.ProductiveHours(quantum) / (target * float64(days))
}
