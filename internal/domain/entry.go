package domain

import "time"

// Entry is one recorded span of time tagged with a single activity.
// Start and End are exact wall-clock timestamps; boundaries are suggested on
// quantum marks but manually entered times are accepted unaligned.
type Entry struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Activity string    `json:"activity"`
	Comment  string    `json:"comment,omitempty"`
}

// Duration returns End - Start.
func (e Entry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Validate checks the start-before-end invariant.
func (e Entry) Validate() error {
	if !e.Start.Before(e.End) {
		return &OrderError{Entry: e}
	}
	return nil
}

// Clip restricts the entry to the half-open window [from, to). The second
// return value is false when the entry falls entirely outside the window.
func (e Entry) Clip(from, to time.Time) (Entry, bool) {
	if !e.End.After(from) || !e.Start.Before(to) {
		return Entry{}, false
	}
	if e.Start.Before(from) {
		e.Start = from
	}
	if e.End.After(to) {
		e.End = to
	}
	return e, true
}

// Overlaps reports whether two entries share at least one instant.
// Touching boundaries (a.End == b.Start) do not overlap.
func (e Entry) Overlaps(other Entry) bool {
	return e.Start.Before(other.End) && other.Start.Before(e.End)
}
