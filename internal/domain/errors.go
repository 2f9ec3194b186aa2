package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common conditions
var (
	ErrNoData      = errors.New("no data within lookback horizon")
	ErrUnknownName = errors.New("unknown activity")
)

// OrderError reports an entry whose start is not strictly before its end.
type OrderError struct {
	Entry Entry
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("entry %s has start >= end (%s >= %s)",
		e.Entry.Activity, e.Entry.Start.Format("15:04"), e.Entry.End.Format("15:04"))
}

// OverlapError reports two entries that share at least one instant.
type OverlapError struct {
	First  Entry
	Second Entry
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("entries overlap: %s %s-%s and %s %s-%s",
		e.First.Activity, e.First.Start.Format("15:04"), e.First.End.Format("15:04"),
		e.Second.Activity, e.Second.Start.Format("15:04"), e.Second.End.Format("15:04"))
}

// InvalidBoundaryError reports a split boundary outside the open gap or not
// strictly after the previous boundary.
type InvalidBoundaryError struct {
	Boundary time.Time
	Previous time.Time
	GapEnd   time.Time
}

func (e *InvalidBoundaryError) Error() string {
	return fmt.Sprintf("boundary %s must fall after %s and not after %s",
		e.Boundary.Format("15:04"), e.Previous.Format("15:04"), e.GapEnd.Format("15:04"))
}
