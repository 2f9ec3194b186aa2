package domain

import "fmt"

// PeriodKind names the supported reporting ranges.
type PeriodKind int

const (
	PeriodToday PeriodKind = iota
	PeriodDay
	PeriodYesterday
	PeriodLastDay
	PeriodWeek
	PeriodYear
)

const (
	daysPerWeek = 7
	daysPerYear = 365
)

// Period is a user-specified reporting range: a kind plus an optional repeat
// count (3 x week = trailing 21 days) and, for PeriodDay, the concrete date.
type Period struct {
	Kind  PeriodKind
	Count int
	Day   Date
}

// Dates expands the period to the ordered (oldest first) list of calendar
// dates to load. PeriodLastDay is resolved separately via LastDay since it
// needs to probe which ledgers exist.
func (p Period) Dates(today Date) []Date {
	count := p.Count
	if count < 1 {
		count = 1
	}
	switch p.Kind {
	case PeriodDay:
		return []Date{p.Day}
	case PeriodYesterday:
		return []Date{today.AddDays(-count)}
	case PeriodWeek:
		return trailing(today, count*daysPerWeek)
	case PeriodYear:
		return trailing(today, count*daysPerYear)
	default:
		return []Date{today}
	}
}

// trailing returns the n dates ending at (and including) today.
func trailing(today Date, n int) []Date {
	dates := make([]Date, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, today.AddDays(-i))
	}
	return dates
}

// LastDay scans backwards from today for the most recent date for which
// exists reports a ledger, skipping missing days, bounded by horizon days.
// Returns ErrNoData when the whole horizon is empty.
func LastDay(today Date, horizon int, exists func(Date) bool) (Date, error) {
	for i := 0; i <= horizon; i++ {
		d := today.AddDays(-i)
		if exists(d) {
			return d, nil
		}
	}
	return Date{}, fmt.Errorf("no ledger in the last %d days: %w", horizon, ErrNoData)
}
