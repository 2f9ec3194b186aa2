package commands

import (
	"fmt"

	"tally/internal/application"
	"tally/internal/domain"
)

// DayReport is one loaded day within a report. Ledger is nil when no day
// file exists for the date.
type DayReport struct {
	Date   domain.Date
	Ledger *domain.Ledger
}

// Report is the aggregated outcome of a reporting command.
type Report struct {
	Period       domain.Period
	Days         []DayReport
	Summary      domain.Summary
	DaysWithData int
	FromIndex    bool
}

// ReportCommand loads the ledgers selected by a period and aggregates them.
// Missing days are skipped; a fully empty range yields an all-zero summary,
// not an error.
type ReportCommand struct {
	Env    application.Env
	Period domain.Period
}

func NewReportCommand(env application.Env, period domain.Period) *ReportCommand {
	return &ReportCommand{Env: env, Period: period}
}

// Validate checks the period before any I/O.
func (c *ReportCommand) Validate() error {
	if c.Period.Count < 0 {
		return fmt.Errorf("repeat count must be positive, got %d", c.Period.Count)
	}
	if c.Period.Kind == domain.PeriodDay && (c.Period.Day == domain.Date{}) {
		return fmt.Errorf("day period requires a date")
	}
	return nil
}

func (c *ReportCommand) Execute() (*Report, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var dates []domain.Date
	if c.Period.Kind == domain.PeriodLastDay {
		d, err := domain.LastDay(c.Env.Today, c.Env.Horizon, c.Env.Store.Exists)
		if err != nil {
			return nil, err
		}
		dates = []domain.Date{d}
	} else {
		dates = c.Period.Dates(c.Env.Today)
	}

	// Year-scale ranges go through the stats index when one is wired, so a
	// report does not open hundreds of JSON files.
	if c.Period.Kind == domain.PeriodYear && c.Env.Index != nil {
		if _, err := c.Env.Index.Sync(dates); err != nil {
			return nil, fmt.Errorf("sync stats index: %w", err)
		}
		summary, err := c.Env.Index.Aggregate(dates, c.Env.Acts)
		if err != nil {
			return nil, fmt.Errorf("query stats index: %w", err)
		}
		return &Report{Period: c.Period, Summary: summary, FromIndex: true}, nil
	}

	report := &Report{Period: c.Period, Summary: domain.NewSummary()}
	var ledgers []*domain.Ledger
	for _, date := range dates {
		day := DayReport{Date: date}
		if c.Env.Store.Exists(date) {
			entries, err := c.Env.Store.Load(date)
			if err != nil {
				return nil, err
			}
			ledger, err := domain.NewLedger(date, entries)
			if err != nil {
				return nil, fmt.Errorf("stored day %s: %w", date, err)
			}
			day.Ledger = ledger
			ledgers = append(ledgers, ledger)
			report.DaysWithData++
		}
		report.Days = append(report.Days, day)
	}
	report.Summary = domain.Aggregate(ledgers, nil, c.Env.Acts)
	return report, nil
}
