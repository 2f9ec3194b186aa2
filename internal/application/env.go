package application

import (
	"time"

	"tally/internal/domain"
	"tally/internal/ports"
)

// Env is the explicit process context: configuration-derived values and
// collaborators, loaded once at startup and passed to every command instead
// of living in ambient globals.
type Env struct {
	Store   ports.DayStore
	Prompt  ports.Prompter
	Feed    ports.ActivityFeed // may be nil
	Index   ports.StatsIndex   // may be nil
	Acts    domain.Activities
	Quantum time.Duration
	Target  float64 // productive hours per day
	Horizon int     // lastday lookback, days

	Now   time.Time
	Today domain.Date
}

// Reconciler builds a reconciler bound to today's ledger.
func (e Env) Reconciler() *Reconciler {
	return &Reconciler{
		Store:   e.Store,
		Prompt:  e.Prompt,
		Feed:    e.Feed,
		Acts:    e.Acts,
		Quantum: e.Quantum,
		Date:    e.Today,
		Now:     e.Now,
	}
}
