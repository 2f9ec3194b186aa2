package commands

import (
	"tally/internal/application"
	"tally/internal/domain"
)

// ExportCommand collects per-activity daily hour series over the trailing
// year, shaped for machine consumption by the `json` command. Days without
// a ledger contribute no element, so every activity's series has one value
// per recorded day, oldest first.
type ExportCommand struct {
	Env   application.Env
	Count int
}

func NewExportCommand(env application.Env, count int) *ExportCommand {
	return &ExportCommand{Env: env, Count: count}
}

func (c *ExportCommand) Execute() (map[string][]float64, error) {
	// A day-level series needs each ledger, not the index totals.
	c.Env.Index = nil
	report, err := NewReportCommand(c.Env, domain.Period{Kind: domain.PeriodYear, Count: c.Count}).Execute()
	if err != nil {
		return nil, err
	}

	series := make(map[string][]float64, len(c.Env.Acts))
	for _, a := range c.Env.Acts {
		series[a.ID] = []float64{}
	}
	for _, day := range report.Days {
		if day.Ledger == nil {
			continue
		}
		s := domain.Aggregate([]*domain.Ledger{day.Ledger}, nil, c.Env.Acts)
		for _, a := range c.Env.Acts {
			series[a.ID] = append(series[a.ID], s.Hours(a.ID, c.Env.Quantum))
		}
	}
	return series, nil
}
