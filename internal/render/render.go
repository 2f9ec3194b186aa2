package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tally/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// The palette cycles through the basic ANSI colors; an activity's color
	// is a stable hash of its name.
	palette = []lipgloss.Color{"1", "2", "3", "4", "5", "6", "7"}
)

// Renderer turns ledgers and summaries into styled terminal output.
type Renderer struct {
	Acts         domain.Activities
	Quantum      time.Duration
	Target       float64
	DayStartHour int
}

func New(acts domain.Activities, quantum time.Duration, target float64, dayStartHour int) *Renderer {
	return &Renderer{Acts: acts, Quantum: quantum, Target: target, DayStartHour: dayStartHour}
}

func (r *Renderer) activityStyle(id string) lipgloss.Style {
	name := id
	if a, ok := r.Acts.ByID(id); ok {
		name = a.Name
	}
	sum := len(name)
	for _, c := range name {
		sum += int(c)
	}
	return lipgloss.NewStyle().Foreground(palette[sum%len(palette)])
}

func (r *Renderer) activityName(id string) string {
	if a, ok := r.Acts.ByID(id); ok {
		return a.Name
	}
	return id
}

// Entry renders one entry as "20:30-22:00 - Work - comment".
func (r *Renderer) Entry(e domain.Entry) string {
	s := fmt.Sprintf("%s-%s - %s",
		domain.FormatClock(e.Start), domain.FormatClock(e.End),
		r.activityStyle(e.Activity).Render(r.activityName(e.Activity)))
	if e.Comment != "" {
		s += faintStyle.Render(" - " + e.Comment)
	}
	return s
}

// Day renders a full day: its entries, the open gap when now falls on the
// day, and the productive totals.
func (r *Renderer) Day(l *domain.Ledger, now time.Time, showGap bool) string {
	var b strings.Builder
	for _, e := range l.Entries {
		b.WriteString(r.Entry(e))
		b.WriteString("\n")
	}
	if len(l.Entries) == 0 {
		b.WriteString(faintStyle.Render("no entries"))
		b.WriteString("\n")
	}
	if showGap {
		gap := l.Gap(now, r.Quantum)
		if gap.IsZero() {
			b.WriteString(faintStyle.Render("up to date"))
			b.WriteString("\n")
		} else {
			b.WriteString(warnStyle.Render(fmt.Sprintf("open gap: %s-%s (%s)",
				domain.FormatClock(gap.Start), domain.FormatClock(gap.End),
				formatDuration(gap.Duration()))))
			b.WriteString("\n")
		}
	}
	summary := domain.Aggregate([]*domain.Ledger{l}, nil, r.Acts)
	b.WriteString(fmt.Sprintf("Hours productive: %.2f, score: %.2f\n",
		summary.ProductiveHours(r.Quantum), summary.Score(r.Target, 1, r.Quantum)))
	return b.String()
}

// DayChart renders 24 hours as one colored shortcut letter per quantum,
// starting at the configured day-start hour.
func (r *Renderer) DayChart(l *domain.Ledger) string {
	if l == nil {
		return ""
	}
	start := l.Date.Time().Add(time.Duration(r.DayStartHour) * time.Hour)
	end := start.Add(24 * time.Hour)

	var b strings.Builder
	for t := start; t.Before(end); t = t.Add(r.Quantum) {
		ch := " "
		for _, e := range l.Entries {
			if !e.Start.After(t) && e.End.After(t) {
				if a, ok := r.Acts.ByID(e.Activity); ok && a.Shortcut != 0 {
					ch = r.activityStyle(e.Activity).Render(string(a.Shortcut))
				} else {
					ch = "?"
				}
				break
			}
		}
		b.WriteString(ch)
	}
	return b.String()
}

// ChartHeader renders the hour ruler that lines up with DayChart output.
func (r *Renderer) ChartHeader(indent int) string {
	perHour := int(time.Hour / r.Quantum)
	var hours strings.Builder
	for h := 0; h < 24; h++ {
		hours.WriteString(fmt.Sprintf("%-*d", perHour, (h+r.DayStartHour)%24))
	}
	pad := strings.Repeat(" ", indent)
	return pad + faintStyle.Render(hours.String())
}

// DayRow renders one line of a multi-day report.
func (r *Renderer) DayRow(date domain.Date, l *domain.Ledger) string {
	label := fmt.Sprintf("%s %s:", date.Weekday().String()[:3], date)
	if l == nil {
		return fmt.Sprintf("%-16s %s", label, faintStyle.Render("no data"))
	}
	summary := domain.Aggregate([]*domain.Ledger{l}, nil, r.Acts)
	return fmt.Sprintf("%-16s %4.1f hrs  %s", label,
		summary.ProductiveHours(r.Quantum), r.DayChart(l))
}

// Summary renders the aggregate block of a report over n days.
func (r *Renderer) Summary(s domain.Summary, days int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Aggregated over %d day(s)", days)))
	b.WriteString("\n")
	hours := s.ProductiveHours(r.Quantum)
	target := r.Target * float64(days)
	b.WriteString(fmt.Sprintf("Hours productive: %.2f, score: %.2f\n",
		hours, s.Score(r.Target, days, r.Quantum)))
	b.WriteString(fmt.Sprintf("Target: %.1f x %d = %.1f hours; difference: %+.1f hours\n",
		r.Target, days, target, hours-target))

	// Configured order, unconfigured leftovers last.
	for _, a := range r.Acts {
		if d, ok := s.ByActivity[a.ID]; ok && d > 0 {
			b.WriteString(fmt.Sprintf("%5.1f hrs  %s\n",
				s.Hours(a.ID, r.Quantum), r.activityStyle(a.ID).Render(a.Name)))
		}
	}
	for id, d := range s.ByActivity {
		if _, ok := r.Acts.ByID(id); !ok && d > 0 {
			b.WriteString(fmt.Sprintf("%5.1f hrs  %s\n", s.Hours(id, r.Quantum), id))
		}
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
