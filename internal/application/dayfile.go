package application

import (
	"fmt"
	"strings"
	"time"

	"tally/internal/domain"
)

// Day text round-trip for the edit command. One line per entry:
//
//	20:30-22:00 - work - optional comment
//
// Clock times are resolved against the ledger's date; because a tracked day
// can run past midnight, a time smaller than the one before it rolls over
// to the next calendar day.

const dayfileHeader = `# One entry per line: START-END - activity - comment
# The comment part is optional. Lines starting with # are ignored.
# Valid activities: `

const fieldSep = " - "

// MarshalDay renders a ledger as editable text.
func MarshalDay(l *domain.Ledger, acts domain.Activities) string {
	var b strings.Builder
	ids := make([]string, len(acts))
	for i, a := range acts {
		ids[i] = a.ID
	}
	b.WriteString(dayfileHeader)
	b.WriteString(strings.Join(ids, ", "))
	b.WriteString("\n")
	for _, e := range l.Entries {
		b.WriteString(domain.FormatClock(e.Start))
		b.WriteString("-")
		b.WriteString(domain.FormatClock(e.End))
		b.WriteString(fieldSep)
		b.WriteString(e.Activity)
		if e.Comment != "" {
			b.WriteString(fieldSep)
			b.WriteString(e.Comment)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ParseDay parses edited day text back into entries. Activities must exist
// in the configured set; the result is not yet normalized.
func ParseDay(date domain.Date, text string, acts domain.Activities) ([]domain.Entry, error) {
	var entries []domain.Entry
	base := date.Time()
	var prev time.Time

	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, fieldSep, 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("line %d: want 'START-END - activity [- comment]', got %q", lineNo+1, line)
		}

		startText, endText, ok := strings.Cut(parts[0], "-")
		if !ok {
			return nil, fmt.Errorf("line %d: invalid time range %q", lineNo+1, parts[0])
		}
		start, err := parseOnDate(base, startText)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		// Roll past midnight when times stop increasing.
		if !prev.IsZero() && start.Before(prev) {
			base = base.AddDate(0, 0, 1)
			start = start.AddDate(0, 0, 1)
		}
		end, err := parseOnDate(base, endText)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
			base = base.AddDate(0, 0, 1)
		}
		prev = end

		id := strings.TrimSpace(parts[1])
		if _, ok := acts.ByID(id); !ok {
			return nil, fmt.Errorf("line %d: %w %q", lineNo+1, domain.ErrUnknownName, id)
		}
		entry := domain.Entry{Start: start, End: end, Activity: id}
		if len(parts) == 3 {
			entry.Comment = strings.TrimSpace(parts[2])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseOnDate(base time.Time, clock string) (time.Time, error) {
	t, err := domain.ParseClock(strings.TrimSpace(clock), base)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
