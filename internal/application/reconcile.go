package application

import (
	"fmt"
	"time"

	"tally/internal/domain"
	"tally/internal/ports"
)

// inputAttempts bounds re-prompting on malformed time input so a broken
// stdin cannot loop forever.
const inputAttempts = 3

// Reconciler turns the unrecorded gap between the last entry and now into
// new validated entries. It owns today's ledger exclusively for the duration
// of one command and flushes after every appended entry, so an interrupted
// session loses at most the unsaved sub-interval.
type Reconciler struct {
	Store   ports.DayStore
	Prompt  ports.Prompter
	Feed    ports.ActivityFeed // optional, may be nil
	Acts    domain.Activities
	Quantum time.Duration

	Date domain.Date
	Now  time.Time

	ledger *domain.Ledger
}

// FillResult describes what a reconciliation run did.
type FillResult struct {
	UpToDate  bool
	Cancelled bool
	Added     []domain.Entry
	Remaining domain.Gap
}

// load reads and validates today's ledger. Stored-data validation failures
// abort the command without writing.
func (r *Reconciler) load() error {
	if r.ledger != nil {
		return nil
	}
	entries, err := r.Store.Load(r.Date)
	if err != nil {
		return err
	}
	ledger, err := domain.NewLedger(r.Date, entries)
	if err != nil {
		return fmt.Errorf("stored day %s: %w", r.Date, err)
	}
	r.ledger = ledger
	return nil
}

// Ledger exposes the loaded ledger for rendering after a run.
func (r *Reconciler) Ledger() *domain.Ledger {
	return r.ledger
}

// FillGap resolves the whole open gap with a single prompted activity.
func (r *Reconciler) FillGap() (*FillResult, error) {
	return r.fill(1, false)
}

// Split divides the gap into n contiguous sub-intervals. Interior boundaries
// are prompted one at a time and every saved sub-interval is flushed before
// the next prompt, so partial progress survives interruption.
func (r *Reconciler) Split(n int) (*FillResult, error) {
	return r.fill(n, false)
}

// Until fills only the first stretch of the gap, up to a chosen boundary
// strictly before now, deliberately leaving the remainder open.
func (r *Reconciler) Until() (*FillResult, error) {
	return r.fill(1, true)
}

func (r *Reconciler) fill(n int, until bool) (*FillResult, error) {
	if err := r.load(); err != nil {
		return nil, err
	}
	gap := r.ledger.Gap(r.Now, r.Quantum)
	if gap.IsZero() {
		return &FillResult{UpToDate: true}, nil
	}

	res := &FillResult{}
	prev := gap.Start
	for k := 1; k <= n; k++ {
		end := gap.End
		if k < n || until {
			b, cancelled, err := r.promptBoundary(k, prev, gap)
			if err != nil {
				return nil, err
			}
			if cancelled {
				res.Cancelled = true
				break
			}
			if until && !b.Before(gap.End) {
				return nil, &domain.InvalidBoundaryError{Boundary: b, Previous: prev, GapEnd: gap.End}
			}
			end = b
		}
		entry, saved, err := r.fillSpan(prev, end)
		if err != nil {
			return nil, err
		}
		if !saved {
			res.Cancelled = true
			break
		}
		res.Added = append(res.Added, entry)
		prev = end
	}
	res.Remaining = domain.Gap{Start: prev, End: gap.End}
	return res, nil
}

// promptBoundary asks for one interior boundary. Malformed input re-prompts;
// a boundary outside (prev, gap.End] is a hard InvalidBoundaryError.
func (r *Reconciler) promptBoundary(k int, prev time.Time, gap domain.Gap) (time.Time, bool, error) {
	title := fmt.Sprintf("Boundary %d: time between %s and %s",
		k, domain.FormatClock(prev), domain.FormatClock(gap.End))
	for attempt := 0; attempt < inputAttempts; attempt++ {
		in, err := r.Prompt.InputTime(title, domain.FormatClock(gap.End))
		if err != nil {
			return time.Time{}, false, err
		}
		if in.Cancelled {
			return time.Time{}, true, nil
		}
		b, err := domain.ParseClock(in.Text, r.Now)
		if err != nil {
			title = fmt.Sprintf("%v — try again", err)
			continue
		}
		// A gap can span midnight; a clock time past now refers to
		// yesterday evening.
		if b.After(gap.End) {
			b = b.AddDate(0, 0, -1)
		}
		if !b.After(prev) || b.After(gap.End) {
			return time.Time{}, false, &domain.InvalidBoundaryError{Boundary: b, Previous: prev, GapEnd: gap.End}
		}
		return b, false, nil
	}
	return time.Time{}, false, fmt.Errorf("no valid time entered after %d attempts", inputAttempts)
}

// fillSpan prompts for one activity covering [start, end), appends the entry
// and saves before returning. Reports false when the user cancelled.
func (r *Reconciler) fillSpan(start, end time.Time) (domain.Entry, bool, error) {
	title := fmt.Sprintf("What did you do from %s to %s?",
		domain.FormatClock(start), domain.FormatClock(end))
	sel, err := r.Prompt.SelectActivity(title)
	if err != nil {
		return domain.Entry{}, false, err
	}
	if sel.Cancelled {
		return domain.Entry{}, false, nil
	}

	entry := domain.Entry{Start: start, End: end, Activity: sel.Activity.ID}
	if err := r.ledger.Append(entry); err != nil {
		return domain.Entry{}, false, err
	}
	if err := r.save(); err != nil {
		return domain.Entry{}, false, err
	}
	if err := r.offerComment(start, end); err != nil {
		return domain.Entry{}, false, err
	}
	return r.findSpan(start, end), true, nil
}

// findSpan returns the stored entry covering exactly [start, end).
func (r *Reconciler) findSpan(start, end time.Time) domain.Entry {
	for _, e := range r.ledger.Entries {
		if e.Start.Equal(start) && e.End.Equal(end) {
			return e
		}
	}
	return domain.Entry{}
}

// offerComment suggests feed events inside the saved entry's window as a
// comment. Optional decoration: feed errors are reported as a skipped offer,
// never as a command failure.
func (r *Reconciler) offerComment(start, end time.Time) error {
	if r.Feed == nil {
		return nil
	}
	events, err := r.Feed.Events(start, end)
	if err != nil || len(events) == 0 {
		return nil
	}
	lines := make([]string, len(events))
	for i, ev := range events {
		lines[i] = ev.Text
	}
	idx, err := r.Prompt.PickLine("Include as comment:", lines)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(lines) {
		return nil
	}

	for i := range r.ledger.Entries {
		if r.ledger.Entries[i].Start.Equal(start) && r.ledger.Entries[i].End.Equal(end) {
			r.ledger.Entries[i].Comment = lines[idx]
			break
		}
	}
	return r.save()
}

func (r *Reconciler) save() error {
	if err := r.Store.Save(r.Date, r.ledger.Entries); err != nil {
		return fmt.Errorf("save day %s: %w", r.Date, err)
	}
	return nil
}

// RecordSpan records one explicitly bounded activity (the `activity`
// command), prompting for start and end clock times.
func (r *Reconciler) RecordSpan() (*FillResult, error) {
	if err := r.load(); err != nil {
		return nil, err
	}
	start, cancelled, err := r.promptClock("Start time", r.Now)
	if err != nil || cancelled {
		return &FillResult{Cancelled: cancelled}, err
	}
	end, cancelled, err := r.promptClock("End time", r.Now)
	if err != nil || cancelled {
		return &FillResult{Cancelled: cancelled}, err
	}
	if !start.Before(end) {
		return nil, &domain.OrderError{Entry: domain.Entry{Start: start, End: end}}
	}
	entry, saved, err := r.fillSpan(start, end)
	if err != nil {
		return nil, err
	}
	res := &FillResult{Cancelled: !saved}
	if saved {
		res.Added = append(res.Added, entry)
	}
	return res, nil
}

func (r *Reconciler) promptClock(title string, now time.Time) (time.Time, bool, error) {
	for attempt := 0; attempt < inputAttempts; attempt++ {
		in, err := r.Prompt.InputTime(title, "now")
		if err != nil {
			return time.Time{}, false, err
		}
		if in.Cancelled {
			return time.Time{}, true, nil
		}
		t, err := domain.ParseClock(in.Text, now)
		if err != nil {
			title = fmt.Sprintf("%v — try again", err)
			continue
		}
		return t, false, nil
	}
	return time.Time{}, false, fmt.Errorf("no valid time entered after %d attempts", inputAttempts)
}

// AddComment prompts for a comment and appends it to the last entry.
func (r *Reconciler) AddComment() (domain.Entry, error) {
	if err := r.load(); err != nil {
		return domain.Entry{}, err
	}
	last, ok := r.ledger.LastEntry()
	if !ok {
		return domain.Entry{}, ErrNoEntries
	}
	in, err := r.Prompt.InputText(fmt.Sprintf("Comment for %s (%s-%s)",
		last.Activity, domain.FormatClock(last.Start), domain.FormatClock(last.End)))
	if err != nil {
		return domain.Entry{}, err
	}
	if in.Cancelled || in.Text == "" {
		return last, nil
	}
	r.ledger.Entries[len(r.ledger.Entries)-1].Comment = in.Text
	if err := r.save(); err != nil {
		return domain.Entry{}, err
	}
	last, _ = r.ledger.LastEntry()
	return last, nil
}
