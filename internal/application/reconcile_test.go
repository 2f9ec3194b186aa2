package application

import (
	"errors"
	"testing"
	"time"

	"tally/internal/domain"
	"tally/internal/ports"
)

var (
	testDate = domain.Date{Year: 2026, Month: time.September, Day: 1}
	testActs = domain.Activities{
		{ID: "work", Name: "Work", Shortcut: 'w', Productive: true},
		{ID: "break", Name: "Break", Shortcut: 'b'},
	}
	quantum = 15 * time.Minute
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.September, 1, hour, min, 0, 0, time.Local)
}

// memStore is an in-memory DayStore that records every save so incremental
// persistence can be asserted.
type memStore struct {
	days  map[domain.Date][]domain.Entry
	saves []int // entry count at each save
}

func newMemStore() *memStore {
	return &memStore{days: map[domain.Date][]domain.Entry{}}
}

func (m *memStore) Load(date domain.Date) ([]domain.Entry, error) {
	return append([]domain.Entry(nil), m.days[date]...), nil
}

func (m *memStore) Save(date domain.Date, entries []domain.Entry) error {
	m.days[date] = append([]domain.Entry(nil), entries...)
	m.saves = append(m.saves, len(entries))
	return nil
}

func (m *memStore) Exists(date domain.Date) bool { return len(m.days[date]) > 0 }
func (m *memStore) Path(date domain.Date) string { return "/mem/" + date.String() + ".json" }
func (m *memStore) Clear(date domain.Date) error { delete(m.days, date); return nil }

// scriptPrompt replays scripted answers.
type scriptPrompt struct {
	selections []ports.Selection
	times      []ports.TextInput
	texts      []ports.TextInput
	picks      []int
}

func (p *scriptPrompt) SelectActivity(string) (ports.Selection, error) {
	if len(p.selections) == 0 {
		return ports.Selection{Cancelled: true}, nil
	}
	s := p.selections[0]
	p.selections = p.selections[1:]
	return s, nil
}

func (p *scriptPrompt) InputTime(string, string) (ports.TextInput, error) {
	if len(p.times) == 0 {
		return ports.TextInput{Cancelled: true}, nil
	}
	in := p.times[0]
	p.times = p.times[1:]
	return in, nil
}

func (p *scriptPrompt) InputText(string) (ports.TextInput, error) {
	if len(p.texts) == 0 {
		return ports.TextInput{Cancelled: true}, nil
	}
	in := p.texts[0]
	p.texts = p.texts[1:]
	return in, nil
}

func (p *scriptPrompt) PickLine(string, []string) (int, error) {
	if len(p.picks) == 0 {
		return -1, nil
	}
	i := p.picks[0]
	p.picks = p.picks[1:]
	return i, nil
}

func (p *scriptPrompt) Confirm(string) (bool, error) { return true, nil }

type staticFeed struct {
	events []ports.FeedEvent
}

func (f *staticFeed) Events(from, to time.Time) ([]ports.FeedEvent, error) {
	var out []ports.FeedEvent
	for _, ev := range f.events {
		if !ev.At.Before(from) && ev.At.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func selected(id string) ports.Selection {
	a, _ := testActs.ByID(id)
	return ports.Selection{Activity: a}
}

func newReconciler(store *memStore, prompt *scriptPrompt, now time.Time) *Reconciler {
	return &Reconciler{
		Store:   store,
		Prompt:  prompt,
		Acts:    testActs,
		Quantum: quantum,
		Date:    testDate,
		Now:     now,
	}
}

// seedBreak stores the 20:00-20:30 Break entry the gap scenarios start from.
func seedBreak(t *testing.T, store *memStore) {
	t.Helper()
	store.days[testDate] = []domain.Entry{
		{Start: at(20, 0), End: at(20, 30), Activity: "break"},
	}
}

func TestFillGapSingle(t *testing.T) {
	store := newMemStore()
	seedBreak(t, store)
	prompt := &scriptPrompt{selections: []ports.Selection{selected("work")}}

	result, err := newReconciler(store, prompt, at(23, 15)).FillGap()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Added) != 1 {
		t.Fatalf("added %d entries", len(result.Added))
	}
	e := result.Added[0]
	if !e.Start.Equal(at(20, 30)) || !e.End.Equal(at(23, 15)) || e.Activity != "work" {
		t.Errorf("entry %+v", e)
	}
	if !result.Remaining.IsZero() {
		t.Errorf("gap should be closed, remaining %v", result.Remaining)
	}
}

func TestFillGapUpToDate(t *testing.T) {
	store := newMemStore()
	seedBreak(t, store)
	prompt := &scriptPrompt{}

	result, err := newReconciler(store, prompt, at(20, 30)).FillGap()
	if err != nil {
		t.Fatal(err)
	}
	if !result.UpToDate {
		t.Fatal("expected up to date")
	}
	if len(store.saves) != 0 {
		t.Errorf("no save expected, got %d", len(store.saves))
	}
}

// The worked scenario: one Break 20:00-20:30, now 23:15, split at 22:00.
func TestSplitScenario(t *testing.T) {
	store := newMemStore()
	seedBreak(t, store)
	prompt := &scriptPrompt{
		times:      []ports.TextInput{{Text: "22:00"}},
		selections: []ports.Selection{selected("work"), selected("break")},
	}

	r := newReconciler(store, prompt, at(23, 15))
	result, err := r.Split(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Added) != 2 {
		t.Fatalf("added %d entries, want 2", len(result.Added))
	}
	first, second := result.Added[0], result.Added[1]
	if !first.Start.Equal(at(20, 30)) || !first.End.Equal(at(22, 0)) {
		t.Errorf("first interval %v-%v", first.Start, first.End)
	}
	if !second.Start.Equal(at(22, 0)) || !second.End.Equal(at(23, 15)) {
		t.Errorf("second interval %v-%v", second.Start, second.End)
	}

	// Sub-interval durations sum to the gap exactly.
	if first.Duration()+second.Duration() != 2*time.Hour+45*time.Minute {
		t.Errorf("split durations sum to %v", first.Duration()+second.Duration())
	}

	// Incremental persistence: first interval was flushed before the second
	// prompt produced anything.
	if len(store.saves) < 2 || store.saves[0] != 2 || store.saves[len(store.saves)-1] != 3 {
		t.Errorf("saves %v", store.saves)
	}

	// Today's statistics afterwards: Break 0.5h from the original entry plus
	// the split results, 3h15m accounted in total.
	ledger, err := domain.NewLedger(testDate, store.days[testDate])
	if err != nil {
		t.Fatal(err)
	}
	s := domain.Aggregate([]*domain.Ledger{ledger}, nil, testActs)
	if s.Total != 3*time.Hour+15*time.Minute {
		t.Errorf("total accounted %v, want 3h15m", s.Total)
	}
	if s.ByActivity["break"] < 30*time.Minute {
		t.Errorf("break %v", s.ByActivity["break"])
	}
}

func TestSplitCancelKeepsSavedIntervals(t *testing.T) {
	store := newMemStore()
	seedBreak(t, store)
	prompt := &scriptPrompt{
		times:      []ports.TextInput{{Text: "22:00"}},
		selections: []ports.Selection{selected("work")}, // second select cancels
	}

	result, err := newReconciler(store, prompt, at(23, 15)).Split(2)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Cancelled {
		t.Fatal("expected cancelled result")
	}
	if len(result.Added) != 1 {
		t.Fatalf("added %d, want the already-saved first interval", len(result.Added))
	}
	if len(store.days[testDate]) != 2 {
		t.Errorf("stored entries %d, want 2", len(store.days[testDate]))
	}
	if result.Remaining.IsZero() {
		t.Error("remaining gap should stay open")
	}
}

func TestSplitBoundaryValidation(t *testing.T) {
	tests := []struct {
		name     string
		boundary string
	}{
		{"before gap start", "20:15"},
		{"equal to gap start", "20:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			seedBreak(t, store)
			prompt := &scriptPrompt{times: []ports.TextInput{{Text: tt.boundary}}}

			_, err := newReconciler(store, prompt, at(23, 15)).Split(2)
			var boundaryErr *domain.InvalidBoundaryError
			if !errors.As(err, &boundaryErr) {
				t.Fatalf("expected InvalidBoundaryError, got %v", err)
			}
			if len(store.saves) != 0 {
				t.Errorf("nothing should have been saved, saves %v", store.saves)
			}
		})
	}
}

func TestSplitMalformedBoundaryReprompts(t *testing.T) {
	store := newMemStore()
	seedBreak(t, store)
	prompt := &scriptPrompt{
		times:      []ports.TextInput{{Text: "not a time"}, {Text: "22:00"}},
		selections: []ports.Selection{selected("work"), selected("break")},
	}

	result, err := newReconciler(store, prompt, at(23, 15)).Split(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Added) != 2 {
		t.Fatalf("added %d after re-prompt, want 2", len(result.Added))
	}
}

func TestUntilLeavesRemainderOpen(t *testing.T) {
	store := newMemStore()
	seedBreak(t, store)
	prompt := &scriptPrompt{
		times:      []ports.TextInput{{Text: "21:00"}},
		selections: []ports.Selection{selected("work")},
	}

	now := at(23, 15)
	result, err := newReconciler(store, prompt, now).Until()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Added) != 1 {
		t.Fatalf("added %d", len(result.Added))
	}
	if !result.Remaining.Start.Equal(at(21, 0)) || !result.Remaining.End.Equal(now) {
		t.Errorf("remaining %v-%v", result.Remaining.Start, result.Remaining.End)
	}

	// A later run still sees the open gap.
	entries, _ := store.Load(testDate)
	ledger, err := domain.NewLedger(testDate, entries)
	if err != nil {
		t.Fatal(err)
	}
	if gap := ledger.Gap(now, quantum); gap.IsZero() {
		t.Error("gap should remain open after until")
	}
}

func TestUntilRejectsNow(t *testing.T) {
	store := newMemStore()
	seedBreak(t, store)
	prompt := &scriptPrompt{times: []ports.TextInput{{Text: "now"}}}

	_, err := newReconciler(store, prompt, at(23, 15)).Until()
	var boundaryErr *domain.InvalidBoundaryError
	if !errors.As(err, &boundaryErr) {
		t.Fatalf("until must reject a boundary at now, got %v", err)
	}
}

func TestCommentSuggestionFromFeed(t *testing.T) {
	store := newMemStore()
	seedBreak(t, store)
	prompt := &scriptPrompt{
		selections: []ports.Selection{selected("work")},
		picks:      []int{0},
	}

	r := newReconciler(store, prompt, at(23, 15))
	r.Feed = &staticFeed{events: []ports.FeedEvent{
		{At: at(21, 0), Text: "repo: abc123 fix the flux capacitor"},
		{At: at(19, 0), Text: "repo: outside the window"},
	}}

	result, err := r.FillGap()
	if err != nil {
		t.Fatal(err)
	}
	if result.Added[0].Comment != "repo: abc123 fix the flux capacitor" {
		t.Errorf("comment %q", result.Added[0].Comment)
	}

	// The comment was persisted, not just held in memory.
	stored := store.days[testDate]
	if stored[len(stored)-1].Comment == "" {
		t.Error("comment not saved")
	}
}

func TestRecordSpan(t *testing.T) {
	store := newMemStore()
	prompt := &scriptPrompt{
		times:      []ports.TextInput{{Text: "9:00"}, {Text: "10:30"}},
		selections: []ports.Selection{selected("work")},
	}

	result, err := newReconciler(store, prompt, at(12, 0)).RecordSpan()
	if err != nil {
		t.Fatal(err)
	}
	e := result.Added[0]
	if !e.Start.Equal(at(9, 0)) || !e.End.Equal(at(10, 30)) {
		t.Errorf("span %v-%v", e.Start, e.End)
	}
}

func TestRecordSpanRejectsReversedTimes(t *testing.T) {
	store := newMemStore()
	prompt := &scriptPrompt{
		times: []ports.TextInput{{Text: "11:00"}, {Text: "10:00"}},
	}

	_, err := newReconciler(store, prompt, at(12, 0)).RecordSpan()
	var orderErr *domain.OrderError
	if !errors.As(err, &orderErr) {
		t.Fatalf("expected OrderError, got %v", err)
	}
}

func TestAddComment(t *testing.T) {
	store := newMemStore()
	seedBreak(t, store)
	prompt := &scriptPrompt{texts: []ports.TextInput{{Text: "lunch ran long"}}}

	entry, err := newReconciler(store, prompt, at(21, 0)).AddComment()
	if err != nil {
		t.Fatal(err)
	}
	if entry.Comment != "lunch ran long" {
		t.Errorf("comment %q", entry.Comment)
	}
	if store.days[testDate][0].Comment != "lunch ran long" {
		t.Error("comment not persisted")
	}
}

func TestAddCommentEmptyDay(t *testing.T) {
	store := newMemStore()
	prompt := &scriptPrompt{texts: []ports.TextInput{{Text: "x"}}}

	_, err := newReconciler(store, prompt, at(21, 0)).AddComment()
	if !errors.Is(err, ErrNoEntries) {
		t.Fatalf("expected ErrNoEntries, got %v", err)
	}
}
