package commands

import (
	"fmt"

	"tally/internal/application"
)

// maxSplits caps an n-way split at one interval per hour of the day.
const maxSplits = 24

// SplitCommand divides the open gap into N contiguous sub-intervals, each
// prompted and saved one at a time.
type SplitCommand struct {
	Env application.Env
	N   int
}

func NewSplitCommand(env application.Env, n int) *SplitCommand {
	return &SplitCommand{Env: env, N: n}
}

func (c *SplitCommand) Validate() error {
	if c.N < 1 {
		return fmt.Errorf("split count must be at least 1, got %d", c.N)
	}
	if c.N > maxSplits {
		return fmt.Errorf("split count must be at most %d, got %d", maxSplits, c.N)
	}
	return nil
}

func (c *SplitCommand) Execute() (*application.FillResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.Env.Reconciler().Split(c.N)
}

// FillCommand resolves the whole gap with one activity (the default,
// no-argument run).
type FillCommand struct {
	Env application.Env
}

func NewFillCommand(env application.Env) *FillCommand {
	return &FillCommand{Env: env}
}

func (c *FillCommand) Execute() (*application.FillResult, error) {
	return c.Env.Reconciler().FillGap()
}

// UntilCommand backfills the gap up to a chosen boundary strictly before
// now, leaving the remainder open for a later run.
type UntilCommand struct {
	Env application.Env
}

func NewUntilCommand(env application.Env) *UntilCommand {
	return &UntilCommand{Env: env}
}

func (c *UntilCommand) Execute() (*application.FillResult, error) {
	return c.Env.Reconciler().Until()
}

// SpanCommand records one explicitly bounded activity for today.
type SpanCommand struct {
	Env application.Env
}

func NewSpanCommand(env application.Env) *SpanCommand {
	return &SpanCommand{Env: env}
}

func (c *SpanCommand) Execute() (*application.FillResult, error) {
	return c.Env.Reconciler().RecordSpan()
}
