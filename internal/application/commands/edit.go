package commands

import (
	"fmt"
	"os"

	"tally/internal/application"
	"tally/internal/domain"
	"tally/internal/ports"
)

// EditCommand round-trips one day's ledger through the user's text editor:
// render to a temp file, open the editor, parse and re-validate the result,
// then save. Validation failures abort without writing.
type EditCommand struct {
	Env    application.Env
	Editor ports.EditorOpener
	Date   domain.Date
}

func NewEditCommand(env application.Env, editor ports.EditorOpener, date domain.Date) *EditCommand {
	return &EditCommand{Env: env, Editor: editor, Date: date}
}

func (c *EditCommand) Execute() (*domain.Ledger, error) {
	entries, err := c.Env.Store.Load(c.Date)
	if err != nil {
		return nil, err
	}
	ledger, err := domain.NewLedger(c.Date, entries)
	if err != nil {
		return nil, fmt.Errorf("stored day %s: %w", c.Date, err)
	}

	tmp, err := os.CreateTemp("", "tally-edit-*.txt")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(application.MarshalDay(ledger, c.Env.Acts)); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err := c.Editor.OpenFile(tmp.Name()); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", tmp.Name(), err)
	}
	parsed, err := application.ParseDay(c.Date, string(edited), c.Env.Acts)
	if err != nil {
		return nil, err
	}
	result, err := domain.NewLedger(c.Date, parsed)
	if err != nil {
		return nil, err
	}
	if err := c.Env.Store.Save(c.Date, result.Entries); err != nil {
		return nil, err
	}
	return result, nil
}
