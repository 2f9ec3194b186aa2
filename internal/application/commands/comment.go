package commands

import (
	"tally/internal/application"
	"tally/internal/domain"
)

// CommentCommand appends a prompted comment to today's last entry.
type CommentCommand struct {
	Env application.Env
}

func NewCommentCommand(env application.Env) *CommentCommand {
	return &CommentCommand{Env: env}
}

func (c *CommentCommand) Execute() (domain.Entry, error) {
	return c.Env.Reconciler().AddComment()
}

// ClearCommand removes one day's ledger file. Clearing is the only way a
// ledger is ever deleted.
type ClearCommand struct {
	Env  application.Env
	Date domain.Date
}

func NewClearCommand(env application.Env, date domain.Date) *ClearCommand {
	return &ClearCommand{Env: env, Date: date}
}

func (c *ClearCommand) Execute() error {
	return c.Env.Store.Clear(c.Date)
}
