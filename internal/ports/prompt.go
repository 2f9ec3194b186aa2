package ports

import (
	"time"

	"tally/internal/domain"
)

// Selection is the outcome of an interactive choice. Cancellation is an
// ordinary value, not an error, so incremental-save loops can stop without
// unwinding.
type Selection struct {
	Activity  domain.Activity
	Cancelled bool
}

// TextInput is the outcome of a free-text prompt.
type TextInput struct {
	Text      string
	Cancelled bool
}

// Prompter defines the interactive input surface consumed by the reconciler.
type Prompter interface {
	// SelectActivity presents the activity set (with shortcuts) under a
	// title such as "What did you do from 20:30 to 22:00?".
	SelectActivity(title string) (Selection, error)

	// InputTime asks for a boundary time; the adapter returns the raw text
	// (e.g. "18:10" or "now"), leaving parsing to the caller so malformed
	// input can re-prompt.
	InputTime(title, placeholder string) (TextInput, error)

	// InputText asks for free text such as a comment.
	InputText(title string) (TextInput, error)

	// PickLine offers candidate comment lines; index -1 means declined.
	PickLine(title string, lines []string) (int, error)

	// Confirm asks a yes/no question; cancellation counts as no.
	Confirm(title string) (bool, error)
}

// FeedEvent is one timestamped line from a side-channel activity source.
type FeedEvent struct {
	At   time.Time
	Text string
}

// ActivityFeed supplies side-channel events (e.g. source-control commits)
// used only for comment suggestions. Optional decoration; a nil feed is
// valid.
type ActivityFeed interface {
	Events(from, to time.Time) ([]FeedEvent, error)
}
