package prompt

import (
	"errors"
	"strings"
	"unicode"

	"github.com/charmbracelet/huh"

	"tally/internal/domain"
	"tally/internal/ports"
)

// Huh implements ports.Prompter with charmbracelet/huh forms. Ctrl-C and
// esc abort the form; that surfaces as a Cancelled result, never as an
// error, so a reconciliation loop can stop where it is.
type Huh struct {
	Acts domain.Activities
}

var _ ports.Prompter = (*Huh)(nil)

func New(acts domain.Activities) *Huh {
	return &Huh{Acts: acts}
}

// SelectActivity presents the activity set. Typing filters by name, so the
// single-character shortcut narrows straight to its activity.
func (h *Huh) SelectActivity(title string) (ports.Selection, error) {
	options := make([]huh.Option[string], len(h.Acts))
	for i, a := range h.Acts {
		options[i] = huh.NewOption(shortcutLabel(a), a.ID)
	}

	var picked string
	sel := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&picked)

	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ports.Selection{Cancelled: true}, nil
		}
		return ports.Selection{}, err
	}
	act, _ := h.Acts.ByID(picked)
	return ports.Selection{Activity: act}, nil
}

// shortcutLabel brackets the shortcut rune inside the name, e.g. "[W]ork".
func shortcutLabel(a domain.Activity) string {
	if a.Shortcut == 0 {
		return a.Name
	}
	for i, r := range a.Name {
		if unicode.ToLower(r) == a.Shortcut {
			return a.Name[:i] + "[" + string(r) + "]" + a.Name[i+len(string(r)):]
		}
	}
	return "[" + string(a.Shortcut) + "] " + a.Name
}

func (h *Huh) InputTime(title, placeholder string) (ports.TextInput, error) {
	return h.input(title, placeholder)
}

func (h *Huh) InputText(title string) (ports.TextInput, error) {
	return h.input(title, "")
}

func (h *Huh) input(title, placeholder string) (ports.TextInput, error) {
	var text string
	in := huh.NewInput().Title(title).Value(&text)
	if placeholder != "" {
		in = in.Placeholder(placeholder)
	}
	if err := huh.NewForm(huh.NewGroup(in)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ports.TextInput{Cancelled: true}, nil
		}
		return ports.TextInput{}, err
	}
	return ports.TextInput{Text: strings.TrimSpace(text)}, nil
}

// Confirm asks a yes/no question; aborting counts as no.
func (h *Huh) Confirm(title string) (bool, error) {
	var yes bool
	c := huh.NewConfirm().Title(title).Value(&yes)
	if err := huh.NewForm(huh.NewGroup(c)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return yes, nil
}

// PickLine offers candidate comment lines plus a decline option.
func (h *Huh) PickLine(title string, lines []string) (int, error) {
	options := make([]huh.Option[int], 0, len(lines)+1)
	options = append(options, huh.NewOption("(no comment)", -1))
	for i, line := range lines {
		options = append(options, huh.NewOption(line, i))
	}

	picked := -1
	sel := huh.NewSelect[int]().
		Title(title).
		Options(options...).
		Value(&picked)

	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return -1, nil
		}
		return -1, err
	}
	return picked, nil
}
