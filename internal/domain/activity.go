package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Activity is one configured label a time entry can carry. The set of
// activities is loaded once from configuration and never changes during a
// process.
type Activity struct {
	ID         string
	Name       string
	Shortcut   rune
	Productive bool
}

// Activities is the ordered, immutable activity set.
type Activities []Activity

// ByID returns the activity with the given ID.
func (as Activities) ByID(id string) (Activity, bool) {
	for _, a := range as {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// ByShortcut returns the activity bound to the given shortcut rune.
func (as Activities) ByShortcut(r rune) (Activity, bool) {
	for _, a := range as {
		if a.Shortcut != 0 && a.Shortcut == unicode.ToLower(r) {
			return a, true
		}
	}
	return Activity{}, false
}

// AssignShortcuts fills in missing IDs and shortcuts. The ID defaults to the
// lowercased name with spaces collapsed to dashes. The shortcut is the first
// rune of the name not already claimed by an earlier activity, which keeps
// shortcut assignment stable under reordering-free config edits.
func AssignShortcuts(as Activities) (Activities, error) {
	taken := map[rune]bool{}
	seen := map[string]bool{}
	out := make(Activities, 0, len(as))
	for _, a := range as {
		if a.ID == "" {
			a.ID = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(a.Name)), " ", "-")
		}
		if a.ID == "" {
			return nil, fmt.Errorf("activity with empty name and ID")
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("duplicate activity ID %q", a.ID)
		}
		seen[a.ID] = true

		if a.Shortcut != 0 {
			a.Shortcut = unicode.ToLower(a.Shortcut)
		} else {
			for _, r := range strings.ToLower(a.Name) {
				if unicode.IsLetter(r) && !taken[r] {
					a.Shortcut = r
					break
				}
			}
		}
		if a.Shortcut != 0 {
			if taken[a.Shortcut] {
				return nil, fmt.Errorf("shortcut %q claimed twice (activity %q)", a.Shortcut, a.ID)
			}
			taken[a.Shortcut] = true
		}
		out = append(out, a)
	}
	return out, nil
}
