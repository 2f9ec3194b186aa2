package gitlog

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"tally/internal/ports"
)

// Feed implements ports.ActivityFeed by collecting `git log --oneline`
// lines from every repository directly under ReposDir. Used only for
// comment suggestions; any failure just means no suggestions.
type Feed struct {
	Git      string
	ReposDir string
}

var _ ports.ActivityFeed = (*Feed)(nil)

func New(git, reposDir string) *Feed {
	if git == "" {
		git = "git"
	}
	return &Feed{Git: git, ReposDir: reposDir}
}

// Events returns commit lines authored within [from, to), prefixed with the
// repository name.
func (f *Feed) Events(from, to time.Time) ([]ports.FeedEvent, error) {
	if f.ReposDir == "" {
		return nil, nil
	}
	dirs, err := os.ReadDir(f.ReposDir)
	if err != nil {
		return nil, fmt.Errorf("read repos dir %s: %w", f.ReposDir, err)
	}

	var events []ports.FeedEvent
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		repo := filepath.Join(f.ReposDir, d.Name())
		cmd := exec.Command(f.Git, "log", "--oneline", "--all",
			"--after", from.Format("2006-01-02 15:04"),
			"--before", to.Format("2006-01-02 15:04"))
		cmd.Dir = repo
		out, err := cmd.Output()
		if err != nil {
			continue // not a git repo, or git failed; skip it
		}
		for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			if line == "" {
				continue
			}
			events = append(events, ports.FeedEvent{
				At:   from,
				Text: d.Name() + ": " + line,
			})
		}
	}
	return events, nil
}
