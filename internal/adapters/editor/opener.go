package editor

import (
	"fmt"
	"os"
	"os/exec"

	"tally/internal/ports"
)

// Opener implements ports.EditorOpener. The configured editor wins; $EDITOR
// and $VISUAL are the fallback, then a list of common editors.
type Opener struct {
	Configured string
}

var _ ports.EditorOpener = (*Opener)(nil)

func NewOpener(configured string) *Opener {
	return &Opener{Configured: configured}
}

// OpenFile opens a file and blocks until the editor exits.
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}
	return nil
}

// Command returns an exec.Cmd wired to the terminal.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set editor in the config or $EDITOR")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (o *Opener) findEditor() string {
	if o.Configured != "" {
		return o.Configured
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}
	return ""
}
