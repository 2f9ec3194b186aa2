package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFilename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalConfig = `
data_dir = "/tmp/tally-test"

[[activities]]
name = "Work"
productive = true

[[activities]]
name = "Break"
`

func TestLoadMinimal(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatal(err)
	}
	// Unset fields fall back to defaults.
	if cfg.QuantumMinutes != 15 || cfg.DayStartHour != 4 || cfg.LookbackDays != 30 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Quantum() != 15*time.Minute {
		t.Errorf("quantum %v", cfg.Quantum())
	}

	acts := cfg.ActivitySet()
	if len(acts) != 2 {
		t.Fatalf("activities %d", len(acts))
	}
	work, ok := acts.ByID("work")
	if !ok || !work.Productive || work.Shortcut != 'w' {
		t.Errorf("work activity %+v", work)
	}
	if _, ok := acts.ByShortcut('b'); !ok {
		t.Error("break got no shortcut")
	}
}

func TestLoadExampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", configFilename)
	if err := WriteExample(path); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.ActivitySet()) != 2 {
		t.Errorf("example activities %d", len(cfg.ActivitySet()))
	}
	// Refuses to clobber.
	if err := WriteExample(path); err == nil {
		t.Error("expected overwrite refusal")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("got %v", err)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"no activities", `data_dir = "/tmp"`},
		{"quantum not dividing 60", `
quantum_minutes = 7
[[activities]]
name = "Work"
`},
		{"zero quantum", `
quantum_minutes = 0
[[activities]]
name = "Work"
`},
		{"day start out of range", `
day_start_hour = 24
[[activities]]
name = "Work"
`},
		{"duplicate shortcut", `
[[activities]]
name = "Work"
shortcut = "x"
[[activities]]
name = "Walk"
shortcut = "x"
`},
		{"not toml", `{"json": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.config)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	cfg, err := Load(writeConfig(t, `
data_dir = "~/track-data"
[[activities]]
name = "Work"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != filepath.Join(home, "track-data") {
		t.Errorf("data_dir %q", cfg.DataDir)
	}
}

func TestToday(t *testing.T) {
	cfg := Default()
	cfg.DayStartHour = 4

	// 01:30 still belongs to the previous tracked day.
	early := time.Date(2026, time.September, 2, 1, 30, 0, 0, time.Local)
	if got := cfg.Today(early); got.Day != 1 {
		t.Errorf("01:30 resolves to day %d, want 1", got.Day)
	}
	morning := time.Date(2026, time.September, 2, 9, 0, 0, 0, time.Local)
	if got := cfg.Today(morning); got.Day != 2 {
		t.Errorf("09:00 resolves to day %d, want 2", got.Day)
	}
}
