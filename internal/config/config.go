package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"tally/internal/domain"
)

const configFilename = "tally.toml"

// Config is the process-wide configuration, read once at startup and
// immutable afterwards.
type Config struct {
	DataDir               string           `toml:"data_dir"`
	Editor                string           `toml:"editor"`
	Git                   string           `toml:"git"`
	GitReposDir           string           `toml:"git_repos_dir"`
	QuantumMinutes        int              `toml:"quantum_minutes"`
	LookbackDays          int              `toml:"lookback_days"`
	DayStartHour          int              `toml:"day_start_hour"`
	ProductiveTargetHours float64          `toml:"productive_target_hours"`
	Activities            []ActivityConfig `toml:"activities"`

	activities domain.Activities
}

// ActivityConfig is one [[activities]] block.
type ActivityConfig struct {
	ID         string `toml:"id,omitempty"`
	Name       string `toml:"name"`
	Shortcut   string `toml:"shortcut,omitempty"`
	Productive bool   `toml:"productive"`
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "tally", configFilename), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir:               filepath.Join(home, ".local", "share", "tally"),
		Git:                   "git",
		QuantumMinutes:        15,
		LookbackDays:          30,
		DayStartHour:          4,
		ProductiveTargetHours: 8,
	}
}

// Load reads and validates the TOML config at path. A missing file is
// reported with ErrMissing so the CLI can offer to write an example.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config %s: %w", path, ErrMissing)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.finish(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ErrMissing marks an absent config file.
var ErrMissing = errMissing{}

type errMissing struct{}

func (errMissing) Error() string { return "config file not found" }

func (c *Config) finish() error {
	if len(c.Activities) == 0 {
		return fmt.Errorf("no activities configured")
	}
	if c.QuantumMinutes <= 0 || 60%c.QuantumMinutes != 0 {
		return fmt.Errorf("quantum_minutes must divide 60, got %d", c.QuantumMinutes)
	}
	if c.DayStartHour < 0 || c.DayStartHour > 23 {
		return fmt.Errorf("day_start_hour out of range: %d", c.DayStartHour)
	}
	if c.LookbackDays < 1 {
		c.LookbackDays = 1
	}
	c.DataDir = expandHome(c.DataDir)
	c.GitReposDir = expandHome(c.GitReposDir)

	raw := make(domain.Activities, 0, len(c.Activities))
	for _, a := range c.Activities {
		var shortcut rune
		if a.Shortcut != "" {
			shortcut = []rune(a.Shortcut)[0]
		}
		raw = append(raw, domain.Activity{
			ID:         a.ID,
			Name:       a.Name,
			Shortcut:   shortcut,
			Productive: a.Productive,
		})
	}
	acts, err := domain.AssignShortcuts(raw)
	if err != nil {
		return err
	}
	c.activities = acts
	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// ActivitySet returns the resolved, ordered activity set.
func (c *Config) ActivitySet() domain.Activities {
	return c.activities
}

// Quantum returns the configured time granularity.
func (c *Config) Quantum() time.Duration {
	return time.Duration(c.QuantumMinutes) * time.Minute
}

// Today resolves the current logical date, honoring day_start_hour.
func (c *Config) Today(now time.Time) domain.Date {
	return domain.LogicalToday(now, c.DayStartHour)
}

// WriteExample writes a commented starter config to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(exampleConfig), 0o644)
}

const exampleConfig = `# tally configuration

# Where the per-day JSON ledgers live.
data_dir = "~/.local/share/tally"

# Used by the 'edit' command; $EDITOR wins when set.
editor = ""

# Side-channel comment suggestions scan git repos under this directory.
git = "git"
git_repos_dir = ""

# Granularity of slot suggestions and hour rounding, in minutes.
quantum_minutes = 15

# How far back 'lastday' searches for a ledger.
lookback_days = 30

# The tracked day rolls over at this hour, not at midnight.
day_start_hour = 4

productive_target_hours = 8.0

[[activities]]
name = "Work"
productive = true

[[activities]]
name = "Break"
productive = false
`
