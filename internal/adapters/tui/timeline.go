package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tally/internal/domain"
	"tally/internal/render"
)

// TimelineKeyMap defines key bindings for the timeline browser
type TimelineKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Copy key.Binding
	Quit key.Binding
}

var TimelineKeys = TimelineKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy file path"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	statusOKStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// TimelineModel is an interactive browser over one day's entries.
type TimelineModel struct {
	ledger   *domain.Ledger
	path     string
	renderer *render.Renderer
	now      time.Time
	cursor   int
	status   string
}

// NewTimelineModel creates the browser for a loaded ledger.
func NewTimelineModel(ledger *domain.Ledger, path string, renderer *render.Renderer, now time.Time) *TimelineModel {
	return &TimelineModel{ledger: ledger, path: path, renderer: renderer, now: now}
}

// Init initializes the timeline browser
func (m *TimelineModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the timeline browser
func (m *TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, TimelineKeys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, TimelineKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, TimelineKeys.Down):
		if m.cursor < len(m.ledger.Entries)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, TimelineKeys.Copy):
		if err := clipboard.WriteAll(m.path); err != nil {
			m.status = fmt.Sprintf("copy failed: %v", err)
		} else {
			m.status = statusOKStyle.Render("path copied")
		}
	}
	return m, nil
}

// View renders the timeline browser
func (m *TimelineModel) View() string {
	s := headerStyle.Render(fmt.Sprintf("tally — %s", m.ledger.Date)) + "\n\n"
	s += m.renderer.ChartHeader(0) + "\n"
	s += m.renderer.DayChart(m.ledger) + "\n\n"

	if len(m.ledger.Entries) == 0 {
		s += footerStyle.Render("no entries") + "\n"
	}
	for i, e := range m.ledger.Entries {
		line := m.renderer.Entry(e)
		if i == m.cursor {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		s += line + "\n"
	}

	gap := m.ledger.Gap(m.now, m.renderer.Quantum)
	if !gap.IsZero() {
		s += fmt.Sprintf("\nopen gap: %s-%s\n",
			domain.FormatClock(gap.Start), domain.FormatClock(gap.End))
	}

	s += "\n" + footerStyle.Render("↑/↓ move · c copy path · q quit")
	if m.status != "" {
		s += "\n" + m.status
	}
	return s
}

// Run starts the browser and blocks until the user quits.
func Run(ledger *domain.Ledger, path string, renderer *render.Renderer, now time.Time) error {
	_, err := tea.NewProgram(NewTimelineModel(ledger, path, renderer, now)).Run()
	return err
}
