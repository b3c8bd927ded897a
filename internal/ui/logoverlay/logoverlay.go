// Package logoverlay shows recent log entries without leaving the viewer.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/charcode/internal/keys"
	"github.com/zjrosen/charcode/internal/log"
	"github.com/zjrosen/charcode/internal/ui/overlay"
	"github.com/zjrosen/charcode/internal/ui/styles"
)

const (
	viewportMaxHeight = 20
	viewportMinHeight = 3
	boxMaxWidth       = 140
	boxMinWidth       = 30
	// header, footer and border lines around the viewport
	chromeHeight = 6
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

var levelTags = []struct {
	tag   string
	level log.Level
}{
	{"[ERROR]", log.LevelError},
	{"[WARN]", log.LevelWarn},
	{"[INFO]", log.LevelInfo},
	{"[DEBUG]", log.LevelDebug},
}

// Model is the log overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool { return m.visible }

// MinLevel returns the active filter.
func (m Model) MinLevel() log.Level { return m.minLevel }

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
	return m
}

// SetSize records the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.refresh()
	return m
}

// Refresh reloads entries, e.g. after a new log line was published.
func (m Model) Refresh() Model {
	if m.visible {
		atBottom := m.viewport.AtBottom()
		m.refresh()
		if atBottom {
			m.viewport.GotoBottom()
		}
	}
	return m
}

// Update handles keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.LogOverlay.Close):
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	case key.Matches(keyMsg, keys.LogOverlay.Clear):
		log.ClearBuffer()
		m.refresh()
	case key.Matches(keyMsg, keys.LogOverlay.FilterDebug):
		m = m.filter(log.LevelDebug)
	case key.Matches(keyMsg, keys.LogOverlay.FilterInfo):
		m = m.filter(log.LevelInfo)
	case key.Matches(keyMsg, keys.LogOverlay.FilterWarn):
		m = m.filter(log.LevelWarn)
	case key.Matches(keyMsg, keys.LogOverlay.FilterError):
		m = m.filter(log.LevelError)
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) filter(level log.Level) Model {
	m.minLevel = level
	m.refresh()
	return m
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	height := max(min(viewportMaxHeight, m.height-chromeHeight), viewportMinHeight)
	contentWidth := m.boxWidth() - 2

	m.viewport = viewport.New(contentWidth, height)
	m.viewport.SetContent(m.content(contentWidth))
	m.viewport.GotoBottom()
}

func (m Model) content(width int) string {
	var lines []string
	for _, entry := range log.GetRecentLogs(log.DefaultBufferSize) {
		if entryLevel(entry) >= m.minLevel {
			lines = append(lines, colorize(entry, width))
		}
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}
	return strings.Join(lines, "\n")
}

// entryLevel reads the level tag; untagged entries count as errors so they
// are never filtered out.
func entryLevel(entry string) log.Level {
	for _, lt := range levelTags {
		if strings.Contains(entry, lt.tag) {
			return lt.level
		}
	}
	return log.LevelError
}

func colorize(entry string, width int) string {
	entry = strings.TrimSuffix(entry, "\n")
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width, "…")
	}

	color := styles.TextPrimaryColor
	switch entryLevel(entry) {
	case log.LevelError:
		color = styles.StatusErrorColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	case log.LevelInfo:
		color = styles.ToastBorderInfoColor
	case log.LevelDebug:
		color = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}

// View renders the box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render("Logs")

	body := strings.Join([]string{title, divider, m.viewport.View(), divider, m.filterHint()}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(body)
}

// Overlay draws the box centered over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
