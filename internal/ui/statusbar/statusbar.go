// Package statusbar renders the one-line bar at the bottom of the viewer.
// The right-hand item is the character code of the caret and is clickable.
package statusbar

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/charcode/internal/ui/styles"
)

// StatusZoneID marks the character code item.
const StatusZoneID = "statusbar-charcode"

// Model is the status bar state.
type Model struct {
	width    int
	fileName string
	line     int
	col      int
	status   string
}

// New returns an empty bar.
func New() Model {
	return Model{line: 1, col: 1}
}

// SetWidth sets the bar width in cells.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// SetFile sets the file name shown on the left.
func (m Model) SetFile(name string) Model {
	m.fileName = name
	return m
}

// SetPosition sets the 1-based line and column.
func (m Model) SetPosition(line, col int) Model {
	m.line = line
	m.col = col
	return m
}

// SetStatus sets the character code text. Empty hides the item.
func (m Model) SetStatus(status string) Model {
	m.status = status
	return m
}

// Status returns the character code text.
func (m Model) Status() string {
	return m.status
}

// StatusClicked reports whether msg is a left click on the status item.
func (m Model) StatusClicked(msg tea.MouseMsg) bool {
	if m.status == "" || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return false
	}
	z := zone.Get(StatusZoneID)
	return z != nil && z.InBounds(msg)
}

// View renders the bar at exactly width cells. The left side is truncated
// first; the status item only when it alone does not fit.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	left := fmt.Sprintf(" %s  Ln %d, Col %d", m.fileName, m.line, m.col)
	if m.fileName == "" {
		left = fmt.Sprintf(" Ln %d, Col %d", m.line, m.col)
	}

	right := ""
	if m.status != "" {
		right = styles.StatusCodeStyle.Render(m.status)
		if ansi.StringWidth(right) > m.width {
			right = ansi.Truncate(right, m.width, "…")
		}
	}
	rightWidth := ansi.StringWidth(right)

	leftRoom := m.width - rightWidth
	if ansi.StringWidth(left) > leftRoom {
		left = ansi.Truncate(left, max(leftRoom, 0), "…")
	}
	gap := max(leftRoom-ansi.StringWidth(left), 0)

	bar := styles.StatusBarStyle.Render(left + strings.Repeat(" ", gap))
	if right != "" {
		bar += zone.Mark(StatusZoneID, right)
	}
	return bar
}
