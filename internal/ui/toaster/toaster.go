// Package toaster shows short-lived notifications over the viewer.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/charcode/internal/ui/overlay"
	"github.com/zjrosen/charcode/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// maxMessageWidth wraps long messages such as file errors.
const maxMessageWidth = 40

// Style selects the border color and icon.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

func (s Style) icon() string {
	switch s {
	case StyleError:
		return "✗"
	case StyleInfo:
		return "i"
	case StyleWarn:
		return "!"
	default:
		return "✓"
	}
}

func (s Style) color() lipgloss.AdaptiveColor {
	switch s {
	case StyleError:
		return styles.ToastBorderErrorColor
	case StyleInfo:
		return styles.ToastBorderInfoColor
	case StyleWarn:
		return styles.StatusWarningColor
	default:
		return styles.ToastBorderSuccessColor
	}
}

// DismissMsg hides the toast with the matching id. Ticks for toasts that
// were already replaced are ignored.
type DismissMsg struct {
	ID int
}

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	id      int
	width   int
	height  int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that dismisses it after
// DefaultDuration.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.id++
	m.message = message
	m.style = style
	m.visible = true
	return m, ScheduleDismiss(m.id, DefaultDuration)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.ID == m.id {
		return m.Hide()
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current message.
func (m Model) Message() string {
	return m.message
}

// SetSize sets the viewport used for placement.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	width := maxMessageWidth
	if m.width > 0 {
		width = min(width, max(m.width-8, 10))
	}
	body := wordwrap.String(m.style.icon()+" "+m.message, width)

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.style.color()).
		Render(body)
}

// Overlay draws the toast in the bottom-right corner, above the status bar.
func (m Model) Overlay(bg string) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.BottomRight,
		PadX:     1,
		PadY:     1,
	}, m.View(), bg)
}

// ScheduleDismiss returns a command that sends DismissMsg{ID: id} after d.
func ScheduleDismiss(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{ID: id}
	})
}
