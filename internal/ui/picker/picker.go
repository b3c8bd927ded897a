// Package picker provides a small option picker shown as an overlay.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/charcode/internal/keys"
	"github.com/zjrosen/charcode/internal/ui/overlay"
	"github.com/zjrosen/charcode/internal/ui/styles"
)

const defaultBoxWidth = 36

// Option is one selectable row.
type Option struct {
	Label       string
	Value       string
	Description string                 // dimmed text after the label
	Color       lipgloss.TerminalColor // optional label color
}

// SelectMsg is sent when an option is chosen with enter or a click.
type SelectMsg struct {
	Option Option
}

// CancelMsg is sent when the picker is dismissed.
type CancelMsg struct{}

// Model holds the picker state.
type Model struct {
	title          string
	options        []Option
	selected       int
	boxWidth       int
	viewportWidth  int
	viewportHeight int
}

// New creates a picker with the first option highlighted.
func New(title string, options []Option) Model {
	return Model{title: title, options: options}
}

// SetSize sets the viewport used to center the overlay.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetBoxWidth sets the width of the box itself.
func (m Model) SetBoxWidth(width int) Model {
	m.boxWidth = width
	return m
}

// SetSelected highlights index; out-of-range values are ignored.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.options) {
		m.selected = index
	}
	return m
}

// SelectedIndex returns the highlighted index.
func (m Model) SelectedIndex() int {
	return m.selected
}

// Selected returns the highlighted option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected]
	}
	return Option{}
}

// Options returns the options.
func (m Model) Options() []Option {
	return m.options
}

// Update handles keys and mouse clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Picker.Down):
			m.selected = (m.selected + 1) % max(len(m.options), 1)
		case key.Matches(msg, keys.Picker.Up):
			m.selected = (m.selected - 1 + len(m.options)) % max(len(m.options), 1)
		case key.Matches(msg, keys.Picker.Select):
			return m, m.selectCmd()
		case key.Matches(msg, keys.Picker.Cancel):
			return m, func() tea.Msg { return CancelMsg{} }
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i := range m.options {
			if z := zone.Get(optionZoneID(i)); z != nil && z.InBounds(msg) {
				m.selected = i
				return m, m.selectCmd()
			}
		}
	}
	return m, nil
}

func (m Model) selectCmd() tea.Cmd {
	if len(m.options) == 0 {
		return nil
	}
	opt := m.Selected()
	return func() tea.Msg { return SelectMsg{Option: opt} }
}

func optionZoneID(i int) string {
	return fmt.Sprintf("picker-option-%d", i)
}

// View renders the box. Options are wrapped in zones, so the caller must
// run the final frame through zone.Scan.
func (m Model) View() string {
	width := m.boxWidth
	if width == 0 {
		width = defaultBoxWidth
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	rows := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		labelStyle := lipgloss.NewStyle()
		if opt.Color != nil {
			labelStyle = labelStyle.Foreground(opt.Color)
		}

		prefix := " "
		if i == m.selected {
			prefix = styles.SelectionIndicatorStyle.Render(">")
			labelStyle = labelStyle.Bold(true)
		}

		row := prefix + labelStyle.Render(opt.Label)
		if opt.Description != "" {
			row += " " + descStyle.Render(opt.Description)
		}
		row = lipgloss.NewStyle().MaxWidth(width).Render(row)
		rows = append(rows, zone.Mark(optionZoneID(i), row))
	}

	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))
	content := titleStyle.Render(m.title) + "\n" + divider + "\n" + strings.Join(rows, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(content)
}

// Overlay renders the picker centered over background.
func (m Model) Overlay(background string) string {
	box := m.View()
	if background == "" {
		return lipgloss.Place(m.viewportWidth, m.viewportHeight, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Center,
	}, box, background)
}

// FindIndexByValue returns the index of the option with value, or 0.
func FindIndexByValue(options []Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}
