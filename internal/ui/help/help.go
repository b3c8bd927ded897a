// Package help renders the keybinding overlay.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/charcode/internal/charcode"
	"github.com/zjrosen/charcode/internal/keys"
	"github.com/zjrosen/charcode/internal/ui/markdown"
	"github.com/zjrosen/charcode/internal/ui/overlay"
	"github.com/zjrosen/charcode/internal/ui/styles"
)

const boxWidth = 64

// Model is the help overlay.
type Model struct {
	keys          keys.KeyMap
	markdownStyle string
	width         int
	height        int
}

// New creates a help overlay for km.
func New(km keys.KeyMap, markdownStyle string) Model {
	return Model{keys: km, markdownStyle: markdownStyle}
}

// SetSize sets the viewport used to center the overlay.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Markdown returns the help text as markdown.
func (m Model) Markdown() string {
	var b strings.Builder
	b.WriteString("# charcode\n\n")
	b.WriteString("The status bar shows the character under the caret in the selected encoding.\n\n")

	titles := m.keys.FullHelpTitles()
	for i, group := range m.keys.FullHelp() {
		fmt.Fprintf(&b, "## %s\n\n| Key | Action |\n|---|---|\n", titles[i])
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Encodings\n\n")
	for _, enc := range charcode.Encodings() {
		fmt.Fprintf(&b, "- **%s**: %s\n", enc, enc.Description())
	}
	return b.String()
}

// View renders the box. Rendering falls back to raw markdown when glamour
// cannot be initialised.
func (m Model) View() string {
	width := boxWidth
	if m.width > 0 {
		width = min(boxWidth, max(m.width-4, 20))
	}

	content := m.Markdown()
	if r, err := markdown.New(width-2, m.markdownStyle); err == nil {
		if rendered, err := r.Render(content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(content)
}

// Overlay renders the help box centered over background.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), background)
}
