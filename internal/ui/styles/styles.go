// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1E1E1E", Dark: "#CCCCCC"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"}
	CaretColor         = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#54A0FF"}
	LineNumberColor    = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#555555"}
	StatusBarFgColor   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	StatusBarBgColor   = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#2D3436"}
	StatusCodeColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1E1E1E", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"}

	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#54A0FF"}
	StatusWarningColor      = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor        = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
)

var (
	// SelectionIndicatorStyle renders the ">" prefix of the selected list row.
	SelectionIndicatorStyle lipgloss.Style
	// CaretStyle renders the grapheme under the caret.
	CaretStyle lipgloss.Style
	// LineNumberStyle renders the gutter.
	LineNumberStyle lipgloss.Style
	// StatusBarStyle is the full-width bar background.
	StatusBarStyle lipgloss.Style
	// StatusCodeStyle renders the character code item.
	StatusCodeStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	CaretStyle = lipgloss.NewStyle().Reverse(true).Foreground(CaretColor)
	LineNumberStyle = lipgloss.NewStyle().Foreground(LineNumberColor)
	StatusBarStyle = lipgloss.NewStyle().Foreground(StatusBarFgColor).Background(StatusBarBgColor)
	StatusCodeStyle = StatusBarStyle.Bold(true).Foreground(StatusCodeColor).Padding(0, 1)
}
