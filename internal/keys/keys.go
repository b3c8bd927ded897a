// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the viewer keybindings.
type KeyMap struct {
	// Caret motion
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	LineStart key.Binding
	LineEnd   key.Binding
	Top       key.Binding
	Bottom    key.Binding

	// Encoding
	PickEncoding key.Binding
	NextEncoding key.Binding

	// General
	Reload       key.Binding
	ToggleStatus key.Binding
	Help         key.Binding
	Logs         key.Binding
	Escape       key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "line down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous character"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next character"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0/home", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("$", "end"),
			key.WithHelp("$/end", "line end"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first line"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last line"),
		),

		PickEncoding: key.NewBinding(
			key.WithKeys("e", "ctrl+e"),
			key.WithHelp("e", "select encoding"),
		),
		NextEncoding: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next encoding"),
		),

		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload file"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "toggle status bar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "toggle logs"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickEncoding, k.NextEncoding, k.Help, k.Quit}
}

// FullHelp returns keybindings grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.LineStart, k.LineEnd, k.Top, k.Bottom},
		{k.PickEncoding, k.NextEncoding},
		{k.Reload, k.ToggleStatus, k.Logs, k.Help, k.Escape, k.Quit},
	}
}

// FullHelpTitles names the FullHelp groups.
func (k KeyMap) FullHelpTitles() []string {
	return []string{"Caret", "Encoding", "General"}
}

// PickerKeyMap defines keys inside the encoding picker.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

// Picker holds the picker keybindings.
var Picker = PickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up", "shift+tab"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down", "tab"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "cancel"),
	),
}

// LogOverlayKeyMap defines keys inside the log overlay.
type LogOverlayKeyMap struct {
	Close       key.Binding
	Clear       key.Binding
	FilterDebug key.Binding
	FilterInfo  key.Binding
	FilterWarn  key.Binding
	FilterError key.Binding
}

// LogOverlay holds the log overlay keybindings.
var LogOverlay = LogOverlayKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "ctrl+x", "q"),
		key.WithHelp("esc", "close"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear"),
	),
	FilterDebug: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "debug+")),
	FilterInfo:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info+")),
	FilterWarn:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warn+")),
	FilterError: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
}
