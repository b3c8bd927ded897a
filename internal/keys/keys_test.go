package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{name: "PickEncoding", binding: km.PickEncoding, expected: []string{"e", "ctrl+e"}},
		{name: "NextEncoding", binding: km.NextEncoding, expected: []string{"tab"}},
		{name: "Logs", binding: km.Logs, expected: []string{"ctrl+x"}},
		{name: "Quit", binding: km.Quit, expected: []string{"q", "ctrl+c"}},
		{name: "Top", binding: km.Top, expected: []string{"g"}},
		{name: "Bottom", binding: km.Bottom, expected: []string{"G"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestFullHelp_EveryBindingHasHelp(t *testing.T) {
	km := DefaultKeyMap()
	groups := km.FullHelp()
	require.Len(t, km.FullHelpTitles(), len(groups))

	for _, group := range groups {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
			require.NotEmpty(t, b.Help().Desc)
		}
	}
}

func TestNoConflictingViewerKeys(t *testing.T) {
	seen := map[string]string{}
	for _, group := range DefaultKeyMap().FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				require.False(t, dup, "key %q bound to both %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestPickerKeys(t *testing.T) {
	require.Equal(t, []string{"enter"}, Picker.Select.Keys())
	require.Contains(t, Picker.Cancel.Keys(), "esc")
	require.Contains(t, Picker.Down.Keys(), "tab")
}

func TestLogOverlayKeys(t *testing.T) {
	require.Contains(t, LogOverlay.Close.Keys(), "ctrl+x")
	require.Equal(t, []string{"c"}, LogOverlay.Clear.Keys())
}
