package markdown

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToDark(t *testing.T) {
	r, err := New(80, "")
	require.NoError(t, err)
	require.Equal(t, 80, r.Width())
	require.Equal(t, "dark", r.Style())
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New(80, "/definitely/not/a/style.json")
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	for _, style := range []string{"dark", "light", "notty"} {
		t.Run(style, func(t *testing.T) {
			r, err := New(60, style)
			require.NoError(t, err)

			out, err := r.Render("# Encodings\n\n| Name | Output |\n|---|---|\n| SJIS | Shift_JIS bytes |\n")
			require.NoError(t, err)

			plain := ansi.Strip(out)
			require.Contains(t, plain, "Encodings")
			require.Contains(t, plain, "SJIS")
			require.Contains(t, plain, "Shift_JIS bytes")
		})
	}
}
