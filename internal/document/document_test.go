package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{""}},
		{name: "single newline", in: "\n", want: []string{""}},
		{name: "trailing newline", in: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", in: "a\r\nb", want: []string{"a", "b"}},
		{name: "blank line kept", in: "a\n\nb", want: []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SplitLines(tt.in))
		})
	}
}

func TestCaretText_CombiningSequenceIsOneStep(t *testing.T) {
	doc := FromString("t", "\u30DB\u309A x")

	require.Equal(t, []uint16{0x30DB, 0x309A}, doc.CaretText().Units())

	doc.MoveRight()
	require.Equal(t, Position{Line: 0, Col: 1}, doc.Caret())
	require.Equal(t, []uint16{0x20, 0x78}, doc.CaretText().Units())
}

func TestCaretText_SurrogatePairIsOneStep(t *testing.T) {
	doc := FromString("t", "\U00029E3D!")

	require.Equal(t, []uint16{0xD867, 0xDE3D}, doc.CaretText().Units())
	require.Equal(t, "\U00029E3D", doc.CaretGrapheme())

	doc.MoveRight()
	require.Equal(t, []uint16{0x21}, doc.CaretText().Units())
}

func TestCaretText_StaysWithinLine(t *testing.T) {
	doc := FromString("t", "a\nb")

	require.Equal(t, []uint16{0x61}, doc.CaretText().Units())

	doc.LineEnd()
	require.True(t, doc.CaretText().IsEmpty())
	require.Equal(t, "", doc.CaretGrapheme())
}

func TestCaretText_EmptyDocument(t *testing.T) {
	doc := New("empty", nil)
	require.Equal(t, 1, doc.LineCount())
	require.True(t, doc.CaretText().IsEmpty())
}

func TestHorizontalMotionWraps(t *testing.T) {
	doc := FromString("t", "ab\ncd")

	doc.LineEnd()
	doc.MoveRight()
	require.Equal(t, Position{Line: 1, Col: 0}, doc.Caret())

	doc.MoveLeft()
	require.Equal(t, Position{Line: 0, Col: 2}, doc.Caret())

	doc.DocumentStart()
	doc.MoveLeft()
	require.Equal(t, Position{}, doc.Caret())

	doc.DocumentEnd()
	doc.LineEnd()
	doc.MoveRight()
	require.Equal(t, Position{Line: 1, Col: 2}, doc.Caret())
}

func TestVerticalMotionKeepsDisplayColumn(t *testing.T) {
	doc := FromString("t", "日本語\nabcdef")

	doc.SetCaret(Position{Line: 0, Col: 2})
	require.Equal(t, 4, doc.DisplayColumn())

	doc.MoveDown(1)
	require.Equal(t, Position{Line: 1, Col: 4}, doc.Caret())

	doc.SetCaret(Position{Line: 1, Col: 3})
	doc.MoveUp(1)
	require.Equal(t, Position{Line: 0, Col: 1}, doc.Caret())
}

func TestVerticalMotionRemembersColumnAcrossShortLine(t *testing.T) {
	doc := FromString("t", "abcdef\nab\nabcdef")
	doc.SetCaret(Position{Line: 0, Col: 5})

	doc.MoveDown(1)
	require.Equal(t, Position{Line: 1, Col: 2}, doc.Caret())

	doc.MoveDown(1)
	require.Equal(t, Position{Line: 2, Col: 5}, doc.Caret())

	doc.MoveDown(10)
	require.Equal(t, Position{Line: 2, Col: 5}, doc.Caret())

	doc.MoveUp(10)
	require.Equal(t, Position{Line: 0, Col: 5}, doc.Caret())
}

func TestSetCaretClamps(t *testing.T) {
	doc := FromString("t", "abc\nd")

	doc.SetCaret(Position{Line: 9, Col: 9})
	require.Equal(t, Position{Line: 1, Col: 1}, doc.Caret())

	doc.SetCaret(Position{Line: -1, Col: -1})
	require.Equal(t, Position{}, doc.Caret())
}

func TestReloadKeepsCaretClamped(t *testing.T) {
	doc := FromString("t", "abcdef\nxyz")
	doc.SetCaret(Position{Line: 1, Col: 2})

	doc.Reload([]string{"abcdef", "xyz!"})
	require.Equal(t, Position{Line: 1, Col: 2}, doc.Caret())

	doc.Reload([]string{"ab"})
	require.Equal(t, Position{Line: 0, Col: 2}, doc.Caret())

	doc.Reload(nil)
	require.Equal(t, Position{}, doc.Caret())
	require.Equal(t, 1, doc.LineCount())
}

func TestDisplayColumnWithTab(t *testing.T) {
	doc := FromString("t", "\tx")
	doc.MoveRight()
	require.Equal(t, TabWidth, doc.DisplayColumn())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		data  []byte
		enc   InputEncoding
		units []uint16
	}{
		{name: "utf8", data: []byte("\u30DD\n"), enc: InputUTF8, units: []uint16{0x30DD}},
		{name: "sjis", data: []byte{0x83, 0x7C, '\n'}, enc: InputSJIS, units: []uint16{0x30DD}},
		{name: "eucjp", data: []byte{0xA5, 0xDD, '\n'}, enc: InputEUCJP, units: []uint16{0x30DD}},
		{name: "invalid utf8", data: []byte{0xFF, 'a'}, enc: InputUTF8, units: []uint16{0xFFFD, 0x61}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".txt")
			require.NoError(t, os.WriteFile(path, tt.data, 0o600))

			doc, err := Load(path, tt.enc)
			require.NoError(t, err)
			require.Equal(t, tt.name+".txt", doc.Name())
			require.Equal(t, 1, doc.LineCount())
			require.Equal(t, tt.units, doc.CaretText().Units())
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), InputUTF8)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseInputEncoding(t *testing.T) {
	for in, want := range map[string]InputEncoding{
		"":          InputUTF8,
		"UTF-8":     InputUTF8,
		"sjis":      InputSJIS,
		"Shift_JIS": InputSJIS,
		" euc-jp ":  InputEUCJP,
	} {
		got, err := ParseInputEncoding(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseInputEncoding("latin1")
	require.ErrorIs(t, err, ErrInvalidInputEncoding)
}

func TestGraphemeHelpers(t *testing.T) {
	s := "a\u0301b\U0001F600"
	require.Equal(t, 3, GraphemeCount(s))
	require.Equal(t, []string{"a\u0301", "b", "\U0001F600"}, Graphemes(s))
	require.Equal(t, 3, GraphemeToByteOffset(s, 1))
	require.Equal(t, len(s), GraphemeToByteOffset(s, 10))
	require.Equal(t, 4, StringDisplayWidth(s))
}
