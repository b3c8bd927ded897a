package charcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextConverter_Convert(t *testing.T) {
	conv := NewTextConverter()

	tests := []struct {
		name   string
		text   CaretText
		target Encoding
		want   []byte
	}{
		{"unicode ascii", CaretTextFromString("A"), Unicode, []byte{0x00, 0x41}},
		{"unicode kana", CaretTextFromString("ホ"), Unicode, []byte{0x30, 0xDB}},
		{"unicode pair", CaretTextFromString("𩸽"), Unicode, []byte{0xD8, 0x67, 0xDE, 0x3D}},
		{"unicode lone low surrogate", CaretTextFromUnits(0xDE3D), Unicode, []byte{0xDE, 0x3D}},
		{"utf8 kana", CaretTextFromString("ホ"), UTF8, []byte{0xE3, 0x83, 0x9B}},
		{"utf8 pair", CaretTextFromString("𩸽"), UTF8, []byte{0xF0, 0xA9, 0xB8, 0xBD}},
		{"utf8 lone surrogate", CaretTextFromUnits(0xD867), UTF8, []byte{0xEF, 0xBF, 0xBD}},
		{"utf8 bom kept", CaretTextFromUnits(0xFEFF), UTF8, []byte{0xEF, 0xBB, 0xBF}},
		{"sjis ascii", CaretTextFromString("A"), SJIS, []byte{0x41}},
		{"sjis kana", CaretTextFromString("ポ"), SJIS, []byte{0x83, 0x7C}},
		{"sjis kanji", CaretTextFromString("鬱"), SJIS, []byte{0x9F, 0x54}},
		{"sjis unmappable", CaretTextFromString("😀"), SJIS, []byte{0x1A}},
		{"eucjp kana", CaretTextFromString("ポ"), EUCJP, []byte{0xA5, 0xDD}},
		{"eucjp kanji", CaretTextFromString("鬱"), EUCJP, []byte{0xDD, 0xB5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.Convert(tt.text, tt.target)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTextConverter_UnsupportedTarget(t *testing.T) {
	_, err := NewTextConverter().Convert(CaretTextFromString("a"), Encoding("LATIN1"))
	require.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestTextConverter_Empty(t *testing.T) {
	conv := NewTextConverter()
	for _, e := range Encodings() {
		got, err := conv.Convert(CaretText{}, e)
		require.NoError(t, err)
		require.Empty(t, got)
	}
}
