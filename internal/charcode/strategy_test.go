package charcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hoWithMark     = "\u30DB\u309A" // ホ + combining semi-voiced sound mark
	poPrecomposed  = "\u30DD"       // ポ
	hokke          = "\U00029E3D"   // 𩸽, U+D867 U+DE3D
	utsu           = "\u9B31"       // 鬱
	eWithAcute     = "e\u0301"
	qWithAcute     = "q\u0301" // no precomposed form
	highSurrogateA = 0xD867
)

func TestCombinedStrategy(t *testing.T) {
	s := NewCombinedStrategy(NewTextConverter())

	tests := []struct {
		name   string
		text   CaretText
		target Encoding
		want   string
		ok     bool
	}{
		{"kana unicode", CaretTextFromString(hoWithMark), Unicode, "UNICODE: U+30DB U+309A (combined)", true},
		{"kana utf8", CaretTextFromString(hoWithMark), UTF8, "UTF8: U+E3839B U+E3829A (combined)", true},
		{"latin unicode", CaretTextFromString(eWithAcute), Unicode, "UNICODE: U+0065 U+0301 (combined)", true},
		{"latin utf8", CaretTextFromString(eWithAcute), UTF8, "UTF8: U+65 U+CC81 (combined)", true},
		{"precomposed is single unit", CaretTextFromString(poPrecomposed), Unicode, "", false},
		{"no precomposed form", CaretTextFromString(qWithAcute), Unicode, "", false},
		{"two plain letters", CaretTextFromString("ab"), Unicode, "", false},
		{"surrogate pair", CaretTextFromString(hokke), Unicode, "", false},
		{"sjis never", CaretTextFromString(hoWithMark), SJIS, "", false},
		{"eucjp never", CaretTextFromString(hoWithMark), EUCJP, "", false},
		{"empty", CaretText{}, Unicode, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := s.Attempt(tt.text, tt.target)
			require.NoError(t, err)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSurrogateStrategy(t *testing.T) {
	s := NewSurrogateStrategy(NewTextConverter())

	tests := []struct {
		name   string
		text   CaretText
		target Encoding
		want   string
		ok     bool
	}{
		{"pair unicode", CaretTextFromString(hokke), Unicode, "UNICODE: U+D867 U+DE3D (surrogate)", true},
		{"pair utf8", CaretTextFromString(hokke), UTF8, "UTF8: U+F0A9B8BD (surrogate)", true},
		{"emoji unicode", CaretTextFromString("\U0001F600"), Unicode, "UNICODE: U+D83D U+DE00 (surrogate)", true},
		{"bmp char", CaretTextFromString(utsu), Unicode, "", false},
		{"two bmp chars", CaretTextFromString("ab"), Unicode, "", false},
		{"high then plain", CaretTextFromUnits(highSurrogateA, 0x41), Unicode, "UNICODE: U+D867 U+0041 (surrogate)", true},
		{"plain then low", CaretTextFromUnits(0x41, 0xDE3D), Unicode, "UNICODE: U+0041 U+DE3D (surrogate)", true},
		{"high then plain utf8", CaretTextFromUnits(highSurrogateA, 0x41), UTF8, "UTF8: U+EFBFBD41 (surrogate)", true},
		{"low then high", CaretTextFromUnits(0xDE3D, highSurrogateA), Unicode, "", false},
		{"lone high", CaretTextFromUnits(highSurrogateA), Unicode, "", false},
		{"sjis never", CaretTextFromString(hokke), SJIS, "", false},
		{"eucjp never", CaretTextFromString(hokke), EUCJP, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := s.Attempt(tt.text, tt.target)
			require.NoError(t, err)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSingleStrategy(t *testing.T) {
	s := NewSingleStrategy(NewTextConverter())

	tests := []struct {
		name   string
		text   CaretText
		target Encoding
		want   string
	}{
		{"ascii unicode", CaretTextFromString("A"), Unicode, "UNICODE: U+0041"},
		{"ascii utf8", CaretTextFromString("A"), UTF8, "UTF8: U+41"},
		{"ascii sjis", CaretTextFromString("A"), SJIS, "SJIS: 41"},
		{"kana unicode", CaretTextFromString(poPrecomposed), Unicode, "UNICODE: U+30DD"},
		{"kana utf8", CaretTextFromString(poPrecomposed), UTF8, "UTF8: U+E3839D"},
		{"kana sjis", CaretTextFromString(poPrecomposed), SJIS, "SJIS: 837C"},
		{"kana eucjp", CaretTextFromString(poPrecomposed), EUCJP, "EUCJP: A5DD"},
		{"only first unit", CaretTextFromString(utsu + "a"), SJIS, "SJIS: 9F54"},
		{"base of combined in sjis", CaretTextFromString(hoWithMark), SJIS, "SJIS: 837A"},
		{"lone low surrogate", CaretTextFromUnits(0xDE3D), Unicode, "UNICODE: U+DE3D"},
		{"high surrogate in eucjp", CaretTextFromString(hokke), EUCJP, "EUCJP: 1A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := s.Attempt(tt.text, tt.target)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}

	got, ok, err := s.Attempt(CaretText{}, Unicode)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)
}

type failingConverter struct{ err error }

func (f failingConverter) Convert(CaretText, Encoding) ([]byte, error) { return nil, f.err }

func TestStrategies_PropagateConverterError(t *testing.T) {
	boom := errors.New("boom")
	conv := failingConverter{err: boom}

	_, _, err := NewCombinedStrategy(conv).Attempt(CaretTextFromString(hoWithMark), Unicode)
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, StrategyCombined)

	_, _, err = NewSurrogateStrategy(conv).Attempt(CaretTextFromString(hokke), UTF8)
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, StrategySurrogate)

	_, _, err = NewSingleStrategy(conv).Attempt(CaretTextFromString("a"), SJIS)
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, StrategySingle)
}
