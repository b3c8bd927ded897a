package charcode

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnsupportedEncoding is returned when a Converter is asked for an
// encoding it has no table for.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// Converter turns caret text into the byte sequence of a target encoding.
type Converter interface {
	Convert(text CaretText, target Encoding) ([]byte, error)
}

// TextConverter is the Converter backed by golang.org/x/text.
//
// UNICODE output is the code units themselves, big-endian, so lone
// surrogates survive. Every other target decodes the units first (ill-formed
// surrogates become U+FFFD) and then encodes; characters the target has no
// mapping for become the encoding's substitution byte instead of failing the
// conversion.
type TextConverter struct {
	targets map[Encoding]encoding.Encoding
}

// NewTextConverter returns a converter for all supported encodings.
func NewTextConverter() *TextConverter {
	return &TextConverter{
		targets: map[Encoding]encoding.Encoding{
			UTF8:  unicode.UTF8,
			SJIS:  japanese.ShiftJIS,
			EUCJP: japanese.EUCJP,
		},
	}
}

// Convert implements Converter.
func (c *TextConverter) Convert(text CaretText, target Encoding) ([]byte, error) {
	if target == Unicode {
		raw := make([]byte, 0, 2*text.Len())
		for _, u := range text.units {
			raw = binary.BigEndian.AppendUint16(raw, u)
		}
		return raw, nil
	}

	enc, ok := c.targets[target]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, target)
	}

	out, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(text.Decode()))
	if err != nil {
		return nil, fmt.Errorf("encoding caret text %s to %s: %w", text, target, err)
	}
	return out, nil
}
