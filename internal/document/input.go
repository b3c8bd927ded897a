package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// InputEncoding is the byte encoding a file is read with.
type InputEncoding string

const (
	InputUTF8  InputEncoding = "utf8"
	InputSJIS  InputEncoding = "sjis"
	InputEUCJP InputEncoding = "eucjp"
)

// ErrInvalidInputEncoding is returned by ParseInputEncoding for unknown names.
var ErrInvalidInputEncoding = errors.New("invalid input encoding")

var inputAliases = map[string]InputEncoding{
	"":          InputUTF8,
	"utf8":      InputUTF8,
	"utf-8":     InputUTF8,
	"sjis":      InputSJIS,
	"shift_jis": InputSJIS,
	"shift-jis": InputSJIS,
	"eucjp":     InputEUCJP,
	"euc-jp":    InputEUCJP,
}

// ParseInputEncoding maps a config or flag value to an InputEncoding.
// The empty string means utf8.
func ParseInputEncoding(name string) (InputEncoding, error) {
	if enc, ok := inputAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return enc, nil
	}
	return "", fmt.Errorf("%w: %q (must be utf8, sjis or eucjp)", ErrInvalidInputEncoding, name)
}

func (e InputEncoding) encoding() encoding.Encoding {
	switch e {
	case InputSJIS:
		return japanese.ShiftJIS
	case InputEUCJP:
		return japanese.EUCJP
	default:
		return unicode.UTF8
	}
}

// Decode reads all of r and converts it to UTF-8. Invalid input bytes
// become U+FFFD.
func (e InputEncoding) Decode(r io.Reader) (string, error) {
	data, err := io.ReadAll(transform.NewReader(r, e.encoding().NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", e, err)
	}
	return string(data), nil
}
