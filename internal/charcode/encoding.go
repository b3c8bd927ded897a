// Package charcode resolves the character under a caret into its code
// representation for one of the supported display encodings and renders it
// as a short status string.
//
// Resolution is a fixed, ordered list of strategies (see Resolver). Every
// call takes the target Encoding explicitly; the package holds no selection
// state of its own.
package charcode

import (
	"errors"
	"fmt"
	"strings"
)

// Encoding is the display encoding a caret character is converted to.
type Encoding string

const (
	// Unicode shows UTF-16 code units.
	Unicode Encoding = "UNICODE"
	// UTF8 shows UTF-8 bytes.
	UTF8 Encoding = "UTF8"
	// SJIS shows Shift_JIS bytes.
	SJIS Encoding = "SJIS"
	// EUCJP shows EUC-JP bytes.
	EUCJP Encoding = "EUCJP"
)

// DefaultEncoding is the selection used before the user picks one.
const DefaultEncoding = Unicode

// ErrInvalidEncodingName is returned by ParseEncoding for unknown names.
var ErrInvalidEncodingName = errors.New("invalid encoding name")

var encodingAliases = map[string]Encoding{
	"UNICODE":   Unicode,
	"UTF8":      UTF8,
	"UTF-8":     UTF8,
	"SJIS":      SJIS,
	"SHIFT_JIS": SJIS,
	"SHIFT-JIS": SJIS,
	"SHIFTJIS":  SJIS,
	"EUCJP":     EUCJP,
	"EUC-JP":    EUCJP,
}

// Encodings returns the supported encodings in selection order.
func Encodings() []Encoding {
	return []Encoding{Unicode, UTF8, SJIS, EUCJP}
}

// ParseEncoding resolves a user supplied name (case-insensitive, common
// aliases accepted) to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	if enc, ok := encodingAliases[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return enc, nil
	}
	return "", fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidEncodingName, name, encodingList())
}

// Valid reports whether e is one of the supported encodings.
func (e Encoding) Valid() bool {
	switch e {
	case Unicode, UTF8, SJIS, EUCJP:
		return true
	}
	return false
}

// ShowsCodepointPrefix reports whether rendered codes carry the "U+" prefix.
func (e Encoding) ShowsCodepointPrefix() bool {
	return e == Unicode || e == UTF8
}

// Next returns the encoding after e in selection order, wrapping around.
func (e Encoding) Next() Encoding {
	all := Encodings()
	for i, enc := range all {
		if enc == e {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultEncoding
}

// Description is a one-line human summary used by selection surfaces.
func (e Encoding) Description() string {
	switch e {
	case Unicode:
		return "UTF-16 code units"
	case UTF8:
		return "UTF-8 bytes"
	case SJIS:
		return "Shift_JIS bytes"
	case EUCJP:
		return "EUC-JP bytes"
	default:
		return ""
	}
}

func (e Encoding) String() string {
	return string(e)
}

func encodingList() string {
	names := make([]string, 0, 4)
	for _, e := range Encodings() {
		names = append(names, string(e))
	}
	return strings.Join(names, ", ")
}
