package charcode

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// MaxCaretUnits is the number of UTF-16 code units a caret supplier hands to
// the resolver: enough for a base character plus a combining mark, or for
// one surrogate pair.
const MaxCaretUnits = 2

// Surrogate ranges.
const (
	highSurrogateMin = 0xD800
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
	lowSurrogateMax  = 0xDFFF
)

// CaretText is an immutable snapshot of up to MaxCaretUnits UTF-16 code
// units starting at the caret.
type CaretText struct {
	units []uint16
}

// CaretTextFromString takes the leading UTF-16 code units of s.
func CaretTextFromString(s string) CaretText {
	var units []uint16
	for _, r := range s {
		units = utf16.AppendRune(units, r)
		if len(units) >= MaxCaretUnits {
			break
		}
	}
	return CaretTextFromUnits(units...)
}

// CaretTextFromUnits builds a CaretText from raw code units. Ill-formed
// sequences such as lone surrogates are kept as given.
func CaretTextFromUnits(units ...uint16) CaretText {
	if len(units) > MaxCaretUnits {
		units = units[:MaxCaretUnits]
	}
	if len(units) == 0 {
		return CaretText{}
	}
	return CaretText{units: append([]uint16(nil), units...)}
}

// Len returns the number of code units.
func (c CaretText) Len() int {
	return len(c.units)
}

// IsEmpty reports whether there is no text at the caret.
func (c CaretText) IsEmpty() bool {
	return len(c.units) == 0
}

// Unit returns the i-th code unit. It panics if i is out of range.
func (c CaretText) Unit(i int) uint16 {
	return c.units[i]
}

// Units returns a copy of the code units.
func (c CaretText) Units() []uint16 {
	return append([]uint16(nil), c.units...)
}

// Head returns a CaretText holding only the first n code units.
func (c CaretText) Head(n int) CaretText {
	if n >= len(c.units) {
		return c
	}
	return CaretTextFromUnits(c.units[:n]...)
}

// Decode returns the text as a Go string. Lone surrogates decode to U+FFFD.
func (c CaretText) Decode() string {
	return string(utf16.Decode(c.units))
}

// String renders the units in \uXXXX form for logs.
func (c CaretText) String() string {
	var b strings.Builder
	for _, u := range c.units {
		fmt.Fprintf(&b, "\\u%04X", u)
	}
	return b.String()
}

func isHighSurrogate(u uint16) bool {
	return u >= highSurrogateMin && u <= highSurrogateMax
}

func isLowSurrogate(u uint16) bool {
	return u >= lowSurrogateMin && u <= lowSurrogateMax
}
