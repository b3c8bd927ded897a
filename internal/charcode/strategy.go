package charcode

import (
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Strategy names, reported in Resolution.Strategy.
const (
	StrategyCombined  = "combined"
	StrategySurrogate = "surrogate"
	StrategySingle    = "single"
)

// Strategy recognises one shape of caret text and renders it.
// Attempt returns ok=false when the text or target does not fit the shape.
type Strategy interface {
	Name() string
	Attempt(text CaretText, target Encoding) (status string, ok bool, err error)
}

// CombinedStrategy matches a base character followed by a combining mark
// that NFC composes into a single code unit, e.g. U+30DB U+309A -> U+30DD.
// Only UNICODE and UTF8 targets are rendered; both characters are converted
// separately.
type CombinedStrategy struct {
	conv Converter
}

// NewCombinedStrategy returns a CombinedStrategy using conv.
func NewCombinedStrategy(conv Converter) *CombinedStrategy {
	return &CombinedStrategy{conv: conv}
}

// Name implements Strategy.
func (s *CombinedStrategy) Name() string { return StrategyCombined }

// Attempt implements Strategy.
func (s *CombinedStrategy) Attempt(text CaretText, target Encoding) (string, bool, error) {
	if text.Len() < 2 || !target.ShowsCodepointPrefix() {
		return "", false, nil
	}
	if !composesToSingleUnit(text) {
		return "", false, nil
	}

	groups := make([]string, 0, 2)
	for i := range 2 {
		b, err := s.conv.Convert(CaretTextFromUnits(text.Unit(i)), target)
		if err != nil {
			return "", false, fmt.Errorf("%s strategy: %w", StrategyCombined, err)
		}
		groups = append(groups, FormatHex(b))
	}
	return fmt.Sprintf("%s: %s (combined)", target, prefixed(groups...)), true, nil
}

// composesToSingleUnit reports whether the NFC form of the first two units
// is exactly one UTF-16 code unit.
func composesToSingleUnit(text CaretText) bool {
	composed := norm.NFC.String(text.Head(2).Decode())
	n := 0
	for _, r := range composed {
		n += utf16.RuneLen(r)
		if n > 1 {
			return false
		}
	}
	return n == 1
}

// SurrogateStrategy matches a UTF-16 surrogate pair. The pairing test is
// deliberately permissive: a high surrogate first OR a low surrogate second
// is enough. UNICODE renders the two code units as separate U+XXXX groups,
// UTF8 renders the encoded bytes as one contiguous run.
type SurrogateStrategy struct {
	conv Converter
}

// NewSurrogateStrategy returns a SurrogateStrategy using conv.
func NewSurrogateStrategy(conv Converter) *SurrogateStrategy {
	return &SurrogateStrategy{conv: conv}
}

// Name implements Strategy.
func (s *SurrogateStrategy) Name() string { return StrategySurrogate }

// Attempt implements Strategy.
func (s *SurrogateStrategy) Attempt(text CaretText, target Encoding) (string, bool, error) {
	if text.Len() < 2 || !target.ShowsCodepointPrefix() {
		return "", false, nil
	}
	if !isHighSurrogate(text.Unit(0)) && !isLowSurrogate(text.Unit(1)) {
		return "", false, nil
	}

	b, err := s.conv.Convert(text.Head(2), target)
	if err != nil {
		return "", false, fmt.Errorf("%s strategy: %w", StrategySurrogate, err)
	}

	var rendered string
	if target == Unicode {
		rendered = prefixed(FormatHexGroups(b, 2)...)
	} else {
		rendered = prefixed(FormatHex(b))
	}
	return fmt.Sprintf("%s: %s (surrogate)", target, rendered), true, nil
}

// SingleStrategy is the fallback: it renders the first code unit on its own
// and matches any non-empty text in every encoding.
type SingleStrategy struct {
	conv Converter
}

// NewSingleStrategy returns a SingleStrategy using conv.
func NewSingleStrategy(conv Converter) *SingleStrategy {
	return &SingleStrategy{conv: conv}
}

// Name implements Strategy.
func (s *SingleStrategy) Name() string { return StrategySingle }

// Attempt implements Strategy.
func (s *SingleStrategy) Attempt(text CaretText, target Encoding) (string, bool, error) {
	if text.IsEmpty() {
		return "", false, nil
	}

	b, err := s.conv.Convert(text.Head(1), target)
	if err != nil {
		return "", false, fmt.Errorf("%s strategy: %w", StrategySingle, err)
	}

	prefix := ""
	if target.ShowsCodepointPrefix() {
		prefix = codepointPrefix
	}
	return fmt.Sprintf("%s: %s%s", target, prefix, FormatHex(b)), true, nil
}
