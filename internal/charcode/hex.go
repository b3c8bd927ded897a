package charcode

import (
	"encoding/hex"
	"strings"
)

const codepointPrefix = "U+"

// FormatHex renders every byte as two uppercase hex digits, no separators.
func FormatHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// FormatHexGroups splits b into chunks of size bytes and renders each chunk
// with FormatHex. A short trailing chunk is rendered as-is.
func FormatHexGroups(b []byte, size int) []string {
	if size <= 0 {
		size = 1
	}
	groups := make([]string, 0, (len(b)+size-1)/size)
	for start := 0; start < len(b); start += size {
		end := min(start+size, len(b))
		groups = append(groups, FormatHex(b[start:end]))
	}
	return groups
}

// prefixed joins groups with a space, each carrying the "U+" prefix.
func prefixed(groups ...string) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(codepointPrefix)
		b.WriteString(g)
	}
	return b.String()
}
