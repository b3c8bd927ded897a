package charcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "", FormatHex(nil))
	assert.Equal(t, "0A", FormatHex([]byte{0x0A}))
	assert.Equal(t, "E3839B", FormatHex([]byte{0xE3, 0x83, 0x9B}))
	assert.Equal(t, "00FF", FormatHex([]byte{0x00, 0xFF}))
}

func TestFormatHexGroups(t *testing.T) {
	b := []byte{0xD8, 0x67, 0xDE, 0x3D}
	assert.Equal(t, []string{"D867", "DE3D"}, FormatHexGroups(b, 2))
	assert.Equal(t, []string{"D867DE3D"}, FormatHexGroups(b, 4))
	assert.Equal(t, []string{"D867", "DE"}, FormatHexGroups(b[:3], 2))
	assert.Equal(t, []string{"D8", "67"}, FormatHexGroups(b[:2], 0))
	assert.Empty(t, FormatHexGroups(nil, 2))
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "U+30DB U+309A", prefixed("30DB", "309A"))
	assert.Equal(t, "U+F0A9B8BD", prefixed("F0A9B8BD"))
	assert.Equal(t, "", prefixed())
}
