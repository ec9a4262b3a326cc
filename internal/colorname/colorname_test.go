package colorname

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosestExactTableHits(t *testing.T) {
	for _, name := range Names() {
		hex := Hex(name)
		require.NotEmpty(t, hex, name)
		assert.Equal(t, name, Closest(hex), "hex %s", hex)
		assert.Equal(t, name, Closest(strings.ToUpper(strings.TrimPrefix(hex, "#"))), "bare hex %s", hex)
	}
}

func TestClosestNearMatches(t *testing.T) {
	cases := map[string]string{
		"#000000": "Black",
		"#010101": "Black",
		"#fefefe": "White",
		"#A52A2B": "Brown",
		"#FFD701": "Gold",
		"fe0000":  "Red",
	}
	for in, want := range cases {
		assert.Equal(t, want, Closest(in), in)
	}
}

func TestClosestRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "#FFF", "#GGGGGG", "red", "#12345", "#1234567", "##123456"} {
		assert.Equal(t, Unknown, Closest(in), in)
	}
}

func TestParse(t *testing.T) {
	r, g, b, ok := Parse("#0a0B0c")
	require.True(t, ok)
	assert.Equal(t, []uint8{10, 11, 12}, []uint8{r, g, b})

	_, _, _, ok = Parse("0x0a0b0c")
	assert.False(t, ok)
}

func TestTableHasNoDuplicateColors(t *testing.T) {
	seen := map[rgb]string{}
	for _, e := range named {
		prev, dup := seen[e.RGB]
		assert.False(t, dup, "%s duplicates %s", e.Name, prev)
		seen[e.RGB] = e.Name
	}
}
