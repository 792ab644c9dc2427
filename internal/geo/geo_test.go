package geo_test

import (
	"testing"

	"github.com/nycdan-n2p/call-intel-widget/internal/geo"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected string
	}{
		"CommaSeparated":  {input: "Austin, TX", expected: "Austin, TX"},
		"SpaceSeparated":  {input: "Austin TX", expected: "Austin, TX"},
		"MultiWordCity":   {input: "New York, NY", expected: "New York, NY"},
		"PlainName":       {input: "Dana Levi", expected: ""},
		"LowercaseSuffix": {input: "Austin, tx", expected: ""},
		"Empty":           {input: "", expected: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, geo.FromName(tt.input))
		})
	}
}

func TestFromNumber(t *testing.T) {
	// NANP ten-digit numbers are assumed US; 212 is a New York prefix.
	assert.Equal(t, "New York, NY", geo.FromNumber("2125550123"))

	// Formatting noise is ignored, only digits count.
	assert.Equal(t, "New York, NY", geo.FromNumber("(212) 555-0123"))

	assert.Equal(t, "", geo.FromNumber(""))
	assert.Equal(t, "", geo.FromNumber("ext. abc"))
}

func TestRowLocation(t *testing.T) {
	// Name pattern wins over the number.
	assert.Equal(t, "Austin, TX", geo.RowLocation("Austin, TX", "2125550123"))

	// Number is the fallback.
	assert.Equal(t, "New York, NY", geo.RowLocation("Dana Levi", "2125550123"))

	assert.Equal(t, "", geo.RowLocation("Dana Levi", ""))
}
