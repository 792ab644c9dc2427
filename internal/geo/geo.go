// Package geo derives coarse location labels for callers, first from a
// "City, ST" pattern in the caller name and then from area-code
// geocoding of the dialed number. Area-code resolution collapses
// distinct cities sharing a prefix into one bucket; that approximation
// is accepted.
package geo

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Matches "City, ST" or "City ST" with a two-letter uppercase suffix.
var cityStateRe = regexp.MustCompile(`(.+?)[,\s]+([A-Z]{2})$`)

// FromName extracts a "City, ST" label from a caller name, or "".
func FromName(name string) string {
	m := cityStateRe.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1]) + ", " + m[2]
}

// FromNumber geocodes a dialed number at area-code granularity. Bare
// ten-digit numbers are assumed NANP. Falls back to the region code
// when no description is known, and to "" when nothing matches.
func FromNumber(num string) string {
	digits := keepDigits(num)
	if digits == "" {
		return ""
	}
	if len(digits) == 10 {
		digits = "+1" + digits
	} else {
		digits = "+" + digits
	}

	pn, err := phonenumbers.Parse(digits, "")
	if err != nil {
		return ""
	}
	if desc, err := phonenumbers.GetGeocodingForNumber(pn, "en"); err == nil && desc != "" {
		return desc
	}
	return phonenumbers.GetRegionCodeForNumber(pn)
}

// RowLocation resolves a location for one call row: name pattern first,
// then number geocoding.
func RowLocation(fromName, fromNumber string) string {
	if loc := FromName(fromName); loc != "" {
		return loc
	}
	return FromNumber(fromNumber)
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
