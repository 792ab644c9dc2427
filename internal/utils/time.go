package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseDurationSeconds converts a duration string to total seconds.
// Accepted forms are "H:MM:SS", "MM:SS", or a bare numeric value.
// Anything empty, unparseable, or negative yields 0.
func ParseDurationSeconds(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	switch strings.ToLower(s) {
	case "nan", "null":
		return 0
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		switch len(parts) {
		case 3:
			h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
			m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
			sec, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
			if err1 != nil || err2 != nil || err3 != nil {
				return 0
			}
			return clampNonNegative(h*3600 + m*60 + sec)
		case 2:
			m, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
			sec, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err1 != nil || err2 != nil {
				return 0
			}
			return clampNonNegative(m*60 + sec)
		default:
			return 0
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return clampNonNegative(int(f))
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// FormatHMS renders seconds as "H:MM:SS". The value round-trips through
// ParseDurationSeconds for any non-negative input.
func FormatHMS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return strconv.Itoa(h) + ":" + pad2(m) + ":" + pad2(s)
}

// FormatMMSS renders seconds as "MM:SS", used for queue wait and handle
// times which rarely exceed an hour.
func FormatMMSS(seconds float64) string {
	if math.IsNaN(seconds) || seconds <= 0 {
		return "00:00"
	}
	total := int(seconds)
	return pad2(total/60) + ":" + pad2(total%60)
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Pct returns part as a percentage of total, rounded to one decimal.
// A zero total yields 0.0.
func Pct(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return Round1(100 * float64(part) / float64(total))
}
