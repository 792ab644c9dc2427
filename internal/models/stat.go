package models

import "strconv"

// Stat is a float aggregate that records whether any input contributed to
// it. An invalid Stat marshals and prints as zero, so consumers degrade to
// zero instead of failing; tests and callers consult Valid to tell a
// computed zero from missing data.
type Stat struct {
	Val   float64
	Valid bool
}

// StatOf returns a valid Stat holding v.
func StatOf(v float64) Stat {
	return Stat{Val: v, Valid: true}
}

// Value returns the degraded numeric form: the value when valid, zero
// otherwise.
func (s Stat) Value() float64 {
	if !s.Valid {
		return 0
	}
	return s.Val
}

// MarshalJSON emits the degraded numeric value.
func (s Stat) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(s.Value(), 'f', -1, 64)), nil
}

// UnmarshalJSON reads a plain number back into a valid Stat.
func (s *Stat) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = StatOf(v)
	return nil
}

// Count is the integer counterpart of Stat.
type Count struct {
	N     int
	Valid bool
}

// CountOf returns a valid Count holding n.
func CountOf(n int) Count {
	return Count{N: n, Valid: true}
}

// Value returns the count when valid, zero otherwise.
func (c Count) Value() int {
	if !c.Valid {
		return 0
	}
	return c.N
}

// MarshalJSON emits the degraded count.
func (c Count) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(c.Value())), nil
}

// UnmarshalJSON reads a plain number back into a valid Count.
func (c *Count) UnmarshalJSON(data []byte) error {
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*c = CountOf(n)
	return nil
}
