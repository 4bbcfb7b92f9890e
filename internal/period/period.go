// Package period buckets times of day into the four board periods.
package period

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPeriod is returned for names that are not one of the four periods.
var ErrInvalidPeriod = errors.New("period must be dawn, morning, afternoon or evening")

// Period is one of the four fixed segments of a day.
type Period int

const (
	Dawn Period = iota
	Morning
	Afternoon
	Evening
)

// Count is the number of periods in a day.
const Count = 4

var names = [Count]string{"dawn", "morning", "afternoon", "evening"}

// Half-open [start, end) bounds in hours.
var bounds = [Count][2]int{
	Dawn:      {0, 6},
	Morning:   {6, 12},
	Afternoon: {12, 18},
	Evening:   {18, 24},
}

// Canonical time used when a task is repaired into a period.
var defaults = [Count]Clock{
	Dawn:      NewClock(4, 0),
	Morning:   NewClock(9, 0),
	Afternoon: NewClock(14, 0),
	Evening:   NewClock(19, 0),
}

// All returns the periods in display order.
func All() [Count]Period {
	return [Count]Period{Dawn, Morning, Afternoon, Evening}
}

// ForHour returns the period containing the given hour. Hours wrap modulo 24.
func ForHour(hour int) Period {
	h := hour % 24
	if h < 0 {
		h += 24
	}
	switch {
	case h < 6:
		return Dawn
	case h < 12:
		return Morning
	case h < 18:
		return Afternoon
	default:
		return Evening
	}
}

// Classify returns the period a time of day belongs to. Minutes do not matter.
func Classify(c Clock) Period {
	return ForHour(c.Hour())
}

// Valid reports whether p is one of the four periods.
func (p Period) Valid() bool {
	return p >= Dawn && p <= Evening
}

// Default returns the canonical time used when repairing a task into p.
func (p Period) Default() Clock {
	if !p.Valid() {
		return defaults[Morning]
	}
	return defaults[p]
}

// Range returns the first and one-past-last hour of the period.
func (p Period) Range() (startHour, endHour int) {
	if !p.Valid() {
		return 0, 0
	}
	return bounds[p][0], bounds[p][1]
}

// Contains reports whether c falls inside the period.
func (p Period) Contains(c Clock) bool {
	return Classify(c) == p
}

func (p Period) String() string {
	if !p.Valid() {
		return fmt.Sprintf("period(%d)", int(p))
	}
	return names[p]
}

// Title returns the capitalised name used in headers.
func (p Period) Title() string {
	s := p.String()
	if !p.Valid() {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Parse parses a period name, case-insensitively.
func Parse(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return Period(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
