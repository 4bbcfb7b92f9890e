package period

import (
	"errors"
	"fmt"
)

// ErrInvalidClock is returned when a time is not in HH:MM 24h format.
var ErrInvalidClock = errors.New("time must be in HH:MM format")

const minutesPerDay = 24 * 60

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

// NewClock builds a Clock from an hour and minute. Out of range values wrap.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute).normalize()
}

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if !isDigits(s[0:2]) || !isDigits(s[3:5]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	if hours > 23 || mins > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(hours*60 + mins), nil
}

// MustParseClock is like ParseClock but panics on error. Intended for constants and tests.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hour returns the hour component (0-23).
func (c Clock) Hour() int {
	return int(c.normalize()) / 60
}

// Minute returns the minute component (0-59).
func (c Clock) Minute() int {
	return int(c.normalize()) % 60
}

// String formats the clock as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) normalize() Clock {
	m := int(c) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return Clock(m)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
