package sim

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Time is a simulated time of day, in whole seconds since midnight.
// The lane never runs across midnight, so a plain integer is enough and
// keeps comparisons and heap ordering trivial.
type Time int64

// NewTime builds a Time from an hour, minute and second of the day.
func NewTime(hour, minute, second int) Time {
	return Time(hour*3600 + minute*60 + second)
}

// ParseTime parses "HH:MM" or "HH:MM:SS". Every field must be all digits.
func ParseTime(s string) (Time, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 2 && len(fields) != 3 {
		return 0, fmt.Errorf("invalid time of day %q: want HH:MM or HH:MM:SS", s)
	}
	var hms [3]int
	for i, f := range fields {
		v, err := parseClockField(f)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q: want HH:MM or HH:MM:SS", s)
		}
		hms[i] = v
	}
	h, m, sec := hms[0], hms[1], hms[2]
	if h > 23 || m > 59 || sec > 59 {
		return 0, fmt.Errorf("invalid time of day %q: field out of range", s)
	}
	return NewTime(h, m, sec), nil
}

// parseClockField accepts one or two decimal digits.
func parseClockField(f string) (int, error) {
	if len(f) == 0 || len(f) > 2 {
		return 0, fmt.Errorf("bad field %q", f)
	}
	for _, c := range f {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("bad field %q", f)
		}
	}
	return strconv.Atoi(f)
}

// Add returns t advanced by d, truncated to whole seconds.
func (t Time) Add(d time.Duration) Time {
	return t + Time(d/time.Second)
}

// Sub returns the duration t-u.
func (t Time) Sub(u Time) time.Duration {
	return time.Duration(t-u) * time.Second
}

func (t Time) Before(u Time) bool { return t < u }
func (t Time) After(u Time) bool  { return t > u }

// Compare returns -1, 0 or +1 when t is before, equal to or after u.
func (t Time) Compare(u Time) int {
	switch {
	case t < u:
		return -1
	case t > u:
		return 1
	default:
		return 0
	}
}

// MaxOf returns the later of t and u.
func MaxOf(t, u Time) Time {
	if t.After(u) {
		return t
	}
	return u
}

// String renders t as HH:MM:SS.
func (t Time) String() string {
	s := int64(t)
	sign := ""
	if s < 0 {
		sign = "-"
		s = -s
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, s/3600, (s%3600)/60, s%60)
}

// MarshalYAML writes t in its HH:MM:SS form.
func (t Time) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML accepts "HH:MM" or "HH:MM:SS" scalars.
func (t *Time) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseTime(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
