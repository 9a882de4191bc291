package calendar

import (
	"fmt"
	"time"
)

// ParseOffset reads a fixed UTC offset written as ±HHMM and returns it in minutes.
func ParseOffset(s string) (int, error) {
	if len(s) != 5 || (s[0] != '+' && s[0] != '-') {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
		}
	}

	h := int(s[1]-'0')*10 + int(s[2]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}

	minutes := h*60 + m
	if s[0] == '-' {
		minutes = -minutes
	}
	return minutes, nil
}

// FormatOffset writes an offset in minutes as ±HHMM.
func FormatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("%c%02d%02d", sign, minutes/60, minutes%60)
}

// FixedZone returns a location with a constant offset of the given minutes,
// named after its ±HHMM form.
func FixedZone(minutes int) *time.Location {
	return time.FixedZone(FormatOffset(minutes), minutes*60)
}

func offsetOf(t time.Time) int {
	_, sec := t.Zone()
	return sec / 60
}
