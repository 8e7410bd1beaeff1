package types

import (
	"errors"
	"fmt"
	"time"
)

// timeFormat is the wall-clock layout used on the wire and in storage.
const timeFormat = "15:04"

// ErrInvalidTimeString is returned when a value does not parse as "HH:MM".
var ErrInvalidTimeString = errors.New("types: invalid time string format")

// TimeString is a zero-padded "HH:MM" time of day. Values produced by
// NewTimeStringFromString are fixed-width, so lexical ordering matches
// chronological ordering and the raw string is safe to store and compare.
type TimeString string

// NewTimeStringFromString parses and normalizes an "HH:MM" value.
// Inputs like "9:00" are accepted but re-rendered zero-padded.
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(t.Format(timeFormat)), nil
}

// String returns the raw "HH:MM" value.
func (ts TimeString) String() string {
	return string(ts)
}

// Minutes returns the value as minutes since midnight.
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(timeFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsBefore reports whether ts is strictly earlier than other.
// Both values must be normalized; comparison is lexical.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}
