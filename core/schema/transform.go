package schema

import (
	"strconv"
	"time"
)

// Transform identifies a value conversion applied to a target property.
type Transform int

const (
	// TransformNone copies the value unchanged.
	TransformNone Transform = iota
	// TransformMidnight parses a calendar date as UTC midnight.
	TransformMidnight
	// TransformExact parses a local date-time in the source offset.
	TransformExact
)

func (t Transform) String() string {
	switch t {
	case TransformMidnight:
		return "midnight"
	case TransformExact:
		return "exact"
	default:
		return "none"
	}
}

const (
	dateLayout     = "2006/1/2"
	dateTimeLayout = "2006/1/2 15:4:5"

	// DefaultOffsetHours is the offset of timestamps in the accounting export (JST).
	DefaultOffsetHours = 9
)

// SourceZone returns a fixed zone for the given offset in hours.
func SourceZone(offsetHours int) *time.Location {
	return time.FixedZone("UTC"+strconv.FormatInt(int64(offsetHours), 10), offsetHours*3600)
}

// MidnightMillis parses "YYYY/MM/DD" and returns UTC midnight of that date in epoch ms.
func MidnightMillis(value string) (string, bool) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return "", false
	}
	return strconv.FormatInt(t.UnixMilli(), 10), true
}

// ExactMillis parses "YYYY/MM/DD HH:MM:SS" in loc and returns the instant in epoch ms.
func ExactMillis(value string, loc *time.Location) (string, bool) {
	t, err := time.ParseInLocation(dateTimeLayout, value, loc)
	if err != nil {
		return "", false
	}
	return strconv.FormatInt(t.UnixMilli(), 10), true
}

// Substitute replaces a known label with its identifier; unknown labels pass through.
func Substitute(labels map[string]string, value string) string {
	if id, ok := labels[value]; ok {
		return id
	}
	return value
}
