// Package timezone resolves the reference instant a recognition request is
// evaluated against.
//
// Recognition works on wall-clock values: "tomorrow at 5pm" means 17:00 in
// the caller's zone, so the reference time is converted to that zone before
// it reaches the model.
package timezone

import (
	"fmt"
	"strings"
	"time"

	// Embedded zone database for hosts without /usr/share/zoneinfo.
	_ "time/tzdata"
)

// UTC is the coordinated universal time timezone
var UTC = time.UTC

// referenceLayouts are accepted for reference times, most specific first.
var referenceLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Shanghai").
// If the timezone is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" || tz == "UTC" {
		return UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return loc, nil
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	_, err := ParseTimezone(tz)
	return err == nil
}

// ParseReference parses a reference time. A value with an offset keeps its
// instant and is shown in loc; a value without one is read as wall-clock
// time in loc. An empty value is the current time in loc.
func ParseReference(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = UTC
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return NowInTimezone(loc), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range referenceLayouts[1:] {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid reference time %q: want RFC 3339 or YYYY-MM-DD[ HH:MM[:SS]]", value)
}

// NowInTimezone returns the current time in the given timezone.
func NowInTimezone(tz *time.Location) time.Time {
	if tz == nil {
		tz = UTC
	}
	return time.Now().In(tz)
}
