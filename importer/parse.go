package importer

import (
	"fmt"
	"strings"
	"time"
)

// Layouts carrying their own UTC offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -0700 MST",
	time.RFC1123Z,
	time.RFC1123,
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006 03:04 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 15:04:05",
	"January 2, 2006 3:04 PM",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	"2006-01-02",
}

// parseTimestamp parses value with the accepted layouts. Timestamps without
// an offset are interpreted in loc. Fractional seconds are accepted after the
// seconds field for every layout.
func parseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range zonedLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	for _, layout := range localLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: unsupported format %q", ErrInvalidTimestamp, value)
}
