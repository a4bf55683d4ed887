package worklog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedDuration = errors.New("malformed duration")

// Duration is an elapsed time split into its clock components. Components are
// kept as given by the source; minutes and seconds are not carried over.
type Duration struct {
	Hours   int
	Minutes int
	Seconds int
}

// ParseDuration parses an "H:M:S" string.
func ParseDuration(raw string) (Duration, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return Duration{}, fmt.Errorf("%w: %q (expected H:M:S)", ErrMalformedDuration, raw)
	}

	values := make([]int, len(parts))
	for i, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Duration{}, fmt.Errorf("%w: %q: %v", ErrMalformedDuration, raw, err)
		}
		if value < 0 {
			return Duration{}, fmt.Errorf("%w: %q has a negative component", ErrMalformedDuration, raw)
		}
		values[i] = value
	}

	return Duration{Hours: values[0], Minutes: values[1], Seconds: values[2]}, nil
}

// String renders the duration as zero-padded HH:MM:SS. Hours are not capped.
func (d Duration) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
}

func (d Duration) Elapsed() time.Duration {
	return time.Duration(d.Hours)*time.Hour + time.Duration(d.Minutes)*time.Minute + time.Duration(d.Seconds)*time.Second
}
