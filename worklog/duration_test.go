package worklog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single digit hours", input: "1:30:00", want: "01:30:00"},
		{name: "zero hours", input: "0:45:10", want: "00:45:10"},
		{name: "already padded", input: "08:05:09", want: "08:05:09"},
		{name: "more than a day", input: "27:00:01", want: "27:00:01"},
		{name: "three digit hours", input: "123:4:5", want: "123:04:05"},
		{name: "surrounding spaces", input: " 2 : 3 : 4 ", want: "02:03:04"},
		{name: "minutes not carried", input: "0:75:00", want: "00:75:00"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDuration(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestParseDuration_Malformed(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "1:30", "1:30:00:00", "a:b:c", "1:30:xx", "1.5:00:00", "-1:00:00", "::"} {
		_, err := ParseDuration(input)
		require.ErrorIs(t, err, ErrMalformedDuration, "input %q", input)
	}
}

func TestDuration_RoundTripKeepsElapsedTime(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"1:30:00", "0:0:1", "100:59:59", "12:00:00"} {
		first, err := ParseDuration(input)
		require.NoError(t, err)

		second, err := ParseDuration(first.String())
		require.NoError(t, err)
		assert.Equal(t, first.Elapsed(), second.Elapsed(), "input %q", input)
	}

	d, err := ParseDuration("1:30:15")
	require.NoError(t, err)
	assert.Equal(t, time.Hour+30*time.Minute+15*time.Second, d.Elapsed())
}
