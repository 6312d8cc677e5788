package timespec

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"37000000000", 37000000000},
		{"37.0", 37000000000},
		{"37", 37},
		{"1.5", 1500000000},
		{"1643.000000200", 1643000000200},
		{"0.001", 1000000},
		{"5.", 5000000000},
		{"1567611606.749999008", 1567611606749999008},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseLongFractionIsNotTruncated(t *testing.T) {
	got, err := Parse("1.1234567891")
	require.NoError(t, err)
	require.Equal(t, int64(1000000000+1234567891), got)
}

func TestParseRejectsMultipleSeparators(t *testing.T) {
	_, err := Parse("1.2.3")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidTimestamp))
	require.Contains(t, err.Error(), "1.2.3")
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", ".5", "1.x", "[1.0]"} {
		_, err := Parse(in)
		require.Error(t, err, in)
		require.True(t, errors.Is(err, ErrInvalidTimestamp), in)
	}
}

func TestFormat(t *testing.T) {
	require.Equal(t, "1.500000000", Format(1500000000, false))
	require.Equal(t, "0.000000000", Format(0, false))
	require.Equal(t, "+0.000000000", Format(0, true))
	require.Equal(t, "+0.000000200", Format(200, true))
	require.Equal(t, "-0.000000200", Format(-200, true))
	require.Equal(t, "-0.000000200", Format(-200, false))
	require.Equal(t, "-2.000000001", Format(-2000000001, false))
	require.Equal(t, "1567611606.749999008", Format(1567611606749999008, false))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, 999999999, 1000000000, 1643000000200, 1567611606749999008} {
		got, err := Parse(Format(n, false))
		require.NoError(t, err)
		require.Equal(t, n, got)
	}

	// The sign is display only; negative values round trip to their magnitude
	// once the '-' is dropped.
	got, err := Parse(Format(-1500, false)[1:])
	require.NoError(t, err)
	require.Equal(t, int64(1500), got)
}

func TestUTCToTAI(t *testing.T) {
	require.Equal(t, int64(37000000100), UTCToTAI(100, 37000000000))
}
