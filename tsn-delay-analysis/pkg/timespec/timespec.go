// =============================================================================
// pkg/timespec/timespec.go - Timestamp Codec
// =============================================================================
//
// Converts between the textual timestamp forms written by raw-l2-send and
// raw-l2-rcv (and accepted on the command line) and int64 nanoseconds.
//
// ACCEPTED INPUT:
//
//	"123456789"           bare nanoseconds
//	"1567611606.749999"   seconds.fraction, fraction right-padded to 9 digits
//
// OUTPUT:
//
//	Format(1500000000, false)  -> "1.500000000"
//	Format(200, true)          -> "+0.000000200"
//	Format(-200, true)         -> "-0.000000200"
//
// =============================================================================

package timespec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/types"
)

// ErrInvalidTimestamp is returned for any text that is not a timestamp.
// Callers treat it as fatal.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// nsecDigits is the width of the nanosecond field.
const nsecDigits = 9

// Parse converts "ns" or "sec.nsec" into nanoseconds.
//
// A fraction shorter than 9 digits is padded with zeros on the right. A longer
// fraction is not truncated: it is read as a plain nanosecond count and added
// to the seconds, so "1.1234567891" yields 1e9 + 1234567891.
func Parse(text string) (int64, error) {
	words := strings.Split(text, ".")

	var sec, nsec int64
	var err error

	switch len(words) {
	case 1:
		nsec, err = strconv.ParseInt(words[0], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidTimestamp, "invalid time %s", text)
		}
	case 2:
		sec, err = strconv.ParseInt(words[0], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidTimestamp, "invalid time %s", text)
		}
		frac := words[1]
		if len(frac) < nsecDigits {
			frac += strings.Repeat("0", nsecDigits-len(frac))
		}
		nsec, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidTimestamp, "invalid time %s", text)
		}
	default:
		return 0, errors.Wrapf(ErrInvalidTimestamp, "invalid time %s", text)
	}

	return sec*types.NsecPerSec + nsec, nil
}

// MustParse is Parse for constants in tests and defaults. It panics on error.
func MustParse(text string) int64 {
	ns, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return ns
}

// Format renders ns as [sign]sec.nnnnnnnnn.
//
// Negative values always carry '-'. Non-negative values carry '+' only when
// relative is set.
func Format(ns int64, relative bool) string {
	prefix := ""
	if ns < 0 {
		prefix = "-"
		ns = -ns
	} else if relative {
		prefix = "+"
	}

	return fmt.Sprintf("%s%d.%09d", prefix, ns/types.NsecPerSec, ns%types.NsecPerSec)
}

// UTCToTAI adds a UTC-to-TAI offset to a UTC nanosecond value.
func UTCToTAI(ns, offsetNs int64) int64 {
	return ns + offsetNs
}
