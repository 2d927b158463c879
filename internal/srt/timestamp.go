package srt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampFields names the components of a timestamp in the order they appear
var timestampFields = [4]string{"hours", "minutes", "seconds", "milliseconds"}

// DecodeTimestamp converts an HH:MM:SS,mmm token into a duration.
// Colons and commas are interchangeable separators, components past the
// fourth are ignored, and out-of-range minutes or seconds fold into the total.
func DecodeTimestamp(token string) (time.Duration, error) {
	parts := splitTimestamp(strings.TrimSpace(token))
	if len(parts) < len(timestampFields) {
		return 0, fmt.Errorf("%w: %q has %d of 4 components", ErrTimestampParsing, token, len(parts))
	}

	var values [4]uint64
	for i, field := range timestampFields {
		bitSize := 64
		if i == 3 {
			bitSize = 32
		}
		v, err := parseUnsigned(parts[i], bitSize)
		if err != nil {
			return 0, numericError(field, parts[i], err)
		}
		values[i] = v
	}

	return foldTimestamp(token, values)
}

// maxSeconds is the largest whole second count a time.Duration can hold
const maxSeconds = uint64(math.MaxInt64 / int64(time.Second))

// foldTimestamp sums the components without wrapping past the Duration range
func foldTimestamp(token string, values [4]uint64) (time.Duration, error) {
	h, m, s, ms := values[0], values[1], values[2], values[3]
	if h > maxSeconds/3600 || m > maxSeconds/60 || s > maxSeconds {
		return 0, fmt.Errorf("%w: %q", ErrTimestampRange, token)
	}

	total := h*3600 + m*60 + s + ms/1000
	if total > maxSeconds {
		return 0, fmt.Errorf("%w: %q", ErrTimestampRange, token)
	}

	nanos := total*uint64(time.Second) + (ms%1000)*uint64(time.Millisecond)
	if nanos > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q", ErrTimestampRange, token)
	}
	return time.Duration(nanos), nil
}

// parseUnsigned parses a base 10 unsigned integer, allowing one leading '+'
func parseUnsigned(s string, bitSize int) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, bitSize)
}

// EncodeTimestamp formats a duration as HH:MM:SS,mmm, truncating below a millisecond
func EncodeTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", int64(h), int64(m), int64(s), int64(ms))
}

// splitTimestamp splits on either separator and keeps empty components,
// so "01::02,003" fails as a bad number rather than a short timestamp
func splitTimestamp(s string) []string {
	return strings.Split(strings.ReplaceAll(s, ",", ":"), ":")
}
