package subtitle

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// returned when a timestamp is not in HH:MM:SS,mmm form
var ErrMalformedTimestamp = errors.New("malformed timestamp")

var timestampRegex = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)

// DecodeTimestamp converts an SRT timestamp into the duration since the
// start of the file.
func DecodeTimestamp(text string) (time.Duration, error) {
	matches := timestampRegex.FindStringSubmatch(text)
	if len(matches) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
	}
	return parseSRTTimestamp(matches[1], matches[2], matches[3], matches[4])
}

func parseSRTTimestamp(
	hours, minutes, seconds, millis string,
) (time.Duration, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, fmt.Errorf("%w: hours %q", ErrMalformedTimestamp, hours)
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, fmt.Errorf("%w: minutes %q", ErrMalformedTimestamp, minutes)
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, fmt.Errorf("%w: seconds %q", ErrMalformedTimestamp, seconds)
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, fmt.Errorf("%w: milliseconds %q", ErrMalformedTimestamp, millis)
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// EncodeTimestamp formats d as HH:MM:SS,mmm. Sub-millisecond precision is
// truncated. Negative values get a leading minus sign.
func EncodeTimestamp(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := d.Milliseconds()
	hours := total / 3_600_000
	minutes := (total / 60_000) % 60
	seconds := (total / 1000) % 60
	millis := total % 1000

	return fmt.Sprintf("%s%02d:%02d:%02d,%03d", sign, hours, minutes, seconds, millis)
}
