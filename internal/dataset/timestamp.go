package dataset

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Parsing also accepts fields without zero padding, e.g. 2022-4-1 9:5:7.
const (
	dateParseLayout     = "2006-1-2"
	dateTimeParseLayout = "2006-1-2 15:4:5"
)

// ErrTimestamp is returned for strings matching neither layout.
var ErrTimestamp = errors.New("unrecognized timestamp")

// ParseTimestamp parses a date-only (YYYY-MM-DD) or date-time
// (YYYY-MM-DD HH:MM:SS) string. Anything up to ten characters is treated as
// a date, anything longer as a date-time. No zone is applied.
func ParseTimestamp(s string) (time.Time, error) {
	layout := dateTimeParseLayout
	if len(s) < 11 {
		layout = dateParseLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrTimestamp, s, err)
	}
	return t, nil
}

// MustDate parses a YYYY-MM-DD literal and panics on failure. For
// package-level defaults only.
func MustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
