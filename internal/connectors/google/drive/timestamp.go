package drive

import (
	"fmt"
	"time"
)

// ParseModifiedTime converts a Drive modifiedTime into epoch seconds.
//
// The wall-clock fields of the timestamp are taken as written, sub-seconds
// dropped, and read as standard time in loc: daylight saving is never
// applied, even in summer. With loc set to time.Local the result is skewed
// by the host's standard UTC offset. Cached files written by earlier runs
// were compared against the same skew.
func ParseModifiedTime(s string, loc *time.Location) (int64, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("parse modified time %q: %w", s, err)
	}
	if loc == nil {
		loc = time.Local
	}

	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	wall := time.Date(year, month, day, hour, minute, sec, 0, time.UTC).Unix()

	return wall - int64(standardOffset(year, loc)), nil
}

// standardOffset returns loc's UTC offset in seconds outside daylight saving
// for the given year. DST always moves clocks forward, so the smaller of the
// January and July offsets is standard time in either hemisphere.
func standardOffset(year int, loc *time.Location) int {
	_, jan := time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, jul := time.Date(year, time.July, 1, 0, 0, 0, 0, loc).Zone()
	return min(jan, jul)
}
