package domain

import "time"

// DateLayout is the storage and wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateOf returns the civil date of t (in t's location) as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string. Timestamps with a time part are
// accepted and truncated to their date.
func ParseDate(v string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, Invalid("invalid date %q", v)
	}
	return DateOf(t), nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Clock yields the current calendar date in a fixed location.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

// NewClock returns a clock reading wall time in loc (local time when nil).
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Location: loc, Now: time.Now}
}

// Today returns the current civil date.
func (c Clock) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return DateOf(now().In(loc))
}
