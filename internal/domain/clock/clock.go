// Package clock holds the date arithmetic shared by the domain packages.
// All business dates are calendar days in UTC.
package clock

import "time"

const DateLayout = "2006-01-02"

type Clock func() time.Time

func System() time.Time {
	return time.Now().UTC()
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today(c Clock) time.Time {
	if c == nil {
		c = System
	}
	return DateOnly(c())
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

func MustParseDate(value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
