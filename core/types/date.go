package types

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the wire
const DateLayout = "2006-01-02"

// Date is a civil calendar date in UTC.
// Text that failed to parse is retained so it survives export unchanged;
// such a date is not Valid and never compares equal to a real date.
type Date struct {
	t   time.Time
	raw string
	ok  bool
}

// NewDate creates a date from its components
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), ok: true}
}

// DateOf truncates a timestamp to its UTC calendar date
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// Today returns the current UTC date
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD date. On failure the returned Date keeps the
// original text and ok is false.
func ParseDate(s string) (Date, bool) {
	text := strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return Date{raw: s}, false
	}
	return Date{t: t, ok: true}, true
}

// MustParseDate parses a date or panics. Intended for literals.
func MustParseDate(s string) Date {
	d, ok := ParseDate(s)
	if !ok {
		panic("types: invalid date literal " + s)
	}
	return d
}

// Valid reports whether the date holds a real calendar date
func (d Date) Valid() bool {
	return d.ok
}

// Time returns the date as midnight UTC
func (d Date) Time() time.Time {
	return d.t
}

// Compare returns -1, 0 or +1. Both dates must be valid.
func (d Date) Compare(o Date) int {
	return d.t.Compare(o.t)
}

// Before reports whether d is strictly before o
func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

// After reports whether d is strictly after o
func (d Date) After(o Date) bool {
	return d.t.After(o.t)
}

// String returns YYYY-MM-DD, or the retained text for an invalid date
func (d Date) String() string {
	if !d.Valid() {
		return d.raw
	}
	return d.t.Format(DateLayout)
}

// MarshalJSON encodes the date as a string
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a date string; invalid text is retained, not rejected
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d, _ = ParseDate(s)
	return nil
}
