package sheettime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedTime = errors.New("malformed time of day")
var ErrMalformedDate = errors.New("malformed date")

const millisPerDay = 24 * 60 * 60 * 1000

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Parse parses "HH:MM" text into a TimeOfDay. Anything that is not two
// colon-separated numbers within range is rejected with ErrMalformedTime.
func Parse(text string) (TimeOfDay, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Fraction returns the time of day as a fraction of 24 hours, the serial
// time convention used by the spreadsheet backend.
func (t TimeOfDay) Fraction() float64 {
	return (float64(t.Hour) + float64(t.Minute)/60) / 24
}

// FractionOf converts "HH:MM" text to a day fraction. Blank text encodes
// as 0 because the backend serializes blank times as zero, not null.
// Malformed non-blank text is rejected rather than silently corrupting
// the sheet.
func FractionOf(text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	t, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return t.Fraction(), nil
}

// Date is a calendar date with no time component. The zero value is the
// zero date.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses the canonical "YYYY-MM-DD" form.
func ParseDate(text string) (Date, error) {
	t, err := time.Parse("2006-01-02", text)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, text)
	}
	return Date{t: t.UTC()}, nil
}

func (d Date) String() string {
	return d.t.Format("2006-01-02")
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// EpochDays returns the date as fractional days since the Unix epoch:
// the UTC midnight timestamp in milliseconds over milliseconds per day.
// This is the numeric date encoding the spreadsheet workflow expects.
func (d Date) EpochDays() float64 {
	return float64(d.t.UnixMilli()) / millisPerDay
}
