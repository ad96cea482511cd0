package sheettime

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "start of day", text: "00:00", want: TimeOfDay{0, 0}},
		{name: "default site start", text: "07:00", want: TimeOfDay{7, 0}},
		{name: "default site end", text: "15:30", want: TimeOfDay{15, 30}},
		{name: "end of day", text: "23:59", want: TimeOfDay{23, 59}},
		{name: "unpadded components", text: "7:5", want: TimeOfDay{7, 5}},
		{name: "hour out of range", text: "25:00", wantErr: true},
		{name: "minute out of range", text: "07:60", wantErr: true},
		{name: "negative hour", text: "-1:30", wantErr: true},
		{name: "not a time", text: "abc", wantErr: true},
		{name: "empty", text: "", wantErr: true},
		{name: "missing minute", text: "07:", wantErr: true},
		{name: "too many components", text: "07:00:00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedTime) {
					t.Errorf("Parse(%q) error = %v, want ErrMalformedTime", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 7 {
			original := TimeOfDay{Hour: hour, Minute: minute}
			parsed, err := Parse(original.String())
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", original.String(), err)
			}
			if parsed != original {
				t.Fatalf("round trip mismatch: %v -> %q -> %v", original, original.String(), parsed)
			}
		}
	}
}

func TestFractionRangeAndMonotonicity(t *testing.T) {
	previous := -1.0
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			fraction := TimeOfDay{Hour: hour, Minute: minute}.Fraction()
			if fraction < 0 || fraction >= 1 {
				t.Fatalf("fraction of %02d:%02d = %v, want within [0, 1)", hour, minute, fraction)
			}
			if fraction <= previous {
				t.Fatalf("fraction of %02d:%02d = %v not greater than previous %v", hour, minute, fraction, previous)
			}
			previous = fraction
		}
	}
}

func TestFractionOf(t *testing.T) {
	got, err := FractionOf("06:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.25 {
		t.Errorf("FractionOf(06:00) = %v, want 0.25", got)
	}

	got, err = FractionOf("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("FractionOf(blank) = %v, want 0", got)
	}

	if _, err := FractionOf("25:00"); !errors.Is(err, ErrMalformedTime) {
		t.Errorf("FractionOf(25:00) error = %v, want ErrMalformedTime", err)
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-02-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.String() != "2024-02-15" {
		t.Errorf("String() = %q, want 2024-02-15", date.String())
	}
	if date.Weekday() != time.Thursday {
		t.Errorf("Weekday() = %v, want Thursday", date.Weekday())
	}

	if _, err := ParseDate("15/02/2024"); !errors.Is(err, ErrMalformedDate) {
		t.Errorf("ParseDate error = %v, want ErrMalformedDate", err)
	}
}

func TestDateArithmetic(t *testing.T) {
	date := NewDate(2024, time.February, 28)
	next := date.AddDays(2)
	if next.String() != "2024-03-01" {
		t.Errorf("AddDays over leap day = %q, want 2024-03-01", next.String())
	}
	if !date.Before(next) || !next.After(date) {
		t.Error("Before/After inconsistent")
	}
	if !date.Equal(NewDate(2024, time.February, 28)) {
		t.Error("Equal returned false for identical dates")
	}
}

func TestEpochDays(t *testing.T) {
	if got := NewDate(1970, time.January, 1).EpochDays(); got != 0 {
		t.Errorf("EpochDays(1970-01-01) = %v, want 0", got)
	}
	if got := NewDate(2024, time.February, 15).EpochDays(); got != 19768 {
		t.Errorf("EpochDays(2024-02-15) = %v, want 19768", got)
	}
}
