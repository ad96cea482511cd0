package date_window

import (
	"testing"
	"time"

	"github.com/sitelog/sitelog/pkg/sheettime"
)

func date(text string) sheettime.Date {
	d, err := sheettime.ParseDate(text)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAnchorWeekStart(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		weekStart time.Weekday
		want      string
	}{
		{name: "mid week back to Monday", ref: "2024-02-15", weekStart: time.Monday, want: "2024-02-12"},
		{name: "ref is the anchor weekday", ref: "2024-02-15", weekStart: time.Thursday, want: "2024-02-15"},
		{name: "anchor in previous week", ref: "2024-02-14", weekStart: time.Thursday, want: "2024-02-08"},
		{name: "Sunday start from Saturday", ref: "2024-02-17", weekStart: time.Sunday, want: "2024-02-11"},
		{name: "crosses month boundary", ref: "2024-03-02", weekStart: time.Monday, want: "2024-02-26"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnchorWeekStart(date(tt.ref), tt.weekStart)
			if got.String() != tt.want {
				t.Errorf("AnchorWeekStart(%s, %v) = %s, want %s", tt.ref, tt.weekStart, got, tt.want)
			}
		})
	}
}

func TestComputeClampsEndToToday(t *testing.T) {
	today := date("2024-02-15") // a Thursday

	window := Compute(today, 7, time.Monday, true, today)
	if window.Start.String() != "2024-02-12" {
		t.Errorf("window start = %s, want 2024-02-12", window.Start)
	}
	if window.End.String() != "2024-02-15" {
		t.Errorf("window end = %s, want 2024-02-15 (clamped to today)", window.End)
	}

	// Future dates allowed: full week remains open.
	window = Compute(today, 7, time.Monday, false, today)
	if window.End.String() != "2024-02-18" {
		t.Errorf("window end = %s, want 2024-02-18", window.End)
	}
}

func TestComputeFortnight(t *testing.T) {
	today := date("2024-02-16") // Friday, most recent Thursday is 2024-02-15

	window := Compute(today, 14, time.Thursday, false, today)
	if window.Start.String() != "2024-02-15" {
		t.Errorf("window start = %s, want 2024-02-15", window.Start)
	}
	if window.End.String() != "2024-02-28" {
		t.Errorf("window end = %s, want 2024-02-28", window.End)
	}
}

func TestClamp(t *testing.T) {
	today := date("2024-02-15")
	window := Compute(today, 7, time.Monday, true, today)

	tests := []struct {
		name      string
		candidate string
		want      string
	}{
		{name: "before window clamps to start", candidate: "2024-02-01", want: "2024-02-12"},
		{name: "inside window unchanged", candidate: "2024-02-13", want: "2024-02-13"},
		{name: "after window clamps to today", candidate: "2024-02-20", want: "2024-02-15"},
		{name: "start itself unchanged", candidate: "2024-02-12", want: "2024-02-12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := window.Clamp(date(tt.candidate), today, true)
			if got.String() != tt.want {
				t.Errorf("Clamp(%s) = %s, want %s", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestStepBoundaries(t *testing.T) {
	today := date("2024-02-15")
	window := Compute(today, 7, time.Monday, true, today)

	if window.CanStepForward(today, today, true) {
		t.Error("CanStepForward at today should be false when future dates are disallowed")
	}
	if got := window.Step(today, true, today, true); !got.Equal(today) {
		t.Errorf("forward step at boundary moved to %s, want no-op", got)
	}

	start := window.Start
	if window.CanStepBackward(start) {
		t.Error("CanStepBackward at window start should be false")
	}
	if got := window.Step(start, false, today, true); !got.Equal(start) {
		t.Errorf("backward step at boundary moved to %s, want no-op", got)
	}

	mid := date("2024-02-13")
	if got := window.Step(mid, true, today, true); got.String() != "2024-02-14" {
		t.Errorf("forward step = %s, want 2024-02-14", got)
	}
	if got := window.Step(mid, false, today, true); got.String() != "2024-02-12" {
		t.Errorf("backward step = %s, want 2024-02-12", got)
	}
}
