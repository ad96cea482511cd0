package date_window

import (
	"time"

	"github.com/sitelog/sitelog/pkg/sheettime"
)

// Window is the inclusive range of dates currently open for editing.
// It is computed once at startup and clamps rather than rolls.
type Window struct {
	Start sheettime.Date
	End   sheettime.Date
}

// AnchorWeekStart finds the most recent occurrence of weekStart on or
// before ref, including ref itself when it matches.
func AnchorWeekStart(ref sheettime.Date, weekStart time.Weekday) sheettime.Date {
	daysSince := (int(ref.Weekday()) - int(weekStart) + 7) % 7
	return ref.AddDays(-daysSince)
}

// Compute builds a window of spanDays days anchored to the most recent
// weekStart weekday on or before ref. When disallowFuture is set the end
// is clamped to today.
func Compute(ref sheettime.Date, spanDays int, weekStart time.Weekday, disallowFuture bool, today sheettime.Date) Window {
	start := AnchorWeekStart(ref, weekStart)
	end := start.AddDays(spanDays - 1)
	if disallowFuture && end.After(today) {
		end = today
	}
	return Window{Start: start, End: end}
}

// Clamp pulls candidate back inside the window. With disallowFuture set,
// dates past today clamp to today even when the window end is later.
func (w Window) Clamp(candidate, today sheettime.Date, disallowFuture bool) sheettime.Date {
	switch {
	case candidate.Before(w.Start):
		return w.Start
	case disallowFuture && candidate.After(today):
		return today
	case candidate.After(w.End):
		return w.End
	}
	return candidate
}

func (w Window) CanStepBackward(current sheettime.Date) bool {
	return current.After(w.Start)
}

func (w Window) CanStepForward(current, today sheettime.Date, disallowFuture bool) bool {
	return current.Before(w.End) && (!disallowFuture || current.Before(today))
}

// Step moves current one day backward or forward. A step that would leave
// the window is silently refused and returns current unchanged; the UI
// disables its navigation buttons at the boundary.
func (w Window) Step(current sheettime.Date, forward bool, today sheettime.Date, disallowFuture bool) sheettime.Date {
	if forward {
		if !w.CanStepForward(current, today, disallowFuture) {
			return current
		}
		return current.AddDays(1)
	}
	if !w.CanStepBackward(current) {
		return current
	}
	return current.AddDays(-1)
}
