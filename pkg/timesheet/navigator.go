package timesheet

import (
	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/internal/utils"
	"github.com/sitelog/sitelog/pkg/date_window"
	"github.com/sitelog/sitelog/pkg/draft"
	"github.com/sitelog/sitelog/pkg/sheettime"
)

// Direction of a single-day navigation step.
type Direction string

const (
	DirectionBackward Direction = "backward"
	DirectionForward  Direction = "forward"
)

// Navigator moves the form between dates inside the editable window,
// saving the outgoing draft and restoring the incoming one. The window
// is fixed for the navigator's lifetime.
type Navigator struct {
	window         date_window.Window
	drafts         draft.Store
	clock          utils.Clock
	disallowFuture bool
	defaults       Defaults
}

func NewNavigator(window date_window.Window, drafts draft.Store, clock utils.Clock, disallowFuture bool, defaults Defaults) *Navigator {
	return &Navigator{
		window:         window,
		drafts:         drafts,
		clock:          clock,
		disallowFuture: disallowFuture,
		defaults:       defaults,
	}
}

func (n *Navigator) Window() date_window.Window {
	return n.window
}

func (n *Navigator) today() sheettime.Date {
	return sheettime.DateOf(n.clock.Now())
}

// Navigate saves the form's current draft, steps the date, and loads the
// draft for the new date. A step outside the window is a no-op beyond
// the save.
func (n *Navigator) Navigate(form *Form, direction Direction) {
	n.drafts.Save(form.Date, form.Snapshot())

	next := n.window.Step(form.Date, direction == DirectionForward, n.today(), n.disallowFuture)
	if next.Equal(form.Date) {
		log.Debugf("navigation %s refused at %s: window boundary", direction, form.Date)
		return
	}
	n.load(form, next)
}

// NavigateTo jumps to candidate, clamped into the window.
func (n *Navigator) NavigateTo(form *Form, candidate sheettime.Date) {
	n.drafts.Save(form.Date, form.Snapshot())

	next := n.window.Clamp(candidate, n.today(), n.disallowFuture)
	if next.Equal(form.Date) {
		return
	}
	n.load(form, next)
}

func (n *Navigator) load(form *Form, date sheettime.Date) {
	if snapshot, ok := n.drafts.Load(date); ok {
		log.Debugf("restoring draft for %s", date)
		form.ApplySnapshot(date, snapshot, n.defaults)
		return
	}
	form.Reset(date, n.defaults)
}

func (n *Navigator) CanStepBackward(current sheettime.Date) bool {
	return n.window.CanStepBackward(current)
}

func (n *Navigator) CanStepForward(current sheettime.Date) bool {
	return n.window.CanStepForward(current, n.today(), n.disallowFuture)
}
