package timesheet

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/internal/utils"
	"github.com/sitelog/sitelog/pkg/date_window"
	"github.com/sitelog/sitelog/pkg/draft"
	"github.com/sitelog/sitelog/pkg/sheettime"
)

// Gateway is the backend workflow collaborator that persists a finished
// timesheet. Implementations live outside this package.
type Gateway interface {
	Submit(ctx context.Context, payload Payload) error
}

// Config is the timesheet policy: window shape, defaults, and the
// employee-row submission requirement.
type Config struct {
	SpanDays        int
	WeekStartDay    time.Weekday
	DisallowFuture  bool
	DefaultTimeIn   string
	DefaultTimeOut  string
	RequireEmployee bool
	DefaultSite     string
}

// WindowState is what the presentation layer needs to render the date
// navigation controls.
type WindowState struct {
	Start           sheettime.Date
	End             sheettime.Date
	Current         sheettime.Date
	CanStepBackward bool
	CanStepForward  bool
}

type Service interface {
	Form(ctx context.Context) Form
	Window(ctx context.Context) WindowState
	SetField(ctx context.Context, field Field, value string) (Form, error)
	SetRowField(ctx context.Context, collection Collection, index int, field RowField, value string) (Form, error)
	AddRow(ctx context.Context, collection Collection) (Form, error)
	RemoveRow(ctx context.Context, collection Collection, index int) (Form, error)
	Navigate(ctx context.Context, direction Direction) (Form, error)
	NavigateTo(ctx context.Context, date sheettime.Date) (Form, error)
	Submit(ctx context.Context) error
	ResetDrafts(ctx context.Context)
}

// ServiceImpl owns the single process-wide form. The mutex serializes the
// HTTP entry points; within one request everything is synchronous, so a
// mutation is visible to the next read.
type ServiceImpl struct {
	mu        sync.Mutex
	form      Form
	navigator *Navigator
	builder   *Builder
	drafts    draft.Store
	gateway   Gateway
	defaults  Defaults
}

// NewService computes the editable window once, from the clock, and
// positions the form on today clamped into it. The window stays fixed
// for the process lifetime.
func NewService(drafts draft.Store, gateway Gateway, clock utils.Clock, cfg Config) *ServiceImpl {
	today := sheettime.DateOf(clock.Now())
	window := date_window.Compute(today, cfg.SpanDays, cfg.WeekStartDay, cfg.DisallowFuture, today)
	defaults := Defaults{TimeIn: cfg.DefaultTimeIn, TimeOut: cfg.DefaultTimeOut}

	form := NewForm(window.Clamp(today, today, cfg.DisallowFuture), defaults)
	form.Site = cfg.DefaultSite

	return &ServiceImpl{
		form:      form,
		navigator: NewNavigator(window, drafts, clock, cfg.DisallowFuture, defaults),
		builder:   NewBuilder(cfg.RequireEmployee),
		drafts:    drafts,
		gateway:   gateway,
		defaults:  defaults,
	}
}

// Form returns a copy of the current form state.
func (s *ServiceImpl) Form(ctx context.Context) Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotForm()
}

func (s *ServiceImpl) Window(ctx context.Context) WindowState {
	s.mu.Lock()
	defer s.mu.Unlock()

	window := s.navigator.Window()
	return WindowState{
		Start:           window.Start,
		End:             window.End,
		Current:         s.form.Date,
		CanStepBackward: s.navigator.CanStepBackward(s.form.Date),
		CanStepForward:  s.navigator.CanStepForward(s.form.Date),
	}
}

func (s *ServiceImpl) SetField(ctx context.Context, field Field, value string) (Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.form.SetField(field, value); err != nil {
		return Form{}, err
	}
	s.autoSave()
	return s.snapshotForm(), nil
}

func (s *ServiceImpl) SetRowField(ctx context.Context, collection Collection, index int, field RowField, value string) (Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.form.SetRowField(collection, index, field, value); err != nil {
		return Form{}, err
	}
	s.autoSave()
	return s.snapshotForm(), nil
}

func (s *ServiceImpl) AddRow(ctx context.Context, collection Collection) (Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.form.AddRow(collection, s.defaults); err != nil {
		return Form{}, err
	}
	s.autoSave()
	return s.snapshotForm(), nil
}

func (s *ServiceImpl) RemoveRow(ctx context.Context, collection Collection, index int) (Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.form.RemoveRow(collection, index); err != nil {
		return Form{}, err
	}
	s.autoSave()
	return s.snapshotForm(), nil
}

func (s *ServiceImpl) Navigate(ctx context.Context, direction Direction) (Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if direction != DirectionBackward && direction != DirectionForward {
		return Form{}, fmt.Errorf("unknown navigation direction: %q", direction)
	}
	s.navigator.Navigate(&s.form, direction)
	return s.snapshotForm(), nil
}

func (s *ServiceImpl) NavigateTo(ctx context.Context, date sheettime.Date) (Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.navigator.NavigateTo(&s.form, date)
	return s.snapshotForm(), nil
}

// Submit validates the form, hands the payload to the gateway, and
// reports the gateway's result unchanged. The draft is saved before the
// attempt so a failed submission never loses user input; on success the
// form is cleared for the current date while the draft stays behind.
func (s *ServiceImpl) Submit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts.Save(s.form.Date, s.form.Snapshot())

	payload, err := s.builder.Build(s.form)
	if err != nil {
		return err
	}

	if err := s.gateway.Submit(ctx, payload); err != nil {
		log.Errorf("timesheet submission for %s failed: %v", s.form.Date, err)
		return err
	}

	log.Infof("timesheet for %s submitted by %q", s.form.Date, s.form.ReporterName)
	s.form.Reset(s.form.Date, s.defaults)
	return nil
}

// ResetDrafts discards every stored draft. The current form is kept as
// is; only the per-date history goes.
func (s *ServiceImpl) ResetDrafts(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts.ClearAll()
}

func (s *ServiceImpl) autoSave() {
	s.drafts.Save(s.form.Date, s.form.Snapshot())
}

func (s *ServiceImpl) snapshotForm() Form {
	copied := s.form
	copied.Employees = append([]EmployeeRow(nil), s.form.Employees...)
	copied.Subcontractors = append([]SubcontractorRow(nil), s.form.Subcontractors...)
	copied.Plants = append([]PlantRow(nil), s.form.Plants...)
	return copied
}
