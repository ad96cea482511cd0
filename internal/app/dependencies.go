package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sitelog/sitelog/internal/config"
	"github.com/sitelog/sitelog/internal/event_bus"
	"github.com/sitelog/sitelog/internal/utils"
	"github.com/sitelog/sitelog/pkg/draft"
	"github.com/sitelog/sitelog/pkg/gateway"
	"github.com/sitelog/sitelog/pkg/msauth"
	"github.com/sitelog/sitelog/pkg/reference"
	"github.com/sitelog/sitelog/pkg/timesheet"
	"github.com/sitelog/sitelog/pkg/weather"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	MSAuth  *msauth.Auth
	Backend gateway.Backend

	DraftStore *draft.MemoryStore

	ReferenceService reference.Service
	ReferenceHandler *reference.Handler

	TimesheetService timesheet.Service
	TimesheetHandler *timesheet.Handler

	WeatherClient  *weather.Client
	WeatherService weather.Service
	WeatherHandler *weather.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.MSAuth = msauth.NewAuth(db, cfg)

	backend, err := gateway.New(ctx, cfg, deps.MSAuth)
	if err != nil {
		return nil, err
	}
	deps.Backend = backend

	deps.DraftStore = draft.NewMemoryStore()
	// A fresh roster invalidates drafts referencing the old one.
	deps.EventBus.Subscribe(event_bus.ReferenceReloaded, func(e event_bus.Event) error {
		deps.DraftStore.ClearAll()
		return nil
	})

	deps.ReferenceService = reference.NewServiceImpl(deps.Backend, deps.EventBus)
	deps.ReferenceHandler = reference.NewHandler(deps.ReferenceService)

	deps.TimesheetService = timesheet.NewService(deps.DraftStore, deps.Backend, deps.Clock, timesheet.Config{
		SpanDays:        cfg.Timesheet.SpanDays,
		WeekStartDay:    time.Weekday(cfg.Timesheet.WeekStartDay),
		DisallowFuture:  cfg.Timesheet.DisallowFuture,
		DefaultTimeIn:   cfg.Timesheet.DefaultTimeIn,
		DefaultTimeOut:  cfg.Timesheet.DefaultTimeOut,
		RequireEmployee: cfg.Timesheet.RequireEmployee,
		DefaultSite:     cfg.Timesheet.DefaultSite,
	})
	deps.TimesheetHandler = timesheet.NewHandler(deps.TimesheetService)

	deps.WeatherClient = weather.NewClient()
	deps.WeatherService = weather.NewServiceImpl(deps.WeatherClient, cfg.Weather)
	deps.WeatherHandler = weather.NewHandler(deps.WeatherService)

	return deps, nil
}
