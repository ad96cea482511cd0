package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sitelog/sitelog/internal/utils"
	"github.com/sitelog/sitelog/pkg/draft"
	"github.com/sitelog/sitelog/pkg/sheettime"
)

func serviceFixture(t *testing.T, gateway Gateway) (*ServiceImpl, sheettime.Date) {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)}
	service := NewService(draft.NewMemoryStore(), gateway, clock, Config{
		SpanDays:       7,
		WeekStartDay:   time.Monday,
		DisallowFuture: true,
		DefaultTimeIn:  "07:00",
		DefaultTimeOut: "15:30",
		DefaultSite:    "JSBHQ",
	})
	return service, sheettime.DateOf(clock.Now())
}

func TestServiceStartsOnTodayWithDefaults(t *testing.T) {
	service, today := serviceFixture(t, &StubGateway{})

	form := service.Form(context.Background())

	assert.Equal(t, today, form.Date)
	assert.Equal(t, "JSBHQ", form.Site)
	assert.Equal(t, "07:00", form.UserStartTime)
	assert.Equal(t, "15:30", form.UserEndTime)
}

func TestServiceWindowState(t *testing.T) {
	service, today := serviceFixture(t, &StubGateway{})

	state := service.Window(context.Background())

	assert.Equal(t, today.AddDays(-3), state.Start) // Monday
	assert.Equal(t, today, state.Current)
	assert.True(t, state.CanStepBackward)
	assert.False(t, state.CanStepForward)
}

func TestServiceRejectsMalformedTimeWithoutCorruptingState(t *testing.T) {
	service, _ := serviceFixture(t, &StubGateway{})
	ctx := context.Background()

	_, err := service.SetField(ctx, FieldUserStartTime, "25:00")
	assert.ErrorIs(t, err, sheettime.ErrMalformedTime)

	form := service.Form(ctx)
	assert.Equal(t, "07:00", form.UserStartTime)
}

func TestServiceNavigationRoundTripRestoresDraftExactly(t *testing.T) {
	service, today := serviceFixture(t, &StubGateway{})
	ctx := context.Background()

	_, err := service.SetField(ctx, FieldTasksCompleted, "Poured slab")
	assert.NoError(t, err)
	_, err = service.AddRow(ctx, CollectionEmployees)
	assert.NoError(t, err)
	_, err = service.SetRowField(ctx, CollectionEmployees, 0, RowFieldName, "Jane Smith")
	assert.NoError(t, err)

	form, err := service.Navigate(ctx, DirectionBackward)
	assert.NoError(t, err)
	assert.Equal(t, today.AddDays(-1), form.Date)
	assert.Empty(t, form.TasksCompleted)
	assert.Empty(t, form.Employees)

	form, err = service.Navigate(ctx, DirectionForward)
	assert.NoError(t, err)
	assert.Equal(t, today, form.Date)
	assert.Equal(t, "Poured slab", form.TasksCompleted)
	assert.Len(t, form.Employees, 1)
	assert.Equal(t, EmployeeRow{Name: "Jane Smith", TimeIn: "07:00", TimeOut: "15:30"}, form.Employees[0])
}

func TestServiceNavigateToClampsIntoWindow(t *testing.T) {
	service, today := serviceFixture(t, &StubGateway{})

	form, err := service.NavigateTo(context.Background(), sheettime.NewDate(2024, time.February, 1))

	assert.NoError(t, err)
	assert.Equal(t, today.AddDays(-3), form.Date)
}

func TestServiceSubmitSuccessClearsFormButKeepsDraft(t *testing.T) {
	gateway := &StubGateway{}
	service, today := serviceFixture(t, gateway)
	ctx := context.Background()

	_, err := service.SetField(ctx, FieldReporterName, "Alex Mason")
	assert.NoError(t, err)
	_, err = service.SetField(ctx, FieldTasksCompleted, "Poured slab")
	assert.NoError(t, err)

	assert.NoError(t, service.Submit(ctx))
	assert.Len(t, gateway.Payloads, 1)
	assert.Equal(t, today.EpochDays(), gateway.Payloads[0].Details[1])

	form := service.Form(ctx)
	assert.Empty(t, form.TasksCompleted)
	assert.Equal(t, "Alex Mason", form.ReporterName, "reporter survives a reset")

	// The draft saved before the attempt stays behind for the day.
	saved, ok := service.drafts.Load(today)
	assert.True(t, ok)
	assert.Equal(t, "Poured slab", saved.TasksCompleted)
}

func TestServiceSubmitFailurePreservesFormAndDraft(t *testing.T) {
	gateway := &StubGateway{Err: errors.New("flow endpoint returned 502")}
	service, today := serviceFixture(t, gateway)
	ctx := context.Background()

	_, err := service.SetField(ctx, FieldTasksCompleted, "Poured slab")
	assert.NoError(t, err)

	err = service.Submit(ctx)
	assert.ErrorContains(t, err, "flow endpoint returned 502")

	form := service.Form(ctx)
	assert.Equal(t, "Poured slab", form.TasksCompleted)

	saved, ok := service.drafts.Load(today)
	assert.True(t, ok)
	assert.Equal(t, "Poured slab", saved.TasksCompleted)
}

func TestServiceSubmitWithoutNotesFails(t *testing.T) {
	gateway := &StubGateway{}
	service, _ := serviceFixture(t, gateway)

	err := service.Submit(context.Background())

	assert.ErrorIs(t, err, ErrNoNotesProvided)
	assert.Empty(t, gateway.Payloads)
}

func TestServiceResetDraftsDiscardsHistory(t *testing.T) {
	service, today := serviceFixture(t, &StubGateway{})
	ctx := context.Background()

	_, err := service.SetField(ctx, FieldTasksCompleted, "Poured slab")
	assert.NoError(t, err)
	service.ResetDrafts(ctx)

	_, ok := service.drafts.Load(today)
	assert.False(t, ok)
}

func TestServiceRemoveRowOutOfRangeIsIgnored(t *testing.T) {
	service, _ := serviceFixture(t, &StubGateway{})
	ctx := context.Background()

	_, err := service.AddRow(ctx, CollectionPlants)
	assert.NoError(t, err)

	form, err := service.RemoveRow(ctx, CollectionPlants, 5)
	assert.NoError(t, err)
	assert.Len(t, form.Plants, 1)
}
