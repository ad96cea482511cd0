package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sitelog/sitelog/pkg/sheettime"
)

func testForm(t *testing.T) Form {
	t.Helper()
	date, err := sheettime.ParseDate("2024-02-15")
	assert.NoError(t, err)

	form := NewForm(date, Defaults{TimeIn: "07:00", TimeOut: "15:30"})
	form.ReporterName = "Alex Mason"
	form.Site = "JSBHQ"
	form.Weather = "Partly cloudy · 18°C"
	form.TasksCompleted = "Poured slab for unit 2"
	return form
}

func TestBuildRejectsFormWithoutNotes(t *testing.T) {
	form := testForm(t)
	form.TasksCompleted = "   "
	form.Employees = []EmployeeRow{{Name: "Jane Smith", TimeIn: "07:00", TimeOut: "15:30"}}

	_, err := NewBuilder(false).Build(form)

	assert.ErrorIs(t, err, ErrNoNotesProvided)
}

func TestBuildAcceptsSetbacksAloneAsNotes(t *testing.T) {
	form := testForm(t)
	form.TasksCompleted = ""
	form.Setbacks = "Rain stopped work at noon"

	payload, err := NewBuilder(false).Build(form)

	assert.NoError(t, err)
	assert.Equal(t, "Rain stopped work at noon", payload.Details[4])
}

func TestBuildRequiresNamedEmployeeWhenConfigured(t *testing.T) {
	form := testForm(t)
	form.Employees = []EmployeeRow{{TimeIn: "07:00", TimeOut: "15:30"}}

	_, err := NewBuilder(true).Build(form)
	assert.ErrorIs(t, err, ErrNoEmployeesProvided)

	form.Employees[0].Name = "Jane Smith"
	_, err = NewBuilder(true).Build(form)
	assert.NoError(t, err)
}

func TestBuildDetailsTuple(t *testing.T) {
	form := testForm(t)

	payload, err := NewBuilder(false).Build(form)

	assert.NoError(t, err)
	assert.Len(t, payload.Details, 5)
	assert.Equal(t, "Alex Mason", payload.Details[0])
	assert.Equal(t, float64(19768), payload.Details[1])
	assert.Equal(t, "JSBHQ", payload.Details[2])
	assert.Equal(t, "Partly cloudy · 18°C", payload.Details[3])
	assert.Equal(t, "Poured slab for unit 2", payload.Details[4])
}

func TestBuildCombinesNotesSections(t *testing.T) {
	form := testForm(t)
	form.Setbacks = "Concrete delivery late"
	form.RFI = "Confirm lintel spec"

	payload, err := NewBuilder(false).Build(form)

	assert.NoError(t, err)
	assert.Equal(t, "Poured slab for unit 2\n\nConcrete delivery late\n\nConfirm lintel spec", payload.Details[4])
}

func TestBuildEncodesTimesAsDayFractions(t *testing.T) {
	form := testForm(t)
	form.Employees = []EmployeeRow{{Name: "Jane Smith", TimeIn: "07:00", TimeOut: "15:30", Description: "Formwork"}}

	payload, err := NewBuilder(false).Build(form)

	assert.NoError(t, err)
	assert.Len(t, payload.Employees, 1)
	row := payload.Employees[0]
	assert.Equal(t, "Jane Smith", row[0])
	assert.InDelta(t, 7.0/24.0, row[1], 1e-9)
	assert.InDelta(t, 15.5/24.0, row[2], 1e-9)
	assert.Equal(t, "Formwork", row[3])
}

func TestBuildRetainsBlankEmployeeAndSubcontractorRows(t *testing.T) {
	form := testForm(t)
	form.Employees = []EmployeeRow{{Name: "Jane Smith", TimeIn: "07:00", TimeOut: "15:30"}, {}}
	form.Subcontractors = []SubcontractorRow{{}}

	payload, err := NewBuilder(false).Build(form)

	assert.NoError(t, err)
	assert.Len(t, payload.Employees, 2)
	assert.Equal(t, []any{"", 0.0, 0.0, ""}, payload.Employees[1])
	assert.Len(t, payload.Subcontractors, 1)
	assert.Equal(t, []any{"", 0.0, 0.0, ""}, payload.Subcontractors[0])
}

func TestBuildFiltersPlantRowsWithoutName(t *testing.T) {
	form := testForm(t)
	form.Plants = []PlantRow{
		{Name: "", Description: "orphaned note"},
		{Name: "Excavator", Description: "Trenching"},
		{},
	}

	payload, err := NewBuilder(false).Build(form)

	assert.NoError(t, err)
	assert.Equal(t, [][]any{{"Excavator", "Trenching"}}, payload.Plants)
}

func TestBuildRejectsMalformedRowTime(t *testing.T) {
	form := testForm(t)
	form.Employees = []EmployeeRow{{Name: "Jane Smith", TimeIn: "25:00", TimeOut: "15:30"}}

	_, err := NewBuilder(false).Build(form)

	assert.ErrorIs(t, err, sheettime.ErrMalformedTime)
}
