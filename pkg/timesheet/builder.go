package timesheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sitelog/sitelog/pkg/sheettime"
)

var ErrNoNotesProvided = errors.New("no notes provided")
var ErrNoEmployeesProvided = errors.New("no employee with a name provided")

// Payload is the wire shape handed to the backend workflow. Details is a
// single fixed tuple; the row groups mirror the spreadsheet tables.
type Payload struct {
	Details        []any   `json:"details"`
	Employees      [][]any `json:"employees"`
	Subcontractors [][]any `json:"subcontractors"`
	Plants         [][]any `json:"plants"`
}

// Builder validates a form and flattens it into the payload rows the
// spreadsheet workflow expects.
type Builder struct {
	requireEmployee bool
}

// NewBuilder creates a Builder. requireEmployee enables the stricter
// policy that submission needs at least one named employee row.
func NewBuilder(requireEmployee bool) *Builder {
	return &Builder{requireEmployee: requireEmployee}
}

// Build validates form and produces the submission payload. Times encode
// as day fractions with blank times serializing to 0. Employee and
// subcontractor rows are retained even when blank, matching the
// fixed-width legacy export; plant rows without a name are dropped.
func (b *Builder) Build(form Form) (Payload, error) {
	if !form.IsSubmittable() {
		return Payload{}, ErrNoNotesProvided
	}
	if b.requireEmployee && !form.HasNamedEmployee() {
		return Payload{}, ErrNoEmployeesProvided
	}

	employees := make([][]any, 0, len(form.Employees))
	for i, row := range form.Employees {
		encoded, err := encodeTimedRow(row.Name, row.TimeIn, row.TimeOut, row.Description)
		if err != nil {
			return Payload{}, fmt.Errorf("employee row %d: %w", i, err)
		}
		employees = append(employees, encoded)
	}

	subcontractors := make([][]any, 0, len(form.Subcontractors))
	for i, row := range form.Subcontractors {
		encoded, err := encodeTimedRow(row.Name, row.TimeIn, row.TimeOut, row.Description)
		if err != nil {
			return Payload{}, fmt.Errorf("subcontractor row %d: %w", i, err)
		}
		subcontractors = append(subcontractors, encoded)
	}

	plants := make([][]any, 0, len(form.Plants))
	for _, row := range form.Plants {
		if strings.TrimSpace(row.Name) == "" {
			continue
		}
		plants = append(plants, []any{row.Name, row.Description})
	}

	details := []any{form.ReporterName, form.Date.EpochDays(), form.Site, form.Weather, form.CombinedNotes()}

	return Payload{
		Details:        details,
		Employees:      employees,
		Subcontractors: subcontractors,
		Plants:         plants,
	}, nil
}

func encodeTimedRow(name, timeIn, timeOut, description string) ([]any, error) {
	timeInFraction, err := sheettime.FractionOf(timeIn)
	if err != nil {
		return nil, fmt.Errorf("time in: %w", err)
	}
	timeOutFraction, err := sheettime.FractionOf(timeOut)
	if err != nil {
		return nil, fmt.Errorf("time out: %w", err)
	}
	return []any{name, timeInFraction, timeOutFraction, description}, nil
}
