package timesheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sitelog/sitelog/pkg/draft"
	"github.com/sitelog/sitelog/pkg/sheettime"
)

var ErrUnknownField = errors.New("unknown form field")
var ErrUnknownCollection = errors.New("unknown row collection")
var ErrRowOutOfRange = errors.New("row index out of range")

// Defaults carries the configured values applied to new rows and freshly
// reset forms.
type Defaults struct {
	TimeIn  string
	TimeOut string
}

// EmployeeRow is one line of the employee table. Name is selected from
// the roster; times are "HH:MM" text as entered.
type EmployeeRow struct {
	Name        string
	TimeIn      string
	TimeOut     string
	Description string
}

// SubcontractorRow is one line of the subcontractor table. Name is free
// text rather than a roster selection.
type SubcontractorRow struct {
	Name        string
	TimeIn      string
	TimeOut     string
	Description string
}

// PlantRow is one line of the plant/equipment table.
type PlantRow struct {
	Name        string
	Description string
}

// Form is the in-memory daily timesheet: the single source of truth the
// presentation layer synchronizes against. It is created once at startup
// and reset, never replaced.
type Form struct {
	ReporterName   string
	Site           string
	Weather        string
	Date           sheettime.Date
	TasksCompleted string
	Setbacks       string
	RFI            string
	UserStartTime  string
	UserEndTime    string
	Employees      []EmployeeRow
	Subcontractors []SubcontractorRow
	Plants         []PlantRow
}

func NewForm(date sheettime.Date, defaults Defaults) Form {
	form := Form{}
	form.Reset(date, defaults)
	return form
}

// Reset clears the per-date fields back to defaults, keeping the
// session-scoped reporter name and site.
func (f *Form) Reset(date sheettime.Date, defaults Defaults) {
	f.Weather = ""
	f.Date = date
	f.TasksCompleted = ""
	f.Setbacks = ""
	f.RFI = ""
	f.UserStartTime = defaults.TimeIn
	f.UserEndTime = defaults.TimeOut
	f.Employees = nil
	f.Subcontractors = nil
	f.Plants = nil
}

// Field names a header field settable by the presentation layer.
type Field string

const (
	FieldReporterName   Field = "reporterName"
	FieldSite           Field = "site"
	FieldWeather        Field = "weather"
	FieldTasksCompleted Field = "tasksCompleted"
	FieldSetbacks       Field = "setbacks"
	FieldRFI            Field = "rfi"
	FieldUserStartTime  Field = "userStartTime"
	FieldUserEndTime    Field = "userEndTime"
)

// SetField updates a header field. Time fields must be blank or valid
// "HH:MM" text; malformed values are rejected rather than stored.
func (f *Form) SetField(field Field, value string) error {
	switch field {
	case FieldReporterName:
		f.ReporterName = value
	case FieldSite:
		f.Site = value
	case FieldWeather:
		f.Weather = value
	case FieldTasksCompleted:
		f.TasksCompleted = value
	case FieldSetbacks:
		f.Setbacks = value
	case FieldRFI:
		f.RFI = value
	case FieldUserStartTime:
		if err := validTime(value); err != nil {
			return err
		}
		f.UserStartTime = value
	case FieldUserEndTime:
		if err := validTime(value); err != nil {
			return err
		}
		f.UserEndTime = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Collection names one of the three row tables.
type Collection string

const (
	CollectionEmployees      Collection = "employees"
	CollectionSubcontractors Collection = "subcontractors"
	CollectionPlants         Collection = "plants"
)

// RowField names a cell within a row.
type RowField string

const (
	RowFieldName        RowField = "name"
	RowFieldTimeIn      RowField = "timeIn"
	RowFieldTimeOut     RowField = "timeOut"
	RowFieldDescription RowField = "description"
)

// AddRow appends a defaulted row to the named collection. Employee and
// subcontractor rows start with the configured default times.
func (f *Form) AddRow(collection Collection, defaults Defaults) error {
	switch collection {
	case CollectionEmployees:
		f.Employees = append(f.Employees, EmployeeRow{TimeIn: defaults.TimeIn, TimeOut: defaults.TimeOut})
	case CollectionSubcontractors:
		f.Subcontractors = append(f.Subcontractors, SubcontractorRow{TimeIn: defaults.TimeIn, TimeOut: defaults.TimeOut})
	case CollectionPlants:
		f.Plants = append(f.Plants, PlantRow{})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return nil
}

// RemoveRow deletes the row at index, preserving the order of the rest.
// An index out of range is silently ignored; the UI never produces one.
func (f *Form) RemoveRow(collection Collection, index int) error {
	switch collection {
	case CollectionEmployees:
		if index >= 0 && index < len(f.Employees) {
			f.Employees = append(f.Employees[:index], f.Employees[index+1:]...)
		}
	case CollectionSubcontractors:
		if index >= 0 && index < len(f.Subcontractors) {
			f.Subcontractors = append(f.Subcontractors[:index], f.Subcontractors[index+1:]...)
		}
	case CollectionPlants:
		if index >= 0 && index < len(f.Plants) {
			f.Plants = append(f.Plants[:index], f.Plants[index+1:]...)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return nil
}

// SetRowField updates one cell of a row.
func (f *Form) SetRowField(collection Collection, index int, field RowField, value string) error {
	switch collection {
	case CollectionEmployees:
		if index < 0 || index >= len(f.Employees) {
			return fmt.Errorf("%w: %s[%d]", ErrRowOutOfRange, collection, index)
		}
		return setRowValue(&f.Employees[index].Name, &f.Employees[index].TimeIn,
			&f.Employees[index].TimeOut, &f.Employees[index].Description, field, value)
	case CollectionSubcontractors:
		if index < 0 || index >= len(f.Subcontractors) {
			return fmt.Errorf("%w: %s[%d]", ErrRowOutOfRange, collection, index)
		}
		return setRowValue(&f.Subcontractors[index].Name, &f.Subcontractors[index].TimeIn,
			&f.Subcontractors[index].TimeOut, &f.Subcontractors[index].Description, field, value)
	case CollectionPlants:
		if index < 0 || index >= len(f.Plants) {
			return fmt.Errorf("%w: %s[%d]", ErrRowOutOfRange, collection, index)
		}
		row := &f.Plants[index]
		switch field {
		case RowFieldName:
			row.Name = value
		case RowFieldDescription:
			row.Description = value
		default:
			return fmt.Errorf("%w: %q on plant row", ErrUnknownField, field)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
}

func setRowValue(name, timeIn, timeOut, description *string, field RowField, value string) error {
	switch field {
	case RowFieldName:
		*name = value
	case RowFieldTimeIn:
		if err := validTime(value); err != nil {
			return err
		}
		*timeIn = value
	case RowFieldTimeOut:
		if err := validTime(value); err != nil {
			return err
		}
		*timeOut = value
	case RowFieldDescription:
		*description = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func validTime(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	_, err := sheettime.Parse(value)
	return err
}

// IsSubmittable reports whether the form passes the submission policy:
// at least one of the three note fields must be non-blank after trimming.
func (f *Form) IsSubmittable() bool {
	return strings.TrimSpace(f.TasksCompleted) != "" ||
		strings.TrimSpace(f.Setbacks) != "" ||
		strings.TrimSpace(f.RFI) != ""
}

// HasNamedEmployee reports whether at least one employee row has a name.
func (f *Form) HasNamedEmployee() bool {
	for _, row := range f.Employees {
		if strings.TrimSpace(row.Name) != "" {
			return true
		}
	}
	return false
}

// CombinedNotes joins the notes sections with blank lines, skipping the
// empty ones. This is the single "log" column the spreadsheet keeps.
func (f *Form) CombinedNotes() string {
	sections := make([]string, 0, 3)
	for _, section := range []string{f.TasksCompleted, f.Setbacks, f.RFI} {
		if strings.TrimSpace(section) != "" {
			sections = append(sections, section)
		}
	}
	return strings.Join(sections, "\n\n")
}

// Snapshot extracts the per-date draft fields. Reporter name and site
// stay on the form across dates and are not part of the snapshot.
func (f *Form) Snapshot() draft.Snapshot {
	snapshot := draft.Snapshot{
		Weather:        f.Weather,
		TasksCompleted: f.TasksCompleted,
		Setbacks:       f.Setbacks,
		RFI:            f.RFI,
		UserStartTime:  f.UserStartTime,
		UserEndTime:    f.UserEndTime,
	}
	for _, row := range f.Employees {
		snapshot.Employees = append(snapshot.Employees, draft.Row(row))
	}
	for _, row := range f.Subcontractors {
		snapshot.Subcontractors = append(snapshot.Subcontractors, draft.Row(row))
	}
	for _, row := range f.Plants {
		snapshot.Plants = append(snapshot.Plants, draft.PlantRow(row))
	}
	return snapshot
}

// ApplySnapshot restores draft fields for date into the form. Blank user
// times fall back to the defaults, matching a fresh form.
func (f *Form) ApplySnapshot(date sheettime.Date, snapshot draft.Snapshot, defaults Defaults) {
	f.Date = date
	f.Weather = snapshot.Weather
	f.TasksCompleted = snapshot.TasksCompleted
	f.Setbacks = snapshot.Setbacks
	f.RFI = snapshot.RFI
	f.UserStartTime = snapshot.UserStartTime
	if f.UserStartTime == "" {
		f.UserStartTime = defaults.TimeIn
	}
	f.UserEndTime = snapshot.UserEndTime
	if f.UserEndTime == "" {
		f.UserEndTime = defaults.TimeOut
	}
	f.Employees = nil
	f.Subcontractors = nil
	f.Plants = nil
	for _, row := range snapshot.Employees {
		f.Employees = append(f.Employees, EmployeeRow(row))
	}
	for _, row := range snapshot.Subcontractors {
		f.Subcontractors = append(f.Subcontractors, SubcontractorRow(row))
	}
	for _, row := range snapshot.Plants {
		f.Plants = append(f.Plants, PlantRow(row))
	}
}
