package draft

import "strings"

// Row is one employee or subcontractor line as kept in a draft. Times are
// stored as the "HH:MM" text the user entered; encoding to the numeric
// wire format happens only at submission.
type Row struct {
	Name        string
	TimeIn      string
	TimeOut     string
	Description string
}

// PlantRow is one plant/equipment line as kept in a draft.
type PlantRow struct {
	Name        string
	Description string
}

// Snapshot is the per-date subset of the form kept between navigations.
// Reporter name and site are session-scoped and deliberately excluded.
type Snapshot struct {
	Weather        string
	TasksCompleted string
	Setbacks       string
	RFI            string
	UserStartTime  string
	UserEndTime    string
	Employees      []Row
	Subcontractors []Row
	Plants         []PlantRow
}

func (r Row) blank() bool {
	return strings.TrimSpace(r.Name) == "" &&
		strings.TrimSpace(r.TimeIn) == "" &&
		strings.TrimSpace(r.TimeOut) == "" &&
		strings.TrimSpace(r.Description) == ""
}

func (p PlantRow) blank() bool {
	return strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.Description) == ""
}

// HasData reports whether the snapshot holds anything worth keeping: any
// non-blank header field, or any row with at least one non-blank field.
func (s Snapshot) HasData() bool {
	for _, value := range []string{s.Weather, s.TasksCompleted, s.Setbacks, s.RFI, s.UserStartTime, s.UserEndTime} {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	for _, row := range s.Employees {
		if !row.blank() {
			return true
		}
	}
	for _, row := range s.Subcontractors {
		if !row.blank() {
			return true
		}
	}
	for _, row := range s.Plants {
		if !row.blank() {
			return true
		}
	}
	return false
}

func (s Snapshot) clone() Snapshot {
	copied := s
	copied.Employees = append([]Row(nil), s.Employees...)
	copied.Subcontractors = append([]Row(nil), s.Subcontractors...)
	copied.Plants = append([]PlantRow(nil), s.Plants...)
	return copied
}
