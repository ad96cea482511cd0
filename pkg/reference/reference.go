package reference

import "errors"

// ErrUnavailable is returned when reference data could not be fetched
// from the backend and no cached copy exists.
var ErrUnavailable = errors.New("reference data unavailable")

// Data is the roster the form's dropdowns are populated from: employee
// names, plant/equipment names, and job sites. Admins is the subset of
// employees allowed to manage submissions.
type Data struct {
	Employees []string `json:"employees"`
	Plant     []string `json:"plant"`
	Sites     []string `json:"sites"`
	Admins    []string `json:"admins"`
}
