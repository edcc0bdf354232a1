package utils

import (
	"errors"
	"regexp"
)

// OverrideNotApplicable marks a break that a supervisor removed from
// the distribution without deleting its row.
const OverrideNotApplicable = "N/A"

// Overrides come from the dashboard already canonicalized; only the
// strict two-digit form is accepted, never the loose workbook formats.
var overrideTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateOverrideTime accepts a canonical HH:MM clock time or the
// literal "N/A".
func ValidateOverrideTime(start string) error {
	if start == OverrideNotApplicable {
		return nil
	}
	if !overrideTimeRe.MatchString(start) {
		return errors.New("el horario debe tener formato HH:MM o ser N/A")
	}
	return nil
}
