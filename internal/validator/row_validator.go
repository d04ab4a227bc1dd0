package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Spreadsheet row validation for the teacher bulk import. The patterns are
// carried over verbatim from the legacy importer: names must be uppercase
// letter groups (Swedish alphabet) joined by at most two single hyphens or
// spaces, which also means the empty string matches and any lowercase letter
// does not.
var (
	approvedNamePattern  = regexp.MustCompile(`^[A-ZÅÄÖ]*[- ]?[A-ZÅÄÖ]*[- ]?[A-ZÅÄÖ]*$`)
	approvedEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// ImportRow holds the four raw cell values read from one spreadsheet row.
type ImportRow struct {
	FirstName string
	LastName  string
	Email     string
	WorkHours string
}

// Incomplete reports whether any of the four cells is absent. Incomplete
// rows are skipped silently, producing neither a record nor a rejection.
func (r ImportRow) Incomplete() bool {
	return strings.TrimSpace(r.FirstName) == "" ||
		strings.TrimSpace(r.LastName) == "" ||
		strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.WorkHours) == ""
}

// IsApprovedName reports whether a name cell matches the approved pattern.
func IsApprovedName(name string) bool {
	return approvedNamePattern.MatchString(name)
}

// IsApprovedEmail reports whether an email cell matches the approved pattern.
func IsApprovedEmail(email string) bool {
	return approvedEmailPattern.MatchString(email)
}

// ValidateImportRow classifies one complete row. It returns ok=true when the
// row yields a valid new teacher, otherwise a human-readable reason naming
// the offending value. A non-integer work-hours cell is a hard rejection;
// the legacy importer only warned and inserted the row anyway.
func ValidateImportRow(row ImportRow) (reason string, ok bool) {
	if !IsApprovedName(row.FirstName) {
		return fmt.Sprintf("could not add %s %s: %s is not an approved first name",
			row.FirstName, row.LastName, row.FirstName), false
	}
	if !IsApprovedName(row.LastName) {
		return fmt.Sprintf("could not add %s %s: %s is not an approved last name",
			row.FirstName, row.LastName, row.LastName), false
	}
	if !IsApprovedEmail(row.Email) {
		return fmt.Sprintf("could not add %s %s: %s is not a valid email address",
			row.FirstName, row.LastName, row.Email), false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(row.WorkHours)); err != nil {
		return fmt.Sprintf("could not add %s %s: %s is not a whole number of work hours",
			row.FirstName, row.LastName, row.WorkHours), false
	}
	return "", true
}
