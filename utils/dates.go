// utils/dates.go
package utils

import "time"

// DateLayout is the calendar date format stored on invoices.
const DateLayout = "2006-01-02"

// DateString returns the UTC calendar date of t.
func DateString(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
