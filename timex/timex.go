// Package timex provides the calendar-date helpers used for invoice and due
// dates. Dates travel through the module as ISO strings (YYYY-MM-DD); all
// functions are pure given the caller's clock.
package timex

import "time"

// ISODateLayout is the storage and interchange format for calendar dates.
const ISODateLayout = "2006-01-02"

// ISODate formats t as an ISO calendar date.
func ISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// PlusDays returns the ISO date n days after the given ISO date.
func PlusDays(isoDate string, n int) (string, error) {
	t, err := time.Parse(ISODateLayout, isoDate)
	if err != nil {
		return "", err
	}
	return ISODate(t.AddDate(0, 0, n)), nil
}

// FormatLong renders an ISO date for display, e.g. "2 January 2006".
// An empty or unparsable input is returned unchanged so a half-typed date
// never breaks a preview.
func FormatLong(isoDate string) string {
	if isoDate == "" {
		return ""
	}
	t, err := time.Parse(ISODateLayout, isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("2 January 2006")
}
