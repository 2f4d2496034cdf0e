package services

import (
	"strings"
	"time"
)

// displayDateLayout is the date convention the frontend renders,
// e.g. "2026. 08. 29".
const displayDateLayout = "2006. 01. 02"

// DisplayDate formats a time in the display convention.
func DisplayDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

// ToDisplayDate converts a dash-separated date ("2026-08-29") into the
// display convention. Anything that does not parse is converted by plain
// separator replacement, matching what the frontend submits.
func ToDisplayDate(date string) string {
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format(displayDateLayout)
	}
	return strings.ReplaceAll(date, "-", ". ")
}
