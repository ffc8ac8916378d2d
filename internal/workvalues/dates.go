package workvalues

import (
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx/v2"
)

// dateLayouts are tried in order; O*NET publishes dates as "MM/YYYY".
var dateLayouts = []string{
	"01/2006",
	"1/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006-01",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"Jan 2006",
	"January 2006",
	"Jan-06",
	"2 Jan 2006",
}

// parseDate parses s permissively. ok is false for blanks and anything it
// cannot read; callers treat that as a missing date rather than an error.
// Bare numbers are Excel serial dates, except four-digit years.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if len(s) == 4 {
		if y, err := strconv.Atoi(s); err == nil && y >= 1000 {
			return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f <= 0 || f > 2958465 {
			return time.Time{}, false
		}
		return xlsx.TimeFromExcelTime(f, false), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
