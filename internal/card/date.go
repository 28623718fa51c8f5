package card

import (
	"strconv"
	"strings"
	"time"
)

// DecomposeDate extracts the day-of-month and month name for display.
//
// Two input forms must render identically: an ISO calendar date
// ("2026-08-28", raw user input) and a pre-formatted "<day> <month>"
// string ("28 August", legacy values). A dash marks the ISO form; the
// day is the third dash-delimited component and the month name comes
// from the month lookup. Anything else is split on whitespace.
func DecomposeDate(date string) (day, month string, ok bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", "", false
	}

	if strings.Contains(date, "-") {
		parts := strings.Split(date, "-")
		if len(parts) < 3 {
			return "", "", false
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil || m < 1 || m > 12 {
			return "", "", false
		}
		return strings.TrimLeft(parts[2], "0"), MonthName(m), true
	}

	fields := strings.Fields(date)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

// MonthName returns the display name of a month (1-12).
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()
}
