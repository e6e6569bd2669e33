package dateutil

import (
	"fmt"
	"time"
)

// WholeDays calculates the whole-day difference between two dates.
// Time-of-day and time zone offsets are ignored; both dates are
// normalized to midnight UTC first. The result is negative when
// `to` precedes `from`.
func WholeDays(from, to time.Time) int {
	f := midnightUTC(from)
	t := midnightUTC(to)
	return int(t.Sub(f).Hours() / 24)
}

func midnightUTC(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// FinancialYear resolves the financial-year label for a date given the
// month the fiscal year starts on (4 for April-start jurisdictions,
// 1 for calendar-year jurisdictions). Labels follow the "YYYY-YY"
// convention, e.g. "2023-24" for April 2023 through March 2024.
func FinancialYear(date time.Time, fiscalStartMonth time.Month) string {
	startYear := date.Year()
	if date.Month() < fiscalStartMonth {
		startYear--
	}
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// FinancialYearRange returns the first and last calendar day of the
// financial year containing the given date.
func FinancialYearRange(date time.Time, fiscalStartMonth time.Month) (time.Time, time.Time) {
	startYear := date.Year()
	if date.Month() < fiscalStartMonth {
		startYear--
	}
	start := time.Date(startYear, fiscalStartMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	return start, end
}
