package rental

import (
	"fmt"
	"time"

	rentalerrors "rh-backoffice/internal/rental/errors"
)

// Period is a calendar month over which absences are measured.
type Period struct {
	Year  int
	Month int
}

// ParsePeriod parses the YYYY-MM form.
func ParsePeriod(v string) (Period, error) {
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return Period{}, rentalerrors.ErrInvalidPeriod
	}
	return Period{Year: t.Year(), Month: int(t.Month())}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Bounds returns the first and last day of the month, UTC.
func (p Period) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// Next is the target payment month: the month immediately following.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Year: p.Year + 1, Month: 1}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// maxDueDay caps due dates so a configured day like 31 never produces an
// invalid date in short months.
const maxDueDay = 28

// DueDate builds the payable due date for the period, clamping the
// configured day-of-month to maxDueDay.
func (p Period) DueDate(day int) time.Time {
	if day > maxDueDay {
		day = maxDueDay
	}
	if day < 1 {
		day = 1
	}
	return time.Date(p.Year, time.Month(p.Month), day, 0, 0, 0, 0, time.UTC)
}
