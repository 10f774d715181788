package rental_test

import (
	"testing"
	"time"

	"rh-backoffice/internal/rental"
	rentalerrors "rh-backoffice/internal/rental/errors"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriod(t *testing.T) {
	t.Run("accepts the year-month form", func(t *testing.T) {
		p, err := rental.ParsePeriod("2026-03")
		assert.NoError(t, err)
		assert.Equal(t, 2026, p.Year)
		assert.Equal(t, 3, p.Month)
		assert.Equal(t, "2026-03", p.String())
	})

	t.Run("rejects other forms", func(t *testing.T) {
		for _, v := range []string{"03/2026", "2026-3", "2026-13", "2026-03-01", ""} {
			_, err := rental.ParsePeriod(v)
			assert.ErrorIs(t, err, rentalerrors.ErrInvalidPeriod, v)
		}
	})
}

func TestPeriod_Bounds(t *testing.T) {
	p := rental.Period{Year: 2026, Month: 2}
	start, end := p.Bounds()
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), end)

	leap := rental.Period{Year: 2028, Month: 2}
	_, leapEnd := leap.Bounds()
	assert.Equal(t, 29, leapEnd.Day())
}

func TestPeriod_Next(t *testing.T) {
	assert.Equal(t, rental.Period{Year: 2026, Month: 4}, rental.Period{Year: 2026, Month: 3}.Next())
	assert.Equal(t, rental.Period{Year: 2027, Month: 1}, rental.Period{Year: 2026, Month: 12}.Next())
}

func TestPeriod_DueDate(t *testing.T) {
	p := rental.Period{Year: 2026, Month: 4}
	assert.Equal(t, 10, p.DueDate(10).Day())
	assert.Equal(t, 28, p.DueDate(31).Day())
	assert.Equal(t, 1, p.DueDate(0).Day())
}
