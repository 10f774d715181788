package schedule_test

import (
	"context"
	"testing"
	"time"

	"rh-backoffice/internal/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeScheduleRepository struct {
	findShiftsByCompanyFn        func(ctx context.Context, companyID string) ([]schedule.WorkShift, error)
	findAssignmentsForEmployeeFn func(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]schedule.EmployeeShift, error)
}

func (f *fakeScheduleRepository) FindShiftsByCompany(ctx context.Context, companyID string) ([]schedule.WorkShift, error) {
	if f.findShiftsByCompanyFn != nil {
		return f.findShiftsByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeScheduleRepository) FindAssignmentsForEmployee(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]schedule.EmployeeShift, error) {
	if f.findAssignmentsForEmployeeFn != nil {
		return f.findAssignmentsForEmployeeFn(ctx, companyID, employeeID, start, end)
	}
	return nil, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolver_ExpectedWorkDays(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	// March 2026: the 1st is a Sunday, 22 Monday-Friday work days.
	start := date(2026, 3, 1)
	end := date(2026, 3, 31)

	t.Run("no assignment falls back to monday-friday", func(t *testing.T) {
		repo := &fakeScheduleRepository{}
		resolver := schedule.NewResolver(repo)

		days, err := resolver.ExpectedWorkDays(ctx, companyID, employeeID, start, end)

		assert.NoError(t, err)
		assert.Len(t, days, 22)
		for _, day := range days {
			assert.NotEqual(t, time.Saturday, day.Weekday())
			assert.NotEqual(t, time.Sunday, day.Weekday())
		}
	})

	t.Run("shift grid restricts work days", func(t *testing.T) {
		shift := &schedule.WorkShift{
			ID:          uuid.New(),
			Name:        "Escala seg-qua-sex",
			WorkingDays: schedule.Weekdays{time.Monday, time.Wednesday, time.Friday},
		}
		repo := &fakeScheduleRepository{
			findAssignmentsForEmployeeFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]schedule.EmployeeShift, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, employeeID, eid)
				return []schedule.EmployeeShift{
					{
						ShiftID:   shift.ID,
						StartDate: date(2026, 1, 1),
						Shift:     shift,
					},
				}, nil
			},
		}
		resolver := schedule.NewResolver(repo)

		days, err := resolver.ExpectedWorkDays(ctx, companyID, employeeID, start, end)

		assert.NoError(t, err)
		// March 2026 has 5 Mondays, 4 Wednesdays and 4 Fridays.
		assert.Len(t, days, 13)
		for _, day := range days {
			assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, day.Weekday())
		}
	})

	t.Run("assignment gap uses default work week", func(t *testing.T) {
		shift := &schedule.WorkShift{
			ID:          uuid.New(),
			Name:        "Escala só segunda",
			WorkingDays: schedule.Weekdays{time.Monday},
		}
		assignmentEnd := date(2026, 3, 15)
		repo := &fakeScheduleRepository{
			findAssignmentsForEmployeeFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]schedule.EmployeeShift, error) {
				return []schedule.EmployeeShift{
					{
						ShiftID:   shift.ID,
						StartDate: date(2026, 3, 1),
						EndDate:   &assignmentEnd,
						Shift:     shift,
					},
				}, nil
			},
		}
		resolver := schedule.NewResolver(repo)

		days, err := resolver.ExpectedWorkDays(ctx, companyID, employeeID, start, end)

		assert.NoError(t, err)
		// Covered half: Mondays Mar 2 and 9. Uncovered half (Mar 16-31):
		// default Monday-Friday, 12 days.
		assert.Len(t, days, 14)
		assert.Equal(t, date(2026, 3, 2), days[0])
		assert.Equal(t, date(2026, 3, 9), days[1])
		assert.Equal(t, date(2026, 3, 16), days[2])
	})

	t.Run("repository error propagates", func(t *testing.T) {
		repo := &fakeScheduleRepository{
			findAssignmentsForEmployeeFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]schedule.EmployeeShift, error) {
				return nil, assert.AnError
			},
		}
		resolver := schedule.NewResolver(repo)

		_, err := resolver.ExpectedWorkDays(ctx, companyID, employeeID, start, end)
		assert.Error(t, err)
	})
}

func TestWeekdays_Contains(t *testing.T) {
	grid := schedule.Weekdays{time.Monday, time.Friday}
	assert.True(t, grid.Contains(time.Monday))
	assert.True(t, grid.Contains(time.Friday))
	assert.False(t, grid.Contains(time.Sunday))
}
