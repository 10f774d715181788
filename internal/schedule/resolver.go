package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=resolver.go -destination=mock/resolver_mock.go -package=mock
type Resolver interface {
	// ExpectedWorkDays returns every calendar day in [start, end] the
	// employee is expected to work, ascending. Employees without a shift
	// assignment fall back to the Monday-Friday default.
	ExpectedWorkDays(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]time.Time, error)
}

type resolver struct {
	repo   Repository
	logger *zap.Logger
}

func NewResolver(repo Repository, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("schedule.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.resolver")
	}
	return &resolver{repo: repo, logger: l}
}

func (r *resolver) ExpectedWorkDays(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]time.Time, error) {
	assignments, err := r.repo.FindAssignmentsForEmployee(ctx, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	if len(assignments) == 0 {
		r.logger.Debug("no shift assignment, using default work week",
			zap.String("employee_id", employeeID),
		)
		return DefaultWorkDays(start, end), nil
	}

	var days []time.Time
	for day := truncateToDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		assignment := coveringAssignment(assignments, day)
		if assignment == nil || assignment.Shift == nil || len(assignment.Shift.WorkingDays) == 0 {
			// gap between assignments or shift without a weekday grid
			if isDefaultWorkDay(day) {
				days = append(days, day)
			}
			continue
		}
		if assignment.Shift.WorkingDays.Contains(day.Weekday()) {
			days = append(days, day)
		}
	}
	return days, nil
}

// DefaultWorkDays is the fallback policy: every day except Saturday and
// Sunday counts as a work day.
func DefaultWorkDays(start, end time.Time) []time.Time {
	var days []time.Time
	for day := truncateToDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		if isDefaultWorkDay(day) {
			days = append(days, day)
		}
	}
	return days
}

func coveringAssignment(assignments []EmployeeShift, day time.Time) *EmployeeShift {
	for i := range assignments {
		if assignments[i].CoversDate(day) {
			return &assignments[i]
		}
	}
	return nil
}

func isDefaultWorkDay(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
