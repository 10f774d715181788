package absence_test

import (
	"context"
	"testing"
	"time"

	"rh-backoffice/internal/absence"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAbsenceRepository struct {
	findTimeRecordDatesFn      func(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]time.Time, error)
	findApprovedCertificatesFn func(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]absence.MedicalCertificate, error)
	findApprovedVacationsFn    func(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]absence.Vacation, error)
	findApprovedLicensesFn     func(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]absence.License, error)
}

func (f *fakeAbsenceRepository) FindTimeRecordDates(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]time.Time, error) {
	if f.findTimeRecordDatesFn != nil {
		return f.findTimeRecordDatesFn(ctx, companyID, employeeID, start, end)
	}
	return nil, nil
}

func (f *fakeAbsenceRepository) FindApprovedCertificates(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]absence.MedicalCertificate, error) {
	if f.findApprovedCertificatesFn != nil {
		return f.findApprovedCertificatesFn(ctx, companyID, employeeID, start, end)
	}
	return nil, nil
}

func (f *fakeAbsenceRepository) FindApprovedVacations(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]absence.Vacation, error) {
	if f.findApprovedVacationsFn != nil {
		return f.findApprovedVacationsFn(ctx, companyID, employeeID, start, end)
	}
	return nil, nil
}

func (f *fakeAbsenceRepository) FindApprovedLicenses(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]absence.License, error) {
	if f.findApprovedLicensesFn != nil {
		return f.findApprovedLicensesFn(ctx, companyID, employeeID, start, end)
	}
	return nil, nil
}

type fakeResolver struct {
	expectedWorkDaysFn func(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]time.Time, error)
}

func (f *fakeResolver) ExpectedWorkDays(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]time.Time, error) {
	if f.expectedWorkDaysFn != nil {
		return f.expectedWorkDaysFn(ctx, companyID, employeeID, start, end)
	}
	return nil, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCollector_AbsenceDays(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	periodStart := date(2026, 3, 1)
	periodEnd := date(2026, 3, 31)

	t.Run("missing time records become unjustified absences", func(t *testing.T) {
		workDays := []time.Time{date(2026, 3, 2), date(2026, 3, 3), date(2026, 3, 4)}
		repo := &fakeAbsenceRepository{
			findTimeRecordDatesFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return []time.Time{date(2026, 3, 2)}, nil
			},
		}
		resolver := &fakeResolver{
			expectedWorkDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return workDays, nil
			},
		}
		collector := absence.NewCollector(repo, resolver)

		days, err := collector.AbsenceDays(ctx, companyID, employeeID, periodStart, periodEnd)

		assert.NoError(t, err)
		assert.Len(t, days, 2)
		assert.Equal(t, date(2026, 3, 3), days[0].Date)
		assert.Equal(t, absence.CauseNoTimeRecord, days[0].Cause)
		assert.False(t, days[0].Justified)
		assert.Equal(t, 2, absence.CountUnjustified(days))
	})

	t.Run("medical certificate masks missing record on the same day", func(t *testing.T) {
		repo := &fakeAbsenceRepository{
			findApprovedCertificatesFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]absence.MedicalCertificate, error) {
				return []absence.MedicalCertificate{
					{StartDate: date(2026, 3, 3), EndDate: date(2026, 3, 4), Kind: "Consulta"},
				}, nil
			},
		}
		resolver := &fakeResolver{
			expectedWorkDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return []time.Time{date(2026, 3, 3)}, nil
			},
		}
		collector := absence.NewCollector(repo, resolver)

		days, err := collector.AbsenceDays(ctx, companyID, employeeID, periodStart, periodEnd)

		assert.NoError(t, err)
		assert.Len(t, days, 2)
		assert.Equal(t, absence.CauseMedicalCertificate, days[0].Cause)
		assert.True(t, days[0].Justified)
		assert.Equal(t, "Atestado médico - Consulta", days[0].Description)
		assert.Equal(t, 0, absence.CountUnjustified(days))
	})

	t.Run("vacation range is clipped to the period", func(t *testing.T) {
		repo := &fakeAbsenceRepository{
			findApprovedVacationsFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]absence.Vacation, error) {
				return []absence.Vacation{
					{StartDate: date(2026, 2, 20), EndDate: date(2026, 3, 2)},
				}, nil
			},
		}
		resolver := &fakeResolver{}
		collector := absence.NewCollector(repo, resolver)

		days, err := collector.AbsenceDays(ctx, companyID, employeeID, periodStart, periodEnd)

		assert.NoError(t, err)
		assert.Len(t, days, 2)
		assert.Equal(t, date(2026, 3, 1), days[0].Date)
		assert.Equal(t, date(2026, 3, 2), days[1].Date)
		assert.Equal(t, absence.CauseVacation, days[0].Cause)
		assert.Equal(t, "Férias", days[0].Description)
	})

	t.Run("days are sorted ascending across sources", func(t *testing.T) {
		repo := &fakeAbsenceRepository{
			findApprovedLicensesFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]absence.License, error) {
				return []absence.License{
					{StartDate: date(2026, 3, 20), EndDate: date(2026, 3, 20), Kind: "Paternidade"},
				}, nil
			},
		}
		resolver := &fakeResolver{
			expectedWorkDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return []time.Time{date(2026, 3, 25), date(2026, 3, 10)}, nil
			},
		}
		collector := absence.NewCollector(repo, resolver)

		days, err := collector.AbsenceDays(ctx, companyID, employeeID, periodStart, periodEnd)

		assert.NoError(t, err)
		assert.Len(t, days, 3)
		assert.Equal(t, date(2026, 3, 10), days[0].Date)
		assert.Equal(t, date(2026, 3, 20), days[1].Date)
		assert.Equal(t, "Licença - Paternidade", days[1].Description)
		assert.Equal(t, date(2026, 3, 25), days[2].Date)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		repo := &fakeAbsenceRepository{
			findTimeRecordDatesFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return nil, assert.AnError
			},
		}
		resolver := &fakeResolver{
			expectedWorkDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return []time.Time{date(2026, 3, 2)}, nil
			},
		}
		collector := absence.NewCollector(repo, resolver)

		_, err := collector.AbsenceDays(ctx, companyID, employeeID, periodStart, periodEnd)
		assert.Error(t, err)
	})
}
