package absence

import (
	"context"
	"sort"
	"time"

	"rh-backoffice/internal/schedule"

	"go.uber.org/zap"
)

//go:generate mockgen -source=collector.go -destination=mock/collector_mock.go -package=mock
type Collector interface {
	// AbsenceDays returns every absence day for the employee inside
	// [periodStart, periodEnd], deduplicated by date and sorted ascending.
	AbsenceDays(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]Day, error)
}

type collector struct {
	repo     Repository
	resolver schedule.Resolver
	logger   *zap.Logger
}

func NewCollector(repo Repository, resolver schedule.Resolver, logger ...*zap.Logger) Collector {
	l := zap.L().Named("absence.collector")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("absence.collector")
	}
	return &collector{repo: repo, resolver: resolver, logger: l}
}

func (c *collector) AbsenceDays(
	ctx context.Context,
	companyID, employeeID string,
	periodStart, periodEnd time.Time,
) ([]Day, error) {
	var days []Day

	noRecordDays, err := c.noTimeRecordDays(ctx, companyID, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	days = append(days, noRecordDays...)

	certificateDays, err := c.certificateDays(ctx, companyID, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	days = append(days, certificateDays...)

	vacationDays, err := c.vacationDays(ctx, companyID, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	days = append(days, vacationDays...)

	licenseDays, err := c.licenseDays(ctx, companyID, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	days = append(days, licenseDays...)

	unique := dedupeByDate(days)
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Date.Before(unique[j].Date)
	})

	c.logger.Debug("absence days collected",
		zap.String("employee_id", employeeID),
		zap.Int("total", len(unique)),
		zap.Int("unjustified", CountUnjustified(unique)),
	)
	return unique, nil
}

// noTimeRecordDays flags every expected work day without a clock entry.
func (c *collector) noTimeRecordDays(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]Day, error) {
	workDays, err := c.resolver.ExpectedWorkDays(ctx, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	recordDates, err := c.repo.FindTimeRecordDates(ctx, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	recorded := make(map[string]struct{}, len(recordDates))
	for _, d := range recordDates {
		recorded[d.Format("2006-01-02")] = struct{}{}
	}

	var days []Day
	for _, workDay := range workDays {
		if _, ok := recorded[workDay.Format("2006-01-02")]; ok {
			continue
		}
		days = append(days, Day{
			Date:        workDay,
			Cause:       CauseNoTimeRecord,
			Description: "Sem registro de ponto",
			Justified:   false,
		})
	}
	return days, nil
}

func (c *collector) certificateDays(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]Day, error) {
	certificates, err := c.repo.FindApprovedCertificates(ctx, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	var days []Day
	for _, certificate := range certificates {
		for _, day := range daysInRange(certificate.StartDate, certificate.EndDate, start, end) {
			days = append(days, Day{
				Date:        day,
				Cause:       CauseMedicalCertificate,
				Description: "Atestado médico - " + certificate.Kind,
				Justified:   true,
			})
		}
	}
	return days, nil
}

func (c *collector) vacationDays(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]Day, error) {
	vacations, err := c.repo.FindApprovedVacations(ctx, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	var days []Day
	for _, vacation := range vacations {
		for _, day := range daysInRange(vacation.StartDate, vacation.EndDate, start, end) {
			days = append(days, Day{
				Date:        day,
				Cause:       CauseVacation,
				Description: "Férias",
				Justified:   true,
			})
		}
	}
	return days, nil
}

func (c *collector) licenseDays(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]Day, error) {
	licenses, err := c.repo.FindApprovedLicenses(ctx, companyID, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	var days []Day
	for _, license := range licenses {
		for _, day := range daysInRange(license.StartDate, license.EndDate, start, end) {
			days = append(days, Day{
				Date:        day,
				Cause:       CauseLicense,
				Description: "Licença - " + license.Kind,
				Justified:   true,
			})
		}
	}
	return days, nil
}

// daysInRange enumerates the days of [start, end] clipped to
// [periodStart, periodEnd].
func daysInRange(start, end, periodStart, periodEnd time.Time) []time.Time {
	if start.Before(periodStart) {
		start = periodStart
	}
	if end.After(periodEnd) {
		end = periodEnd
	}

	var days []time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
