package rental

import (
	"context"
	"errors"

	"rh-backoffice/internal/absence"
	"rh-backoffice/internal/employee"
	"rh-backoffice/internal/schedule"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AbsenceCalculation is the derived result for one (contract, period)
// pair. Recomputed on every call, never mutated.
type AbsenceCalculation struct {
	EquipmentRentalID string `json:"equipment_rental_id"`
	EmployeeID        string `json:"employee_id"`
	EmployeeName      string `json:"employee_name"`
	EquipmentName     string `json:"equipment_name"`
	EquipmentType     string `json:"equipment_type"`
	Period            string `json:"period"`

	MonthlyValue decimal.Decimal `json:"monthly_value"`
	DailyValue   decimal.Decimal `json:"daily_value"`

	AbsenceDays            []absence.Day `json:"absence_days"`
	TotalAbsenceDays       int           `json:"total_absence_days"`
	UnjustifiedAbsenceDays int           `json:"unjustified_absence_days"`

	TotalDiscount decimal.Decimal `json:"total_discount"`
	FinalValue    decimal.Decimal `json:"final_value"`
}

// CalculationFilters narrows a company-wide calculation run.
type CalculationFilters struct {
	EmployeeID    string
	EquipmentType string
}

// ErrAggregateUnavailable signals that the pre-aggregated database
// calculation cannot be used and the caller should fall back to the
// day-by-day path.
var ErrAggregateUnavailable = errors.New("aggregate calculation unavailable")

// AggregateSource is the optional acceleration path: a database-side
// function returning pre-aggregated per-contract figures. It is a cache
// in front of the local calculation, not a second source of truth.
type AggregateSource interface {
	CalculateAll(ctx context.Context, companyID string, year, month int) ([]AbsenceCalculation, error)
}

//go:generate mockgen -source=calculator.go -destination=mock/calculator_mock.go -package=mock
type Calculator interface {
	// CalculateAll runs the absence-discount calculation for every active
	// contract of the company in the period.
	CalculateAll(ctx context.Context, companyID, period string, filters CalculationFilters) ([]AbsenceCalculation, error)
	// CalculateContract computes one contract. Returns nil when the
	// contract's employee can no longer be resolved.
	CalculateContract(ctx context.Context, companyID string, contract EquipmentRental, period string) (*AbsenceCalculation, error)
}

type calculator struct {
	contractRepo Repository
	employeeRepo employee.Repository
	collector    absence.Collector
	resolver     schedule.Resolver
	aggregate    AggregateSource
	logger       *zap.Logger
}

func NewCalculator(
	contractRepo Repository,
	employeeRepo employee.Repository,
	collector absence.Collector,
	resolver schedule.Resolver,
) Calculator {
	return &calculator{
		contractRepo: contractRepo,
		employeeRepo: employeeRepo,
		collector:    collector,
		resolver:     resolver,
		logger:       zap.L().Named("rental.calculator"),
	}
}

// NewCalculatorWithAggregate wires the database-side acceleration path.
func NewCalculatorWithAggregate(
	contractRepo Repository,
	employeeRepo employee.Repository,
	collector absence.Collector,
	resolver schedule.Resolver,
	aggregate AggregateSource,
) Calculator {
	return &calculator{
		contractRepo: contractRepo,
		employeeRepo: employeeRepo,
		collector:    collector,
		resolver:     resolver,
		aggregate:    aggregate,
		logger:       zap.L().Named("rental.calculator"),
	}
}

func (c *calculator) CalculateAll(
	ctx context.Context,
	companyID, period string,
	filters CalculationFilters,
) ([]AbsenceCalculation, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	if c.aggregate != nil {
		calculations, aggErr := c.aggregate.CalculateAll(ctx, companyID, p.Year, p.Month)
		if aggErr == nil {
			return applyFilters(calculations, filters), nil
		}
		c.logger.Warn("aggregate calculation failed, falling back to local path",
			zap.String("company_id", companyID),
			zap.String("period", period),
			zap.Error(aggErr),
		)
	}

	repoFilter := RentalQueryFilter{}
	if filters.EmployeeID != "" {
		repoFilter.EmployeeID = &filters.EmployeeID
	}
	if filters.EquipmentType != "" {
		repoFilter.EquipmentType = &filters.EquipmentType
	}

	contracts, err := c.contractRepo.FindActiveByCompany(ctx, companyID, repoFilter)
	if err != nil {
		return nil, err
	}

	calculations := make([]AbsenceCalculation, 0, len(contracts))
	for _, contract := range contracts {
		calculation, err := c.CalculateContract(ctx, companyID, contract, period)
		if err != nil {
			return nil, err
		}
		if calculation == nil {
			// contract or employee vanished between listing and calculation
			continue
		}
		calculations = append(calculations, *calculation)
	}

	c.logger.Debug("absence discounts calculated",
		zap.String("company_id", companyID),
		zap.String("period", period),
		zap.Int("count", len(calculations)),
	)
	return calculations, nil
}

func (c *calculator) CalculateContract(
	ctx context.Context,
	companyID string,
	contract EquipmentRental,
	period string,
) (*AbsenceCalculation, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	periodStart, periodEnd := p.Bounds()

	emp, err := c.employeeRepo.FindByIDAndCompany(ctx, companyID, contract.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	workDays, err := c.resolver.ExpectedWorkDays(ctx, companyID, emp.ID.String(), periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	absenceDays, err := c.collector.AbsenceDays(ctx, companyID, emp.ID.String(), periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	unjustified := absence.CountUnjustified(absenceDays)

	// Daily rate divides by the employee's own expected work days, tying
	// the discount to the actual contracted obligation rather than a
	// fixed 30-day month.
	var dailyValue decimal.Decimal
	if len(workDays) > 0 {
		dailyValue = contract.MonthlyValue.Div(decimal.NewFromInt(int64(len(workDays))))
	}

	// Only unjustified days bear discount. Justified ones explain the
	// absence without double-penalizing an already excused employee.
	rawDiscount := dailyValue.Mul(decimal.NewFromInt(int64(unjustified)))
	finalValue := contract.MonthlyValue.Sub(rawDiscount)
	if finalValue.IsNegative() {
		finalValue = decimal.Zero
	}

	return &AbsenceCalculation{
		EquipmentRentalID:      contract.ID.String(),
		EmployeeID:             emp.ID.String(),
		EmployeeName:           emp.FullName,
		EquipmentName:          contract.EquipmentName,
		EquipmentType:          contract.EquipmentType,
		Period:                 p.String(),
		MonthlyValue:           contract.MonthlyValue,
		DailyValue:             dailyValue.Round(2),
		AbsenceDays:            absenceDays,
		TotalAbsenceDays:       len(absenceDays),
		UnjustifiedAbsenceDays: unjustified,
		TotalDiscount:          rawDiscount.Round(2),
		FinalValue:             finalValue.Round(2),
	}, nil
}

func applyFilters(calculations []AbsenceCalculation, filters CalculationFilters) []AbsenceCalculation {
	if filters.EmployeeID == "" && filters.EquipmentType == "" {
		return calculations
	}
	filtered := make([]AbsenceCalculation, 0, len(calculations))
	for _, calculation := range calculations {
		if filters.EmployeeID != "" && calculation.EmployeeID != filters.EmployeeID {
			continue
		}
		if filters.EquipmentType != "" && calculation.EquipmentType != filters.EquipmentType {
			continue
		}
		filtered = append(filtered, calculation)
	}
	return filtered
}
