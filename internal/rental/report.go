package rental

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ReportKeyPrefix = "rental:report:"

	// Reports are derived data over a closed month; a short TTL keeps
	// them fresh enough while absorbing dashboard refresh storms.
	reportCacheTTL = 10 * time.Minute
)

func GetReportKey(companyID, period string) string {
	return fmt.Sprintf("%s%s:%s", ReportKeyPrefix, companyID, period)
}

// TypeBreakdown aggregates contracts of one equipment type.
type TypeBreakdown struct {
	EquipmentType string `json:"equipment_type"`
	Contracts     int    `json:"contracts"`
	MonthlyValue  string `json:"monthly_value"`
	TotalDiscount string `json:"total_discount"`
	FinalValue    string `json:"final_value"`
}

// AbsenceBreakdown counts absence days of one cause across the company.
type AbsenceBreakdown struct {
	Cause string `json:"cause"`
	Days  int    `json:"days"`
}

// EmployeeDiscount is one row of the top-discount ranking.
type EmployeeDiscount struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	AbsenceDays   int    `json:"absence_days"`
	TotalDiscount string `json:"total_discount"`
}

type PeriodReport struct {
	CompanyID string `json:"company_id"`
	Period    string `json:"period"`

	TotalContracts         int    `json:"total_contracts"`
	ContractsWithDiscount  int    `json:"contracts_with_discount"`
	TotalMonthlyValue      string `json:"total_monthly_value"`
	TotalDiscount          string `json:"total_discount"`
	TotalFinalValue        string `json:"total_final_value"`
	AverageDiscount        string `json:"average_discount"`
	TotalAbsenceDays       int    `json:"total_absence_days"`
	UnjustifiedAbsenceDays int    `json:"unjustified_absence_days"`

	ByEquipmentType []TypeBreakdown    `json:"by_equipment_type"`
	ByAbsenceType   []AbsenceBreakdown `json:"by_absence_type"`
	TopDiscounts    []EmployeeDiscount `json:"top_discounts"`

	GeneratedAt time.Time `json:"generated_at"`
}

const topDiscountLimit = 10

//go:generate mockgen -source=report.go -destination=mock/report_service_mock.go -package=mock
type ReportService interface {
	GeneratePeriodReport(ctx context.Context, companyID, period string) (PeriodReport, error)
	InvalidateReport(ctx context.Context, companyID, period string) error
}

type reportService struct {
	calculator Calculator
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewReportService(calc Calculator, rdb *redis.Client, logger ...*zap.Logger) ReportService {
	l := zap.L().Named("rental.report")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rental.report")
	}
	return &reportService{
		calculator: calc,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *reportService) GeneratePeriodReport(ctx context.Context, companyID, period string) (PeriodReport, error) {
	if _, err := ParsePeriod(period); err != nil {
		return PeriodReport{}, err
	}
	cacheKey := GetReportKey(companyID, period)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var report PeriodReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				return report, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		calculations, err := s.calculator.CalculateAll(ctx, companyID, period, CalculationFilters{})
		if err != nil {
			return nil, err
		}

		report := buildReport(companyID, period, calculations)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(report); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, reportCacheTTL)
			}
		}
		return report, nil
	})
	if err != nil {
		return PeriodReport{}, err
	}
	return v.(PeriodReport), nil
}

func (s *reportService) InvalidateReport(ctx context.Context, companyID, period string) error {
	if s.rdb == nil {
		return nil
	}
	cacheKey := GetReportKey(companyID, period)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate report cache",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func buildReport(companyID, period string, calculations []AbsenceCalculation) PeriodReport {
	report := PeriodReport{
		CompanyID:      companyID,
		Period:         period,
		TotalContracts: len(calculations),
		GeneratedAt:    time.Now().UTC(),
	}

	totalMonthly := decimal.Zero
	totalDiscount := decimal.Zero
	totalFinal := decimal.Zero

	typeAgg := map[string]*struct {
		contracts int
		monthly   decimal.Decimal
		discount  decimal.Decimal
		final     decimal.Decimal
	}{}
	causeDays := map[string]int{}
	discountByEmployee := map[string]*EmployeeDiscount{}
	employeeDiscountTotals := map[string]decimal.Decimal{}

	for _, calc := range calculations {
		totalMonthly = totalMonthly.Add(calc.MonthlyValue)
		totalDiscount = totalDiscount.Add(calc.TotalDiscount)
		totalFinal = totalFinal.Add(calc.FinalValue)
		report.TotalAbsenceDays += calc.TotalAbsenceDays
		report.UnjustifiedAbsenceDays += calc.UnjustifiedAbsenceDays
		if calc.TotalDiscount.IsPositive() {
			report.ContractsWithDiscount++
		}

		agg, ok := typeAgg[calc.EquipmentType]
		if !ok {
			agg = &struct {
				contracts int
				monthly   decimal.Decimal
				discount  decimal.Decimal
				final     decimal.Decimal
			}{}
			typeAgg[calc.EquipmentType] = agg
		}
		agg.contracts++
		agg.monthly = agg.monthly.Add(calc.MonthlyValue)
		agg.discount = agg.discount.Add(calc.TotalDiscount)
		agg.final = agg.final.Add(calc.FinalValue)

		for _, day := range calc.AbsenceDays {
			causeDays[string(day.Cause)]++
		}

		row, ok := discountByEmployee[calc.EmployeeID]
		if !ok {
			row = &EmployeeDiscount{
				EmployeeID:   calc.EmployeeID,
				EmployeeName: calc.EmployeeName,
			}
			discountByEmployee[calc.EmployeeID] = row
			employeeDiscountTotals[calc.EmployeeID] = decimal.Zero
		}
		row.AbsenceDays += calc.TotalAbsenceDays
		employeeDiscountTotals[calc.EmployeeID] = employeeDiscountTotals[calc.EmployeeID].Add(calc.TotalDiscount)
	}

	report.TotalMonthlyValue = totalMonthly.StringFixed(2)
	report.TotalDiscount = totalDiscount.StringFixed(2)
	report.TotalFinalValue = totalFinal.StringFixed(2)
	if len(calculations) > 0 {
		report.AverageDiscount = totalDiscount.Div(decimal.NewFromInt(int64(len(calculations)))).Round(2).StringFixed(2)
	} else {
		report.AverageDiscount = "0.00"
	}

	report.ByEquipmentType = make([]TypeBreakdown, 0, len(typeAgg))
	for equipmentType, agg := range typeAgg {
		report.ByEquipmentType = append(report.ByEquipmentType, TypeBreakdown{
			EquipmentType: equipmentType,
			Contracts:     agg.contracts,
			MonthlyValue:  agg.monthly.StringFixed(2),
			TotalDiscount: agg.discount.StringFixed(2),
			FinalValue:    agg.final.StringFixed(2),
		})
	}
	sort.Slice(report.ByEquipmentType, func(i, j int) bool {
		return report.ByEquipmentType[i].EquipmentType < report.ByEquipmentType[j].EquipmentType
	})

	report.ByAbsenceType = make([]AbsenceBreakdown, 0, len(causeDays))
	for cause, days := range causeDays {
		report.ByAbsenceType = append(report.ByAbsenceType, AbsenceBreakdown{Cause: cause, Days: days})
	}
	sort.Slice(report.ByAbsenceType, func(i, j int) bool {
		return report.ByAbsenceType[i].Cause < report.ByAbsenceType[j].Cause
	})

	report.TopDiscounts = make([]EmployeeDiscount, 0, len(discountByEmployee))
	for employeeID, row := range discountByEmployee {
		row.TotalDiscount = employeeDiscountTotals[employeeID].StringFixed(2)
		report.TopDiscounts = append(report.TopDiscounts, *row)
	}
	// Rank by discount, employee id as the deterministic tiebreak.
	sort.Slice(report.TopDiscounts, func(i, j int) bool {
		di := employeeDiscountTotals[report.TopDiscounts[i].EmployeeID]
		dj := employeeDiscountTotals[report.TopDiscounts[j].EmployeeID]
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		return report.TopDiscounts[i].EmployeeID < report.TopDiscounts[j].EmployeeID
	})
	if len(report.TopDiscounts) > topDiscountLimit {
		report.TopDiscounts = report.TopDiscounts[:topDiscountLimit]
	}

	return report
}
