package rental_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"rh-backoffice/internal/absence"
	"rh-backoffice/internal/employee"
	"rh-backoffice/internal/rental"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRentalRepository struct {
	withTxFn              func(tx *sql.Tx) rental.Repository
	createFn              func(ctx context.Context, r *rental.EquipmentRental) error
	findAllByCompanyFn    func(ctx context.Context, companyID string, filter rental.RentalQueryFilter) ([]rental.EquipmentRental, error)
	findByIDAndCompanyFn  func(ctx context.Context, companyID, id string) (*rental.EquipmentRental, error)
	findActiveByCompanyFn func(ctx context.Context, companyID string, filter rental.RentalQueryFilter) ([]rental.EquipmentRental, error)
	updateFn              func(ctx context.Context, r *rental.EquipmentRental) error
	deleteFn              func(ctx context.Context, companyID, id string) error
	statsFn               func(ctx context.Context, companyID string) (rental.RentalStats, error)
	companiesWithActiveFn func(ctx context.Context) ([]string, error)
}

func (f *fakeRentalRepository) WithTx(tx *sql.Tx) rental.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRentalRepository) Create(ctx context.Context, r *rental.EquipmentRental) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeRentalRepository) FindAllByCompany(ctx context.Context, companyID string, filter rental.RentalQueryFilter) ([]rental.EquipmentRental, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeRentalRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*rental.EquipmentRental, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, nil
}

func (f *fakeRentalRepository) FindActiveByCompany(ctx context.Context, companyID string, filter rental.RentalQueryFilter) ([]rental.EquipmentRental, error) {
	if f.findActiveByCompanyFn != nil {
		return f.findActiveByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeRentalRepository) Update(ctx context.Context, r *rental.EquipmentRental) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func (f *fakeRentalRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakeRentalRepository) Stats(ctx context.Context, companyID string) (rental.RentalStats, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx, companyID)
	}
	return rental.RentalStats{}, nil
}

func (f *fakeRentalRepository) CompaniesWithActiveContracts(ctx context.Context) ([]string, error) {
	if f.companiesWithActiveFn != nil {
		return f.companiesWithActiveFn(ctx)
	}
	return nil, nil
}

type fakeEmployeeRepository struct {
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*employee.Employee, error)
	findByIDsFn          func(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error)
	belongsToCompanyFn   func(ctx context.Context, companyID, id string) (bool, error)
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	if f.findByIDsFn != nil {
		return f.findByIDsFn(ctx, companyID, ids)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) BelongsToCompany(ctx context.Context, companyID, id string) (bool, error) {
	if f.belongsToCompanyFn != nil {
		return f.belongsToCompanyFn(ctx, companyID, id)
	}
	return true, nil
}

type fakeCollector struct {
	absenceDaysFn func(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]absence.Day, error)
}

func (f *fakeCollector) AbsenceDays(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]absence.Day, error) {
	if f.absenceDaysFn != nil {
		return f.absenceDaysFn(ctx, companyID, employeeID, periodStart, periodEnd)
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

func workDays(count int) []time.Time {
	days := make([]time.Time, 0, count)
	day := date(2026, 3, 2)
	for len(days) < count {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			days = append(days, day)
		}
		day = day.AddDate(0, 0, 1)
	}
	return days
}

func TestCalculator_CalculateContract(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New()

	contract := rental.EquipmentRental{
		ID:            uuid.New(),
		CompanyID:     uuid.MustParse(companyID),
		EmployeeID:    employeeID,
		EquipmentType: rental.EquipmentTypeVehicle,
		EquipmentName: "Fiat Strada",
		MonthlyValue:  decimal.RequireFromString("3000.00"),
		Status:        rental.StatusActive,
	}

	emp := &employee.Employee{
		ID:        employeeID,
		CompanyID: uuid.MustParse(companyID),
		FullName:  "João da Silva",
	}

	t.Run("two unjustified days over 22 work days", func(t *testing.T) {
		employeeRepo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) {
				return emp, nil
			},
		}
		resolver := &fakeResolver{
			expectedWorkDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return workDays(22), nil
			},
		}
		collector := &fakeCollector{
			absenceDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]absence.Day, error) {
				return []absence.Day{
					{Date: date(2026, 3, 5), Cause: absence.CauseNoTimeRecord, Justified: false},
					{Date: date(2026, 3, 6), Cause: absence.CauseNoTimeRecord, Justified: false},
					{Date: date(2026, 3, 9), Cause: absence.CauseVacation, Justified: true},
				}, nil
			},
		}
		calc := rental.NewCalculator(&fakeRentalRepository{}, employeeRepo, collector, resolver)

		result, err := calc.CalculateContract(ctx, companyID, contract, "2026-03")

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "136.36", result.DailyValue.StringFixed(2))
		assert.Equal(t, "272.73", result.TotalDiscount.StringFixed(2))
		assert.Equal(t, "2727.27", result.FinalValue.StringFixed(2))
		assert.Equal(t, 3, result.TotalAbsenceDays)
		assert.Equal(t, 2, result.UnjustifiedAbsenceDays)
		assert.Equal(t, "João da Silva", result.EmployeeName)
	})

	t.Run("no absences leaves the full monthly value", func(t *testing.T) {
		employeeRepo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) {
				return emp, nil
			},
		}
		resolver := &fakeResolver{
			expectedWorkDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return workDays(22), nil
			},
		}
		calc := rental.NewCalculator(&fakeRentalRepository{}, employeeRepo, &fakeCollector{}, resolver)

		result, err := calc.CalculateContract(ctx, companyID, contract, "2026-03")

		assert.NoError(t, err)
		assert.Equal(t, "0.00", result.TotalDiscount.StringFixed(2))
		assert.Equal(t, "3000.00", result.FinalValue.StringFixed(2))
	})

	t.Run("final value never goes below zero", func(t *testing.T) {
		employeeRepo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) {
				return emp, nil
			},
		}
		resolver := &fakeResolver{
			expectedWorkDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return workDays(10), nil
			},
		}
		collector := &fakeCollector{
			absenceDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]absence.Day, error) {
				days := make([]absence.Day, 0, 11)
				for i := 0; i < 11; i++ {
					days = append(days, absence.Day{
						Date:      date(2026, 3, 2).AddDate(0, 0, i),
						Cause:     absence.CauseNoTimeRecord,
						Justified: false,
					})
				}
				return days, nil
			},
		}
		calc := rental.NewCalculator(&fakeRentalRepository{}, employeeRepo, collector, resolver)

		result, err := calc.CalculateContract(ctx, companyID, contract, "2026-03")

		assert.NoError(t, err)
		assert.Equal(t, "0.00", result.FinalValue.StringFixed(2))
	})

	t.Run("vanished employee returns nil without error", func(t *testing.T) {
		employeeRepo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		calc := rental.NewCalculator(&fakeRentalRepository{}, employeeRepo, &fakeCollector{}, &fakeResolver{})

		result, err := calc.CalculateContract(ctx, companyID, contract, "2026-03")

		assert.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("invalid period rejected", func(t *testing.T) {
		calc := rental.NewCalculator(&fakeRentalRepository{}, &fakeEmployeeRepository{}, &fakeCollector{}, &fakeResolver{})

		_, err := calc.CalculateContract(ctx, companyID, contract, "03/2026")
		assert.Error(t, err)
	})
}

func TestCalculator_CalculateAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("skips contracts whose employee vanished", func(t *testing.T) {
		goneEmployee := uuid.New()
		keptEmployee := uuid.New()
		contracts := []rental.EquipmentRental{
			{ID: uuid.New(), EmployeeID: goneEmployee, MonthlyValue: decimal.RequireFromString("1000"), EquipmentType: rental.EquipmentTypePhone},
			{ID: uuid.New(), EmployeeID: keptEmployee, MonthlyValue: decimal.RequireFromString("2000"), EquipmentType: rental.EquipmentTypeComputer},
		}
		contractRepo := &fakeRentalRepository{
			findActiveByCompanyFn: func(ctx context.Context, cid string, filter rental.RentalQueryFilter) ([]rental.EquipmentRental, error) {
				return contracts, nil
			},
		}
		employeeRepo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) {
				if id == goneEmployee.String() {
					return nil, gorm.ErrRecordNotFound
				}
				return &employee.Employee{ID: keptEmployee, FullName: "Maria"}, nil
			},
		}
		resolver := &fakeResolver{
			expectedWorkDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return workDays(20), nil
			},
		}
		calc := rental.NewCalculator(contractRepo, employeeRepo, &fakeCollector{}, resolver)

		results, err := calc.CalculateAll(ctx, companyID, "2026-03", rental.CalculationFilters{})

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "Maria", results[0].EmployeeName)
	})

	t.Run("aggregate failure falls back to local calculation", func(t *testing.T) {
		employeeID := uuid.New()
		contractRepo := &fakeRentalRepository{
			findActiveByCompanyFn: func(ctx context.Context, cid string, filter rental.RentalQueryFilter) ([]rental.EquipmentRental, error) {
				return []rental.EquipmentRental{
					{ID: uuid.New(), EmployeeID: employeeID, MonthlyValue: decimal.RequireFromString("1500"), EquipmentType: rental.EquipmentTypePhone},
				}, nil
			},
		}
		employeeRepo := &fakeEmployeeRepository{
			findByIDAndCompanyFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) {
				return &employee.Employee{ID: employeeID, FullName: "Ana"}, nil
			},
		}
		resolver := &fakeResolver{
			expectedWorkDaysFn: func(ctx context.Context, cid, eid string, s, e time.Time) ([]time.Time, error) {
				return workDays(20), nil
			},
		}
		aggregate := &fakeAggregateSource{
			calculateAllFn: func(ctx context.Context, cid string, year, month int) ([]rental.AbsenceCalculation, error) {
				return nil, rental.ErrAggregateUnavailable
			},
		}
		calc := rental.NewCalculatorWithAggregate(contractRepo, employeeRepo, &fakeCollector{}, resolver, aggregate)

		results, err := calc.CalculateAll(ctx, companyID, "2026-03", rental.CalculationFilters{})

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "Ana", results[0].EmployeeName)
	})
}

type fakeAggregateSource struct {
	calculateAllFn func(ctx context.Context, companyID string, year, month int) ([]rental.AbsenceCalculation, error)
}

func (f *fakeAggregateSource) CalculateAll(ctx context.Context, companyID string, year, month int) ([]rental.AbsenceCalculation, error) {
	if f.calculateAllFn != nil {
		return f.calculateAllFn(ctx, companyID, year, month)
	}
	return nil, rental.ErrAggregateUnavailable
}
