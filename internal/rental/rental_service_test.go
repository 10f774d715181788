package rental_test

import (
	"context"
	"database/sql"
	"testing"

	"rh-backoffice/internal/rental"
	rentalerrors "rh-backoffice/internal/rental/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type rentalServiceDeps struct {
	sqlDB        *sql.DB
	sqlMock      sqlmock.Sqlmock
	repo         *fakeRentalRepository
	paymentRepo  *fakePaymentRepository
	employeeRepo *fakeEmployeeRepository
	service      rental.Service
}

func setupRentalServiceTest(t *testing.T) *rentalServiceDeps {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	deps := &rentalServiceDeps{
		sqlDB:        sqlDB,
		sqlMock:      sqlMock,
		repo:         &fakeRentalRepository{},
		paymentRepo:  &fakePaymentRepository{},
		employeeRepo: &fakeEmployeeRepository{},
	}
	deps.service = rental.NewService(sqlDB, deps.repo, deps.paymentRepo, deps.employeeRepo)
	return deps
}

func expectServiceTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreateRequest(employeeID string) rental.CreateRentalRequest {
	return rental.CreateRentalRequest{
		EmployeeID:    employeeID,
		EquipmentType: rental.EquipmentTypeVehicle,
		EquipmentName: "Fiat Strada",
		MonthlyValue:  "3000.00",
		StartDate:     "2026-01-15",
	}
}

func TestRentalService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("creates an active contract", func(t *testing.T) {
		deps := setupRentalServiceTest(t)
		var created *rental.EquipmentRental
		deps.repo.createFn = func(ctx context.Context, r *rental.EquipmentRental) error {
			created = r
			return nil
		}
		expectServiceTx(deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, companyID, actorID, validCreateRequest(employeeID))

		assert.NoError(t, err)
		assert.Equal(t, rental.StatusActive, resp.Status)
		assert.Equal(t, "3000.00", resp.MonthlyValue)
		assert.Equal(t, "2026-01-15", resp.StartDate)

		require.NotNil(t, created)
		assert.Equal(t, companyID, created.CompanyID.String())
		assert.Equal(t, actorID, created.CreatedBy.String())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects employees of another company", func(t *testing.T) {
		deps := setupRentalServiceTest(t)
		deps.employeeRepo.belongsToCompanyFn = func(ctx context.Context, cid, id string) (bool, error) {
			return false, nil
		}
		expectServiceTx(deps.sqlMock, false)

		_, err := deps.service.Create(ctx, companyID, actorID, validCreateRequest(employeeID))

		assert.ErrorIs(t, err, rentalerrors.ErrEmployeeNotInCompany)
	})

	t.Run("rejects non positive monthly value", func(t *testing.T) {
		deps := setupRentalServiceTest(t)
		expectServiceTx(deps.sqlMock, false)

		req := validCreateRequest(employeeID)
		req.MonthlyValue = "-10"

		_, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.ErrorIs(t, err, rentalerrors.ErrInvalidMonthlyValue)
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		deps := setupRentalServiceTest(t)
		expectServiceTx(deps.sqlMock, false)

		end := "2025-12-31"
		req := validCreateRequest(employeeID)
		req.EndDate = &end

		_, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.ErrorIs(t, err, rentalerrors.ErrInvalidDateRange)
	})
}

func TestRentalService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	t.Run("updates contract fields and status", func(t *testing.T) {
		deps := setupRentalServiceTest(t)
		stored := &rental.EquipmentRental{
			ID:            uuid.New(),
			CompanyID:     companyID,
			EmployeeID:    uuid.New(),
			EquipmentType: rental.EquipmentTypeVehicle,
			EquipmentName: "Fiat Strada",
			MonthlyValue:  decimal.RequireFromString("3000.00"),
			Status:        rental.StatusActive,
		}
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*rental.EquipmentRental, error) {
			return stored, nil
		}
		var updated *rental.EquipmentRental
		deps.repo.updateFn = func(ctx context.Context, r *rental.EquipmentRental) error {
			updated = r
			return nil
		}
		expectServiceTx(deps.sqlMock, true)

		resp, err := deps.service.Update(ctx, companyID.String(), actorID, stored.ID.String(), rental.UpdateRentalRequest{
			EquipmentType: rental.EquipmentTypeVehicle,
			EquipmentName: "Fiat Toro",
			MonthlyValue:  "3200.00",
			StartDate:     "2026-01-15",
			Status:        rental.StatusTerminated,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Fiat Toro", resp.EquipmentName)
		assert.Equal(t, rental.StatusTerminated, resp.Status)
		require.NotNil(t, updated)
		assert.Equal(t, "3200.00", updated.MonthlyValue.StringFixed(2))
		require.NotNil(t, updated.UpdatedBy)
		assert.Equal(t, actorID, updated.UpdatedBy.String())
	})

	t.Run("unknown contract", func(t *testing.T) {
		deps := setupRentalServiceTest(t)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*rental.EquipmentRental, error) {
			return nil, gorm.ErrRecordNotFound
		}
		expectServiceTx(deps.sqlMock, false)

		_, err := deps.service.Update(ctx, companyID.String(), actorID, uuid.New().String(), rental.UpdateRentalRequest{
			EquipmentType: rental.EquipmentTypeVehicle,
			EquipmentName: "Fiat Toro",
			MonthlyValue:  "3200.00",
			StartDate:     "2026-01-15",
			Status:        rental.StatusActive,
		})

		assert.ErrorIs(t, err, rentalerrors.ErrRentalNotFound)
	})
}

func TestRentalService_MarkPaymentPaid(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	t.Run("settles a pending payment", func(t *testing.T) {
		deps := setupRentalServiceTest(t)
		stored := &rental.RentalPayment{
			ID:                uuid.New(),
			CompanyID:         companyID,
			EquipmentRentalID: uuid.New(),
			PaymentYear:       2026,
			PaymentMonth:      4,
			Amount:            decimal.RequireFromString("2727.27"),
			Status:            rental.PaymentStatusPending,
		}
		deps.paymentRepo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*rental.RentalPayment, error) {
			return stored, nil
		}
		var updated *rental.RentalPayment
		deps.paymentRepo.updateFn = func(ctx context.Context, payment *rental.RentalPayment) error {
			updated = payment
			return nil
		}
		expectServiceTx(deps.sqlMock, true)

		ref := "TED-991"
		resp, err := deps.service.MarkPaymentPaid(ctx, companyID.String(), actorID, stored.ID.String(), rental.MarkPaymentPaidRequest{
			PaymentDate:      "2026-04-10",
			PaymentMethod:    "pix",
			PaymentReference: &ref,
		})

		assert.NoError(t, err)
		assert.Equal(t, rental.PaymentStatusPaid, resp.Status)
		require.NotNil(t, resp.PaymentDate)
		assert.Equal(t, "2026-04-10", *resp.PaymentDate)
		require.NotNil(t, updated.PaymentMethod)
		assert.Equal(t, "pix", *updated.PaymentMethod)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("only pending payments can be settled", func(t *testing.T) {
		deps := setupRentalServiceTest(t)
		deps.paymentRepo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*rental.RentalPayment, error) {
			return &rental.RentalPayment{Status: rental.PaymentStatusPaid}, nil
		}
		expectServiceTx(deps.sqlMock, false)

		_, err := deps.service.MarkPaymentPaid(ctx, companyID.String(), actorID, uuid.New().String(), rental.MarkPaymentPaidRequest{
			PaymentDate:   "2026-04-10",
			PaymentMethod: "pix",
		})

		assert.ErrorIs(t, err, rentalerrors.ErrPaymentNotPending)
	})
}

func TestRentalService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("formats the aggregate totals", func(t *testing.T) {
		deps := setupRentalServiceTest(t)
		deps.repo.statsFn = func(ctx context.Context, cid string) (rental.RentalStats, error) {
			return rental.RentalStats{
				TotalEquipments:   5,
				ActiveEquipments:  4,
				TotalMonthlyValue: decimal.RequireFromString("12500.50"),
				ByType:            map[string]int64{rental.EquipmentTypeVehicle: 3, rental.EquipmentTypeComputer: 2},
			}, nil
		}

		stats, err := deps.service.Stats(ctx, uuid.New().String())

		assert.NoError(t, err)
		assert.Equal(t, int64(5), stats.TotalEquipments)
		assert.Equal(t, "12500.50", stats.TotalMonthlyValue)
		assert.Equal(t, int64(3), stats.ByType[rental.EquipmentTypeVehicle])
	})

	t.Run("invalid company id", func(t *testing.T) {
		deps := setupRentalServiceTest(t)

		_, err := deps.service.Stats(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, rentalerrors.ErrInvalidCompanyID)
	})
}
