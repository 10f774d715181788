package payable_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"rh-backoffice/internal/payable"
	payableerrors "rh-backoffice/internal/payable/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	createManyFn            func(ctx context.Context, payables []payable.AccountPayable) error
	findByCompanyAndClassFn func(ctx context.Context, companyID, financialClass string) ([]payable.AccountPayable, error)
}

func (f *fakeRepository) WithTx(tx *sql.Tx) payable.Repository { return f }

func (f *fakeRepository) CreateMany(ctx context.Context, payables []payable.AccountPayable) error {
	if f.createManyFn != nil {
		return f.createManyFn(ctx, payables)
	}
	return nil
}

func (f *fakeRepository) FindByCompanyAndClass(ctx context.Context, companyID, financialClass string) ([]payable.AccountPayable, error) {
	if f.findByCompanyAndClassFn != nil {
		return f.findByCompanyAndClassFn(ctx, companyID, financialClass)
	}
	return nil, nil
}

func TestPayableService_GetByClass(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("defaults to the equipment rental class", func(t *testing.T) {
		supplier := uuid.New()
		repo := &fakeRepository{}
		var gotClass string
		repo.findByCompanyAndClassFn = func(ctx context.Context, cid, financialClass string) ([]payable.AccountPayable, error) {
			gotClass = financialClass
			return []payable.AccountPayable{{
				ID:             uuid.New(),
				CompanyID:      companyID,
				SupplierID:     &supplier,
				DocumentNumber: "LOC-202604-000001",
				Description:    "Locação de equipamentos - João da Silva (2026-03, 1 contratos)",
				Amount:         decimal.RequireFromString("2727.27"),
				DueDate:        time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
				Status:         payable.StatusPending,
				FinancialClass: payable.ClassEquipmentRental,
			}}, nil
		}
		service := payable.NewService(repo)

		resp, err := service.GetByClass(ctx, companyID.String(), "")

		assert.NoError(t, err)
		assert.Equal(t, payable.ClassEquipmentRental, gotClass)
		require.Len(t, resp, 1)
		assert.Equal(t, "2727.27", resp[0].Amount)
		assert.Equal(t, "2026-04-10", resp[0].DueDate)
		assert.Equal(t, supplier.String(), *resp[0].SupplierID)
	})

	t.Run("invalid company id", func(t *testing.T) {
		service := payable.NewService(&fakeRepository{})

		_, err := service.GetByClass(ctx, "not-a-uuid", "")

		assert.ErrorIs(t, err, payableerrors.ErrInvalidCompanyID)
	})
}
