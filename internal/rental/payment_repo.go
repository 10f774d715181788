package rental

import (
	"context"
	"database/sql"

	"rh-backoffice/internal/tenant"

	"gorm.io/gorm"
)

// PaymentQueryFilter narrows payment listings.
type PaymentQueryFilter struct {
	EquipmentRentalID *string
	PaymentYear       *int
	PaymentMonth      *int
	Status            *string
}

//go:generate mockgen -source=payment_repo.go -destination=mock/payment_repo_mock.go -package=mock
type PaymentRepository interface {
	WithTx(tx *sql.Tx) PaymentRepository
	Create(ctx context.Context, payment *RentalPayment) error
	Update(ctx context.Context, payment *RentalPayment) error
	FindAllByCompany(ctx context.Context, companyID string, filter PaymentQueryFilter) ([]RentalPayment, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*RentalPayment, error)
	FindByCompanyAndMonth(ctx context.Context, companyID string, year, month int) ([]RentalPayment, error)
}

type paymentRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) WithTx(tx *sql.Tx) PaymentRepository {
	session := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return &paymentRepository{
		db: session,
		tx: tx,
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *RentalPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) Update(ctx context.Context, payment *RentalPayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) FindAllByCompany(ctx context.Context, companyID string, filter PaymentQueryFilter) ([]RentalPayment, error) {
	db := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.EquipmentRentalID != nil && *filter.EquipmentRentalID != "" {
		db = db.Where("equipment_rental_id = ?", *filter.EquipmentRentalID)
	}
	if filter.PaymentYear != nil {
		db = db.Where("payment_year = ?", *filter.PaymentYear)
	}
	if filter.PaymentMonth != nil {
		db = db.Where("payment_month = ?", *filter.PaymentMonth)
	}
	if filter.Status != nil && *filter.Status != "" {
		db = db.Where("status = ?", *filter.Status)
	}

	var payments []RentalPayment
	err := db.Order("payment_year DESC, payment_month DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*RentalPayment, error) {
	var payment RentalPayment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&payment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByCompanyAndMonth(ctx context.Context, companyID string, year, month int) ([]RentalPayment, error) {
	var payments []RentalPayment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID), tenant.ReferenceMonthScope(year, month)).
		Find(&payments).Error
	return payments, err
}
