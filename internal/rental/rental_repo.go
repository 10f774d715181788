package rental

import (
	"context"
	"database/sql"

	"rh-backoffice/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RentalQueryFilter narrows contract listings.
type RentalQueryFilter struct {
	EmployeeID    *string
	EquipmentType *string
	Status        *string
}

// RentalStats backs the contract stats endpoint.
type RentalStats struct {
	TotalEquipments   int64
	ActiveEquipments  int64
	TotalMonthlyValue decimal.Decimal
	ByType            map[string]int64
}

//go:generate mockgen -source=rental_repo.go -destination=mock/rental_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rental *EquipmentRental) error
	FindAllByCompany(ctx context.Context, companyID string, filter RentalQueryFilter) ([]EquipmentRental, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EquipmentRental, error)
	FindActiveByCompany(ctx context.Context, companyID string, filter RentalQueryFilter) ([]EquipmentRental, error)
	Update(ctx context.Context, rental *EquipmentRental) error
	Delete(ctx context.Context, companyID string, id string) error
	Stats(ctx context.Context, companyID string) (RentalStats, error)
	CompaniesWithActiveContracts(ctx context.Context) ([]string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	// Rebind onto the transaction connection so every statement issued
	// through the returned repo joins the caller's transaction.
	session := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{
		db: session,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, rental *EquipmentRental) error {
	return r.db.WithContext(ctx).Create(rental).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter RentalQueryFilter) ([]EquipmentRental, error) {
	var rentals []EquipmentRental
	err := r.scopedQuery(ctx, companyID, filter).
		Order("created_at DESC").
		Find(&rentals).Error
	return rentals, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EquipmentRental, error) {
	var rental EquipmentRental
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&rental, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string, filter RentalQueryFilter) ([]EquipmentRental, error) {
	var rentals []EquipmentRental
	err := r.scopedQuery(ctx, companyID, filter).
		Where("status = ?", StatusActive).
		Order("created_at ASC").
		Find(&rentals).Error
	return rentals, err
}

func (r *repository) Update(ctx context.Context, rental *EquipmentRental) error {
	return r.db.WithContext(ctx).Save(rental).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&EquipmentRental{}, "id = ?", id).Error
}

func (r *repository) Stats(ctx context.Context, companyID string) (RentalStats, error) {
	stats := RentalStats{ByType: make(map[string]int64)}

	type typeCount struct {
		EquipmentType string
		Count         int64
	}
	var counts []typeCount
	err := r.db.WithContext(ctx).
		Model(&EquipmentRental{}).
		Scopes(tenant.Scope(companyID)).
		Select("equipment_type, COUNT(*) AS count").
		Group("equipment_type").
		Find(&counts).Error
	if err != nil {
		return RentalStats{}, err
	}
	for _, c := range counts {
		stats.ByType[c.EquipmentType] = c.Count
		stats.TotalEquipments += c.Count
	}

	err = r.db.WithContext(ctx).
		Model(&EquipmentRental{}).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusActive).
		Count(&stats.ActiveEquipments).Error
	if err != nil {
		return RentalStats{}, err
	}

	var total decimal.NullDecimal
	err = r.db.WithContext(ctx).
		Model(&EquipmentRental{}).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusActive).
		Select("COALESCE(SUM(monthly_value), 0)").
		Scan(&total).Error
	if err != nil {
		return RentalStats{}, err
	}
	if total.Valid {
		stats.TotalMonthlyValue = total.Decimal
	}

	return stats, nil
}

// CompaniesWithActiveContracts lists every tenant the monthly batch job
// has to visit.
func (r *repository) CompaniesWithActiveContracts(ctx context.Context) ([]string, error) {
	var companyIDs []string
	err := r.db.WithContext(ctx).
		Model(&EquipmentRental{}).
		Where("status = ?", StatusActive).
		Distinct().
		Pluck("company_id", &companyIDs).Error
	return companyIDs, err
}

func (r *repository) scopedQuery(ctx context.Context, companyID string, filter RentalQueryFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.EquipmentType != nil && *filter.EquipmentType != "" {
		db = db.Where("equipment_type = ?", *filter.EquipmentType)
	}
	if filter.Status != nil && *filter.Status != "" {
		db = db.Where("status = ?", *filter.Status)
	}
	return db
}
