package schedule

import (
	"context"
	"time"

	"rh-backoffice/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	FindShiftsByCompany(ctx context.Context, companyID string) ([]WorkShift, error)
	FindAssignmentsForEmployee(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]EmployeeShift, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindShiftsByCompany(ctx context.Context, companyID string) ([]WorkShift, error) {
	var shifts []WorkShift
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("nome ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *repository) FindAssignmentsForEmployee(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]EmployeeShift, error) {
	var assignments []EmployeeShift
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("data_inicio <= ?", end).
		Where("data_fim IS NULL OR data_fim >= ?", start).
		Preload("Shift").
		Order("data_inicio ASC").
		Find(&assignments).Error
	return assignments, err
}
