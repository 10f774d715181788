package absence

import (
	"context"
	"time"

	"rh-backoffice/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=absence_repo.go -destination=mock/absence_repo_mock.go -package=mock
type Repository interface {
	FindTimeRecordDates(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]time.Time, error)
	FindApprovedCertificates(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]MedicalCertificate, error)
	FindApprovedVacations(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Vacation, error)
	FindApprovedLicenses(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]License, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindTimeRecordDates(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&TimeRecord{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("data BETWEEN ? AND ?", start, end).
		Pluck("data", &dates).Error
	return dates, err
}

func (r *repository) FindApprovedCertificates(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]MedicalCertificate, error) {
	var certificates []MedicalCertificate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("data_inicio <= ? AND data_fim >= ?", end, start).
		Find(&certificates).Error
	return certificates, err
}

func (r *repository) FindApprovedVacations(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]Vacation, error) {
	var vacations []Vacation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("data_inicio <= ? AND data_fim >= ?", end, start).
		Find(&vacations).Error
	return vacations, err
}

func (r *repository) FindApprovedLicenses(
	ctx context.Context,
	companyID, employeeID string,
	start, end time.Time,
) ([]License, error) {
	var licenses []License
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("data_inicio <= ? AND data_fim >= ?", end, start).
		Find(&licenses).Error
	return licenses, err
}
