package approval

import (
	"context"
	"database/sql"

	"rh-backoffice/internal/tenant"

	"gorm.io/gorm"
)

// QueryFilter narrows approval listings for the manager portal.
type QueryFilter struct {
	Status         *string
	ReferenceMonth *int
	ReferenceYear  *int
	ApproverID     *string
}

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateMany(ctx context.Context, approvals []Approval) error
	FindAllByCompany(ctx context.Context, companyID string, filter QueryFilter) ([]Approval, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Approval, error)
	Update(ctx context.Context, approval *Approval) error
	FindByCompany(ctx context.Context, companyID string) ([]Approval, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{
		db: session,
		tx: tx,
	}
}

func (r *repository) CreateMany(ctx context.Context, approvals []Approval) error {
	if len(approvals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&approvals).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter QueryFilter) ([]Approval, error) {
	db := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.Status != nil && *filter.Status != "" {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.ReferenceMonth != nil {
		db = db.Where("mes_referencia = ?", *filter.ReferenceMonth)
	}
	if filter.ReferenceYear != nil {
		db = db.Where("ano_referencia = ?", *filter.ReferenceYear)
	}
	if filter.ApproverID != nil && *filter.ApproverID != "" {
		db = db.Where("aprovado_por = ?", *filter.ApproverID)
	}

	var approvals []Approval
	err := db.Order("created_at DESC").Find(&approvals).Error
	return approvals, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Approval, error) {
	var approval Approval
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&approval, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *repository) Update(ctx context.Context, approval *Approval) error {
	return r.db.WithContext(ctx).Save(approval).Error
}

func (r *repository) FindByCompany(ctx context.Context, companyID string) ([]Approval, error) {
	var approvals []Approval
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Find(&approvals).Error
	return approvals, err
}
