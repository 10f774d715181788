package payable

import (
	"context"
	"database/sql"

	"rh-backoffice/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payable_repo.go -destination=mock/payable_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateMany(ctx context.Context, payables []AccountPayable) error
	FindByCompanyAndClass(ctx context.Context, companyID, financialClass string) ([]AccountPayable, error)
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

func (r *repository) CreateMany(ctx context.Context, payables []AccountPayable) error {
	if len(payables) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&payables).Error
}

func (r *repository) FindByCompanyAndClass(ctx context.Context, companyID, financialClass string) ([]AccountPayable, error) {
	var payables []AccountPayable
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("classe_financeira = ?", financialClass).
		Order("data_vencimento ASC").
		Find(&payables).Error
	return payables, err
}
