package payable

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending = "pendente"
	StatusPaid    = "pago"

	// ClassEquipmentRental tags entries created by the rental batch so
	// finance can filter them out of the general ledger view.
	ClassEquipmentRental = "LOCACAO_EQUIPAMENTOS"
)

// AccountPayable lives in the financeiro schema, outside the rh
// domain. The rental batch only ever inserts rows here; payment flow
// is owned by the finance system.
type AccountPayable struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	SupplierID     *uuid.UUID `gorm:"column:fornecedor_id;type:uuid"`
	DocumentNumber string     `gorm:"column:numero_documento;type:varchar(50);not null"`
	Description    string     `gorm:"column:descricao;type:text;not null"`

	Amount     decimal.Decimal  `gorm:"column:valor;type:numeric(12,2);not null"`
	DueDate    time.Time        `gorm:"column:data_vencimento;type:date;not null"`
	PaidAt     *time.Time       `gorm:"column:data_pagamento"`
	PaidAmount *decimal.Decimal `gorm:"column:valor_pago;type:numeric(12,2)"`

	Status         string     `gorm:"type:varchar(20);not null;default:'pendente'"`
	FinancialClass string     `gorm:"column:classe_financeira;type:varchar(50);not null"`
	CostCenterID   *uuid.UUID `gorm:"column:cost_center_id;type:uuid"`
	ProjectID      *uuid.UUID `gorm:"column:project_id;type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AccountPayable) TableName() string {
	return "financeiro.accounts_payable"
}
