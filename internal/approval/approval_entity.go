package approval

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status values follow the financeiro conventions used downstream.
const (
	StatusPending  = "pendente"
	StatusApproved = "aprovado"
	StatusRejected = "rejeitado"
)

// Approval is one manager sign-off request per (employee, contract,
// reference month). Created by the batch run, resolved by the manager
// portal.
type Approval struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;index:idx_rental_approvals_company_status"`
	EmployeeID        uuid.UUID `gorm:"type:uuid;not null;index"`
	EquipmentRentalID uuid.UUID `gorm:"type:uuid;not null"`

	ReferenceMonth int `gorm:"column:mes_referencia;not null"`
	ReferenceYear  int `gorm:"column:ano_referencia;not null"`

	ApprovedValue decimal.Decimal `gorm:"column:valor_aprovado;type:numeric(12,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pendente';index:idx_rental_approvals_company_status"`

	ApproverID *uuid.UUID `gorm:"column:aprovado_por;type:uuid"`
	ApprovedAt *time.Time `gorm:"column:data_aprovacao"`
	Notes      *string    `gorm:"column:observacoes;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Approval) TableName() string {
	return "rh.equipment_rental_approvals"
}
