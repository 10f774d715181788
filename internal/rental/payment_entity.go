package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodPix          = "pix"
	PaymentMethodCash         = "cash"
	PaymentMethodCheck        = "check"
)

// RentalPayment is one row per (contract, payment year, payment month).
// The unique index backs the at-most-one-active-payment invariant, so a
// concurrent batch run hits a constraint violation instead of inserting
// a duplicate.
type RentalPayment struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;index"`
	EquipmentRentalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_rental_payment_period"`

	PaymentYear  int `gorm:"not null;uniqueIndex:uq_rental_payment_period"`
	PaymentMonth int `gorm:"not null;uniqueIndex:uq_rental_payment_period"`

	Amount           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status           string          `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentDate      *time.Time      `gorm:"type:date"`
	PaymentMethod    *string         `gorm:"type:varchar(20)"`
	PaymentReference *string         `gorm:"type:varchar(100)"`
	Notes            string          `gorm:"type:text"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RentalPayment) TableName() string {
	return "rh.equipment_rental_payments"
}
