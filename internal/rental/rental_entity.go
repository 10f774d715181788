package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

const (
	EquipmentTypeVehicle  = "vehicle"
	EquipmentTypeComputer = "computer"
	EquipmentTypePhone    = "phone"
	EquipmentTypeOther    = "other"
)

// EquipmentRental is one rental contract: an employee provides an
// equipment to the company for a monthly value. Immutable once a payment
// references it for a period, except for status transitions.
type EquipmentRental struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_equipment_rentals_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	EquipmentType        string  `gorm:"type:varchar(20);not null"`
	EquipmentName        string  `gorm:"type:varchar(200);not null"`
	EquipmentDescription *string `gorm:"type:text"`
	Brand                *string `gorm:"type:varchar(100)"`
	Model                *string `gorm:"type:varchar(100)"`
	SerialNumber         *string `gorm:"type:varchar(100)"`
	LicensePlate         *string `gorm:"type:varchar(10)"`

	MonthlyValue decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StartDate    time.Time       `gorm:"type:date;not null"`
	EndDate      *time.Time      `gorm:"type:date"`
	Status       string          `gorm:"type:varchar(20);not null;default:'active';index:idx_equipment_rentals_company_status"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (EquipmentRental) TableName() string {
	return "rh.equipment_rentals"
}
