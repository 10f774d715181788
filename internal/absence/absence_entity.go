package absence

import (
	"time"

	"github.com/google/uuid"
)

const StatusApproved = "aprovado"

// TimeRecord is one time-clock entry. Only the date matters here; clock
// in/out times live with the attendance screens, outside this service.
type TimeRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_time_records_company_employee"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_time_records_company_employee"`
	Date       time.Time `gorm:"column:data;type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TimeRecord) TableName() string {
	return "rh.time_records"
}

type MedicalCertificate struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	StartDate time.Time `gorm:"column:data_inicio;type:date;not null"`
	EndDate   time.Time `gorm:"column:data_fim;type:date;not null"`
	Kind      string    `gorm:"column:tipo;type:varchar(50)"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pendente'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MedicalCertificate) TableName() string {
	return "rh.medical_certificates"
}

type Vacation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	StartDate time.Time `gorm:"column:data_inicio;type:date;not null"`
	EndDate   time.Time `gorm:"column:data_fim;type:date;not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pendente'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Vacation) TableName() string {
	return "rh.vacations"
}

type License struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	StartDate time.Time `gorm:"column:data_inicio;type:date;not null"`
	EndDate   time.Time `gorm:"column:data_fim;type:date;not null"`
	Kind      string    `gorm:"column:tipo;type:varchar(50)"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pendente'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (License) TableName() string {
	return "rh.licenses"
}
