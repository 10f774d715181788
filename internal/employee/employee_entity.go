package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ManagerID *uuid.UUID `gorm:"type:uuid"`

	FullName       string `gorm:"column:nome;type:varchar(200);not null"`
	CPF            string `gorm:"column:cpf;type:varchar(14)"`
	EmployeeNumber string `gorm:"column:matricula;type:varchar(30)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "rh.employees"
}
