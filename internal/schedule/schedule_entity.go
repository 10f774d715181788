package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Weekdays is the set of weekdays a shift marks as working days,
// stored as a jsonb array (0 = Sunday .. 6 = Saturday).
type Weekdays []time.Weekday

func (w Weekdays) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *Weekdays) Scan(value any) error {
	if value == nil {
		*w = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for Weekdays")
	}
	return json.Unmarshal(raw, w)
}

func (w Weekdays) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

type WorkShift struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name        string   `gorm:"column:nome;type:varchar(100);not null"`
	StartTime   string   `gorm:"column:hora_inicio;type:varchar(5)"`
	EndTime     string   `gorm:"column:hora_fim;type:varchar(5)"`
	WorkingDays Weekdays `gorm:"column:dias_semana;type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (WorkShift) TableName() string {
	return "rh.work_shifts"
}

// EmployeeShift assigns a shift to an employee for a validity window.
// An open EndDate means the assignment is still current.
type EmployeeShift struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_shifts_company_employee"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_employee_shifts_company_employee"`
	ShiftID    uuid.UUID `gorm:"type:uuid;not null"`

	StartDate time.Time  `gorm:"column:data_inicio;type:date;not null"`
	EndDate   *time.Time `gorm:"column:data_fim;type:date"`

	Shift *WorkShift `gorm:"foreignKey:ShiftID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmployeeShift) TableName() string {
	return "rh.employee_shifts"
}

// CoversDate reports whether the assignment is valid on the given day.
func (e EmployeeShift) CoversDate(day time.Time) bool {
	if day.Before(e.StartDate) {
		return false
	}
	if e.EndDate != nil && day.After(*e.EndDate) {
		return false
	}
	return true
}
