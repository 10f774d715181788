package rental

import (
	"context"
	"encoding/json"
	"fmt"

	"rh-backoffice/internal/absence"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// pgAggregateSource calls the database function that pre-aggregates
// absence discounts per contract. The function lives next to the rh
// schema and already understands flexible work shifts.
type pgAggregateSource struct {
	db *gorm.DB
}

func NewPgAggregateSource(db *gorm.DB) AggregateSource {
	return &pgAggregateSource{db: db}
}

type aggregateRow struct {
	EquipmentRentalID string          `gorm:"column:equipment_rental_id"`
	EmployeeID        string          `gorm:"column:employee_id"`
	EmployeeName      string          `gorm:"column:employee_name"`
	EquipmentName     string          `gorm:"column:equipment_name"`
	EquipmentType     string          `gorm:"column:equipment_type"`
	Period            string          `gorm:"column:period"`
	MonthlyValue      decimal.Decimal `gorm:"column:monthly_value"`
	DailyValue        decimal.Decimal `gorm:"column:daily_value"`
	AbsenceDetails    []byte          `gorm:"column:absence_details"`
	TotalAbsenceDays  int             `gorm:"column:total_absence_days"`
	TotalDiscount     decimal.Decimal `gorm:"column:total_discount"`
	FinalValue        decimal.Decimal `gorm:"column:final_value"`
}

func (s *pgAggregateSource) CalculateAll(
	ctx context.Context,
	companyID string,
	year, month int,
) ([]AbsenceCalculation, error) {
	var rows []aggregateRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT * FROM rh.calculate_all_equipment_rental_absence_discounts(?, ?, ?)`,
		companyID, year, month,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAggregateUnavailable, err)
	}

	calculations := make([]AbsenceCalculation, 0, len(rows))
	for _, row := range rows {
		days, err := parseAbsenceDetails(row.AbsenceDetails)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed absence_details for rental %s: %v",
				ErrAggregateUnavailable, row.EquipmentRentalID, err)
		}
		calculations = append(calculations, AbsenceCalculation{
			EquipmentRentalID:      row.EquipmentRentalID,
			EmployeeID:             row.EmployeeID,
			EmployeeName:           row.EmployeeName,
			EquipmentName:          row.EquipmentName,
			EquipmentType:          row.EquipmentType,
			Period:                 row.Period,
			MonthlyValue:           row.MonthlyValue,
			DailyValue:             row.DailyValue,
			AbsenceDays:            days,
			TotalAbsenceDays:       row.TotalAbsenceDays,
			UnjustifiedAbsenceDays: absence.CountUnjustified(days),
			TotalDiscount:          row.TotalDiscount,
			FinalValue:             row.FinalValue,
		})
	}
	return calculations, nil
}

func parseAbsenceDetails(raw []byte) ([]absence.Day, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var days []absence.Day
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, err
	}
	return days, nil
}
