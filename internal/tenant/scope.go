package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company. Every table in the rh and
// financeiro schemas carries a company_id column.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ReferenceMonthScope restricts a query to one payment month/year pair,
// used by payment reconciliation lookups.
func ReferenceMonthScope(year, month int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("payment_year = ? AND payment_month = ?", year, month)
	}
}
