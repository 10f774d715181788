package rental

type CreateRentalRequest struct {
	EmployeeID           string  `json:"employee_id" binding:"required,uuid"`
	EquipmentType        string  `json:"equipment_type" binding:"required,oneof=vehicle computer phone other"`
	EquipmentName        string  `json:"equipment_name" binding:"required"`
	EquipmentDescription *string `json:"equipment_description"`
	Brand                *string `json:"brand"`
	Model                *string `json:"model"`
	SerialNumber         *string `json:"serial_number"`
	LicensePlate         *string `json:"license_plate"`
	MonthlyValue         string  `json:"monthly_value" binding:"required"`
	StartDate            string  `json:"start_date" binding:"required"`
	EndDate              *string `json:"end_date"`
}

type UpdateRentalRequest struct {
	EquipmentType        string  `json:"equipment_type" binding:"required,oneof=vehicle computer phone other"`
	EquipmentName        string  `json:"equipment_name" binding:"required"`
	EquipmentDescription *string `json:"equipment_description"`
	Brand                *string `json:"brand"`
	Model                *string `json:"model"`
	SerialNumber         *string `json:"serial_number"`
	LicensePlate         *string `json:"license_plate"`
	MonthlyValue         string  `json:"monthly_value" binding:"required"`
	StartDate            string  `json:"start_date" binding:"required"`
	EndDate              *string `json:"end_date"`
	Status               string  `json:"status" binding:"required,oneof=active inactive terminated"`
}

type RentalResponse struct {
	ID                   string  `json:"id"`
	CompanyID            string  `json:"company_id"`
	EmployeeID           string  `json:"employee_id"`
	EquipmentType        string  `json:"equipment_type"`
	EquipmentName        string  `json:"equipment_name"`
	EquipmentDescription *string `json:"equipment_description,omitempty"`
	Brand                *string `json:"brand,omitempty"`
	Model                *string `json:"model,omitempty"`
	SerialNumber         *string `json:"serial_number,omitempty"`
	LicensePlate         *string `json:"license_plate,omitempty"`
	MonthlyValue         string  `json:"monthly_value"`
	StartDate            string  `json:"start_date"`
	EndDate              *string `json:"end_date,omitempty"`
	Status               string  `json:"status"`
}

type RentalStatsResponse struct {
	TotalEquipments   int64            `json:"total_equipments"`
	ActiveEquipments  int64            `json:"active_equipments"`
	TotalMonthlyValue string           `json:"total_monthly_value"`
	ByType            map[string]int64 `json:"by_type"`
}

type MarkPaymentPaidRequest struct {
	PaymentDate      string  `json:"payment_date" binding:"required"`
	PaymentMethod    string  `json:"payment_method" binding:"required,oneof=bank_transfer pix cash check"`
	PaymentReference *string `json:"payment_reference"`
}

type PaymentResponse struct {
	ID                string  `json:"id"`
	CompanyID         string  `json:"company_id"`
	EquipmentRentalID string  `json:"equipment_rental_id"`
	PaymentYear       int     `json:"payment_year"`
	PaymentMonth      int     `json:"payment_month"`
	Amount            string  `json:"amount"`
	Status            string  `json:"status"`
	PaymentDate       *string `json:"payment_date,omitempty"`
	PaymentMethod     *string `json:"payment_method,omitempty"`
	PaymentReference  *string `json:"payment_reference,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

type ProcessBatchRequest struct {
	Period                string `json:"period" binding:"required"`
	CreatePayments        *bool  `json:"create_payments"`
	OverrideExisting      bool   `json:"override_existing"`
	CreateApprovals       *bool  `json:"create_approvals"`
	CreateAccountsPayable *bool  `json:"create_accounts_payable"`
	AccountsPayableMode   string `json:"accounts_payable_mode" binding:"omitempty,oneof=per_employee single_total"`
	AccountsPayableDueDay int    `json:"accounts_payable_due_day" binding:"omitempty,min=1,max=31"`
	EmployeeID            string `json:"employee_id" binding:"omitempty,uuid"`
	EquipmentType         string `json:"equipment_type" binding:"omitempty,oneof=vehicle computer phone other"`
}

// Options maps the request onto batch options. Side effects the caller
// left unspecified run by default; only override_existing is opt-in.
func (r ProcessBatchRequest) Options() BatchOptions {
	return BatchOptions{
		CreatePayments:        r.CreatePayments == nil || *r.CreatePayments,
		OverrideExisting:      r.OverrideExisting,
		CreateApprovals:       r.CreateApprovals == nil || *r.CreateApprovals,
		CreateAccountsPayable: r.CreateAccountsPayable == nil || *r.CreateAccountsPayable,
		AccountsPayableMode:   r.AccountsPayableMode,
		AccountsPayableDueDay: r.AccountsPayableDueDay,
		Filters: CalculationFilters{
			EmployeeID:    r.EmployeeID,
			EquipmentType: r.EquipmentType,
		},
	}
}
