package approval

type ApproveRequest struct {
	Notes *string `json:"notes"`
}

type RejectRequest struct {
	Notes string `json:"notes" binding:"required"`
}

type ApprovalResponse struct {
	ID                string  `json:"id"`
	CompanyID         string  `json:"company_id"`
	EmployeeID        string  `json:"employee_id"`
	EquipmentRentalID string  `json:"equipment_rental_id"`
	ReferenceMonth    int     `json:"reference_month"`
	ReferenceYear     int     `json:"reference_year"`
	ApprovedValue     string  `json:"approved_value"`
	Status            string  `json:"status"`
	ApproverID        *string `json:"approver_id,omitempty"`
	ApprovedAt        *string `json:"approved_at,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

type ApprovalStatsResponse struct {
	Pending       int    `json:"pending"`
	Approved      int    `json:"approved"`
	Rejected      int    `json:"rejected"`
	PendingAmount string `json:"pending_amount"`
}
