package payable

type PayableResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	SupplierID     *string `json:"supplier_id,omitempty"`
	DocumentNumber string  `json:"document_number"`
	Description    string  `json:"description"`
	Amount         string  `json:"amount"`
	DueDate        string  `json:"due_date"`
	Status         string  `json:"status"`
	FinancialClass string  `json:"financial_class"`
}
