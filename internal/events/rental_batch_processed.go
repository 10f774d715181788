package events

import "time"

const RentalBatchProcessedTopic = "rental.batch.processed.v1"

type RentalBatchProcessedEvent struct {
	EventType          string    `json:"event_type"`
	RequestID          string    `json:"request_id,omitempty"`
	CompanyID          string    `json:"company_id"`
	Period             string    `json:"period"`
	PaymentPeriod      string    `json:"payment_period"`
	ProcessedContracts int       `json:"processed_contracts"`
	CreatedPayments    int       `json:"created_payments"`
	UpdatedPayments    int       `json:"updated_payments"`
	SkippedPayments    int       `json:"skipped_payments"`
	CreatedApprovals   int       `json:"created_approvals"`
	CreatedPayables    int       `json:"created_payables"`
	TotalFinalValue    string    `json:"total_final_value"`
	OccurredAt         time.Time `json:"occurred_at"`
}
