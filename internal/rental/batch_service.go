package rental

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"rh-backoffice/internal/approval"
	"rh-backoffice/internal/employee"
	"rh-backoffice/internal/events"
	"rh-backoffice/internal/messaging/kafka"
	"rh-backoffice/internal/payable"
	rentalerrors "rh-backoffice/internal/rental/errors"
	"rh-backoffice/internal/shared/contextutil"
	"rh-backoffice/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	PayableModePerEmployee = "per_employee"
	PayableModeSingleTotal = "single_total"

	defaultPayableDueDay = 10
)

// BatchOptions selects which side effects a batch run produces beyond
// the calculation itself.
type BatchOptions struct {
	CreatePayments        bool
	OverrideExisting      bool
	CreateApprovals       bool
	CreateAccountsPayable bool
	AccountsPayableMode   string
	AccountsPayableDueDay int
	Filters               CalculationFilters
}

// BatchResult summarizes one run. Counters, not row contents, so the
// caller can render a report without re-reading the tables.
type BatchResult struct {
	Period             string `json:"period"`
	PaymentPeriod      string `json:"payment_period"`
	ProcessedContracts int    `json:"processed_contracts"`
	CreatedPayments    int    `json:"created_payments"`
	UpdatedPayments    int    `json:"updated_payments"`
	SkippedPayments    int    `json:"skipped_payments"`
	CreatedApprovals   int    `json:"created_approvals"`
	CreatedPayables    int    `json:"created_payables"`
	TotalMonthlyValue  string `json:"total_monthly_value"`
	TotalDiscount      string `json:"total_discount"`
	TotalFinalValue    string `json:"total_final_value"`

	Calculations []AbsenceCalculation `json:"calculations"`
}

//go:generate mockgen -source=batch_service.go -destination=mock/batch_service_mock.go -package=mock
type BatchService interface {
	// ProcessPeriod runs the full month-end pipeline for one company and
	// reference period. Payments are written into the following month.
	ProcessPeriod(ctx context.Context, companyID, actorID, period string, opts BatchOptions) (BatchResult, error)
}

type batchService struct {
	db           *sql.DB
	calculator   Calculator
	paymentRepo  PaymentRepository
	approvalRepo approval.Repository
	payableRepo  payable.Repository
	employeeRepo employee.Repository
	counter      counter.Repository
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewBatchService(
	db *sql.DB,
	calc Calculator,
	paymentRepo PaymentRepository,
	approvalRepo approval.Repository,
	payableRepo payable.Repository,
	employeeRepo employee.Repository,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) BatchService {
	l := zap.L().Named("rental.batch")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rental.batch")
	}
	return &batchService{
		db:           db,
		calculator:   calc,
		paymentRepo:  paymentRepo,
		approvalRepo: approvalRepo,
		payableRepo:  payableRepo,
		employeeRepo: employeeRepo,
		counter:      counterRepo,
		outbox:       outbox,
		logger:       l,
	}
}

func (s *batchService) ProcessPeriod(
	ctx context.Context,
	companyID, actorID, period string,
	opts BatchOptions,
) (BatchResult, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return BatchResult{}, rentalerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return BatchResult{}, rentalerrors.ErrInvalidActorID
	}
	p, err := ParsePeriod(period)
	if err != nil {
		return BatchResult{}, err
	}
	mode := opts.AccountsPayableMode
	if mode == "" {
		mode = PayableModePerEmployee
	}
	if opts.CreateAccountsPayable {
		switch mode {
		case PayableModePerEmployee, PayableModeSingleTotal:
		default:
			return BatchResult{}, rentalerrors.ErrInvalidPayableMode
		}
	}
	dueDay := opts.AccountsPayableDueDay
	if dueDay <= 0 {
		dueDay = defaultPayableDueDay
	}

	// Service rendered in month N is paid in month N+1.
	target := p.Next()

	l := contextutil.GetLogger(ctx, s.logger)
	l.Info("batch run started",
		zap.String("company_id", companyID),
		zap.String("period", p.String()),
		zap.String("payment_period", target.String()),
		zap.Bool("create_payments", opts.CreatePayments),
		zap.Bool("override_existing", opts.OverrideExisting),
	)

	calculations, err := s.calculator.CalculateAll(ctx, companyID, p.String(), opts.Filters)
	if err != nil {
		s.logger.Error("batch calculation failed", zap.Error(err))
		return BatchResult{}, err
	}

	result := BatchResult{
		Period:        p.String(),
		PaymentPeriod: target.String(),
		Calculations:  calculations,
	}

	totalMonthly := decimal.Zero
	totalDiscount := decimal.Zero
	totalFinal := decimal.Zero
	for _, calc := range calculations {
		totalMonthly = totalMonthly.Add(calc.MonthlyValue)
		totalDiscount = totalDiscount.Add(calc.TotalDiscount)
		totalFinal = totalFinal.Add(calc.FinalValue)
	}
	result.ProcessedContracts = len(calculations)
	result.TotalMonthlyValue = totalMonthly.StringFixed(2)
	result.TotalDiscount = totalDiscount.StringFixed(2)
	result.TotalFinalValue = totalFinal.StringFixed(2)

	// All side effects of one run commit or roll back together.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("batch begin tx failed", zap.Error(err))
		return BatchResult{}, err
	}
	defer tx.Rollback()

	qPayments := s.paymentRepo.WithTx(tx)
	qApprovals := s.approvalRepo.WithTx(tx)
	qPayables := s.payableRepo.WithTx(tx)

	if opts.CreatePayments {
		if err := s.reconcilePayments(ctx, qPayments, companyUUID, actorUUID, target, calculations, opts.OverrideExisting, &result); err != nil {
			return BatchResult{}, err
		}
	}

	if opts.CreateApprovals {
		if err := s.createApprovals(ctx, qApprovals, companyUUID, p, calculations, &result); err != nil {
			return BatchResult{}, err
		}
	}

	if opts.CreateAccountsPayable {
		if err := s.createPayables(ctx, qPayables, companyUUID, p, target, dueDay, mode, calculations, totalFinal, &result); err != nil {
			return BatchResult{}, err
		}
	}

	if s.outbox != nil {
		if err := s.queueProcessedEvent(ctx, tx, companyID, result); err != nil {
			return BatchResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("batch commit failed", zap.Error(err))
		return BatchResult{}, err
	}

	s.logger.Info("batch run finished",
		zap.String("company_id", companyID),
		zap.String("period", p.String()),
		zap.Int("processed_contracts", result.ProcessedContracts),
		zap.Int("created_payments", result.CreatedPayments),
		zap.Int("updated_payments", result.UpdatedPayments),
		zap.Int("skipped_payments", result.SkippedPayments),
		zap.Int("created_approvals", result.CreatedApprovals),
		zap.Int("created_payables", result.CreatedPayables),
	)
	return result, nil
}

func (s *batchService) reconcilePayments(
	ctx context.Context,
	repo PaymentRepository,
	companyUUID, actorUUID uuid.UUID,
	target Period,
	calculations []AbsenceCalculation,
	overrideExisting bool,
	result *BatchResult,
) error {
	existing, err := repo.FindByCompanyAndMonth(ctx, companyUUID.String(), target.Year, target.Month)
	if err != nil {
		s.logger.Error("batch load existing payments failed", zap.Error(err))
		return err
	}
	existingByRental := make(map[string]RentalPayment, len(existing))
	for _, payment := range existing {
		existingByRental[payment.EquipmentRentalID.String()] = payment
	}

	for _, calc := range calculations {
		notes := paymentNotes(calc)

		current, found := existingByRental[calc.EquipmentRentalID]
		if found {
			if !overrideExisting || current.Status != PaymentStatusPending {
				result.SkippedPayments++
				continue
			}
			current.Amount = calc.FinalValue
			current.Notes = notes
			current.UpdatedBy = &actorUUID
			if err := repo.Update(ctx, &current); err != nil {
				s.logger.Error("batch update payment failed",
					zap.String("equipment_rental_id", calc.EquipmentRentalID),
					zap.Error(err),
				)
				return err
			}
			result.UpdatedPayments++
			continue
		}

		rentalUUID, err := uuid.Parse(calc.EquipmentRentalID)
		if err != nil {
			return rentalerrors.ErrInvalidRentalID
		}
		payment := RentalPayment{
			ID:                uuid.New(),
			CompanyID:         companyUUID,
			EquipmentRentalID: rentalUUID,
			PaymentYear:       target.Year,
			PaymentMonth:      target.Month,
			Amount:            calc.FinalValue,
			Status:            PaymentStatusPending,
			Notes:             notes,
			CreatedBy:         actorUUID,
		}
		if err := repo.Create(ctx, &payment); err != nil {
			if isDuplicatePaymentErr(err) {
				// Concurrent run already inserted this period. Count it
				// as skipped, same outcome as finding it up front.
				result.SkippedPayments++
				continue
			}
			s.logger.Error("batch create payment failed",
				zap.String("equipment_rental_id", calc.EquipmentRentalID),
				zap.Error(err),
			)
			return err
		}
		result.CreatedPayments++
	}
	return nil
}

func (s *batchService) createApprovals(
	ctx context.Context,
	repo approval.Repository,
	companyUUID uuid.UUID,
	p Period,
	calculations []AbsenceCalculation,
	result *BatchResult,
) error {
	employeeIDs := make([]string, 0, len(calculations))
	for _, calc := range calculations {
		employeeIDs = append(employeeIDs, calc.EmployeeID)
	}
	employees, err := s.employeeRepo.FindByIDs(ctx, companyUUID.String(), employeeIDs)
	if err != nil {
		s.logger.Error("batch load employees failed", zap.Error(err))
		return err
	}
	managerByEmployee := make(map[string]*uuid.UUID, len(employees))
	for _, emp := range employees {
		managerByEmployee[emp.ID.String()] = emp.ManagerID
	}

	approvals := make([]approval.Approval, 0, len(calculations))
	for _, calc := range calculations {
		// No manager, no sign-off chain. The payment stands on the batch
		// calculation alone.
		if managerByEmployee[calc.EmployeeID] == nil {
			continue
		}
		employeeUUID, err := uuid.Parse(calc.EmployeeID)
		if err != nil {
			return rentalerrors.ErrInvalidEmployeeID
		}
		rentalUUID, err := uuid.Parse(calc.EquipmentRentalID)
		if err != nil {
			return rentalerrors.ErrInvalidRentalID
		}
		approvals = append(approvals, approval.Approval{
			ID:                uuid.New(),
			CompanyID:         companyUUID,
			EmployeeID:        employeeUUID,
			EquipmentRentalID: rentalUUID,
			ReferenceMonth:    p.Month,
			ReferenceYear:     p.Year,
			ApprovedValue:     calc.FinalValue,
			Status:            approval.StatusPending,
		})
	}
	if err := repo.CreateMany(ctx, approvals); err != nil {
		s.logger.Error("batch create approvals failed", zap.Error(err))
		return err
	}
	result.CreatedApprovals = len(approvals)
	return nil
}

func (s *batchService) createPayables(
	ctx context.Context,
	repo payable.Repository,
	companyUUID uuid.UUID,
	p, target Period,
	dueDay int,
	mode string,
	calculations []AbsenceCalculation,
	totalFinal decimal.Decimal,
	result *BatchResult,
) error {
	if len(calculations) == 0 {
		return nil
	}
	dueDate := target.DueDate(dueDay)

	var payables []payable.AccountPayable
	switch mode {
	case PayableModePerEmployee:
		// One row per employee: a person renting two equipments receives a
		// single payable for the sum.
		type employeeTotal struct {
			employeeName string
			contracts    int
			amount       decimal.Decimal
		}
		order := make([]string, 0, len(calculations))
		totals := make(map[string]*employeeTotal, len(calculations))
		for _, calc := range calculations {
			agg, ok := totals[calc.EmployeeID]
			if !ok {
				agg = &employeeTotal{employeeName: calc.EmployeeName}
				totals[calc.EmployeeID] = agg
				order = append(order, calc.EmployeeID)
			}
			agg.contracts++
			agg.amount = agg.amount.Add(calc.FinalValue)
		}
		payables = make([]payable.AccountPayable, 0, len(order))
		for _, employeeID := range order {
			agg := totals[employeeID]
			docNumber, err := s.nextDocumentNumber(ctx, companyUUID.String(), target)
			if err != nil {
				return err
			}
			supplierID, err := uuid.Parse(employeeID)
			if err != nil {
				return rentalerrors.ErrInvalidEmployeeID
			}
			payables = append(payables, payable.AccountPayable{
				ID:             uuid.New(),
				CompanyID:      companyUUID,
				SupplierID:     &supplierID,
				DocumentNumber: docNumber,
				Description: fmt.Sprintf("Locação de equipamentos - %s (%s, %d contratos)",
					agg.employeeName, p.String(), agg.contracts),
				Amount:         agg.amount,
				DueDate:        dueDate,
				Status:         payable.StatusPending,
				FinancialClass: payable.ClassEquipmentRental,
			})
		}
	case PayableModeSingleTotal:
		docNumber, err := s.nextDocumentNumber(ctx, companyUUID.String(), target)
		if err != nil {
			return err
		}
		payables = []payable.AccountPayable{{
			ID:             uuid.New(),
			CompanyID:      companyUUID,
			DocumentNumber: docNumber,
			Description: fmt.Sprintf("Locação de equipamentos - total do período %s (%d contratos)",
				p.String(), len(calculations)),
			Amount:         totalFinal,
			DueDate:        dueDate,
			Status:         payable.StatusPending,
			FinancialClass: payable.ClassEquipmentRental,
		}}
	}

	if err := repo.CreateMany(ctx, payables); err != nil {
		s.logger.Error("batch create payables failed", zap.Error(err))
		return err
	}
	result.CreatedPayables = len(payables)
	return nil
}

func (s *batchService) nextDocumentNumber(ctx context.Context, companyID string, target Period) (string, error) {
	seq, err := s.counter.GetNextValue(ctx, companyID, counter.CounterAccountsPayable)
	if err != nil {
		s.logger.Error("batch document number failed", zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("LOC-%04d%02d-%06d", target.Year, target.Month, seq), nil
}

func (s *batchService) queueProcessedEvent(ctx context.Context, tx *sql.Tx, companyID string, result BatchResult) error {
	rid := contextutil.GetRequestID(ctx)
	event := events.RentalBatchProcessedEvent{
		EventType:          "rental_batch_processed",
		RequestID:          rid,
		CompanyID:          companyID,
		Period:             result.Period,
		PaymentPeriod:      result.PaymentPeriod,
		ProcessedContracts: result.ProcessedContracts,
		CreatedPayments:    result.CreatedPayments,
		UpdatedPayments:    result.UpdatedPayments,
		SkippedPayments:    result.SkippedPayments,
		CreatedApprovals:   result.CreatedApprovals,
		CreatedPayables:    result.CreatedPayables,
		TotalFinalValue:    result.TotalFinalValue,
		OccurredAt:         time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal batch event failed", zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "rental_batch",
		AggregateID:   companyID,
		EventType:     event.EventType,
		Topic:         events.RentalBatchProcessedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("batch outbox persist failed", zap.Error(err))
		return err
	}
	return nil
}

// paymentNotes records how the amount was derived, in the wording the
// finance team reads on the payment row.
func paymentNotes(calc AbsenceCalculation) string {
	return fmt.Sprintf(
		"Processado do período %s. Faltas não justificadas: %d. Valor diário: R$ %s.",
		calc.Period, calc.UnjustifiedAbsenceDays, calc.DailyValue.StringFixed(2),
	)
}

func isDuplicatePaymentErr(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_rental_payment_period"
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_rental_payment_period")
}
