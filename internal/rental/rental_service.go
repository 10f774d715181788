package rental

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rh-backoffice/internal/employee"
	rentalerrors "rh-backoffice/internal/rental/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rental_service.go -destination=mock/rental_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateRentalRequest) (RentalResponse, error)
	GetAll(ctx context.Context, companyID string, filter RentalQueryFilter) ([]RentalResponse, error)
	GetByID(ctx context.Context, companyID, id string) (RentalResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateRentalRequest) (RentalResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Stats(ctx context.Context, companyID string) (RentalStatsResponse, error)

	GetPayments(ctx context.Context, companyID string, filter PaymentQueryFilter) ([]PaymentResponse, error)
	MarkPaymentPaid(ctx context.Context, companyID, actorID, id string, req MarkPaymentPaidRequest) (PaymentResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	paymentRepo  PaymentRepository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	paymentRepo PaymentRepository,
	employeeRepo employee.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("rental.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rental.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		paymentRepo:  paymentRepo,
		employeeRepo: employeeRepo,
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateRentalRequest) (RentalResponse, error) {
	s.logger.Debug("create rental requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create rental begin tx failed", zap.Error(err))
		return RentalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RentalResponse{}, rentalerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RentalResponse{}, rentalerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return RentalResponse{}, rentalerrors.ErrInvalidEmployeeID
	}

	monthlyValue, err := parseMonthlyValue(req.MonthlyValue)
	if err != nil {
		return RentalResponse{}, err
	}
	startDate, endDate, err := parseContractDates(req.StartDate, req.EndDate)
	if err != nil {
		return RentalResponse{}, err
	}

	belongs, err := s.employeeRepo.BelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create rental employee company check failed", zap.Error(err))
		return RentalResponse{}, err
	}
	if !belongs {
		return RentalResponse{}, rentalerrors.ErrEmployeeNotInCompany
	}

	rental := &EquipmentRental{
		ID:                   uuid.New(),
		CompanyID:            companyUUID,
		EmployeeID:           employeeUUID,
		EquipmentType:        req.EquipmentType,
		EquipmentName:        req.EquipmentName,
		EquipmentDescription: req.EquipmentDescription,
		Brand:                req.Brand,
		Model:                req.Model,
		SerialNumber:         req.SerialNumber,
		LicensePlate:         req.LicensePlate,
		MonthlyValue:         monthlyValue,
		StartDate:            startDate,
		EndDate:              endDate,
		Status:               StatusActive,
		CreatedBy:            actorUUID,
	}

	if err := qtx.Create(ctx, rental); err != nil {
		s.logger.Error("create rental persist failed", zap.Error(err))
		return RentalResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create rental commit failed", zap.Error(err))
		return RentalResponse{}, err
	}
	s.logger.Info("create rental success",
		zap.String("rental_id", rental.ID.String()),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapRentalToResponse(*rental), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter RentalQueryFilter) ([]RentalResponse, error) {
	rentals, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]RentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		responses = append(responses, mapRentalToResponse(rental))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (RentalResponse, error) {
	rental, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RentalResponse{}, rentalerrors.ErrRentalNotFound
		}
		return RentalResponse{}, err
	}
	return mapRentalToResponse(*rental), nil
}

func (s *service) Update(ctx context.Context, companyID, actorID, id string, req UpdateRentalRequest) (RentalResponse, error) {
	s.logger.Debug("update rental requested",
		zap.String("rental_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update rental begin tx failed", zap.Error(err))
		return RentalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err = uuid.Parse(companyID); err != nil {
		return RentalResponse{}, rentalerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RentalResponse{}, rentalerrors.ErrInvalidActorID
	}

	monthlyValue, err := parseMonthlyValue(req.MonthlyValue)
	if err != nil {
		return RentalResponse{}, err
	}
	startDate, endDate, err := parseContractDates(req.StartDate, req.EndDate)
	if err != nil {
		return RentalResponse{}, err
	}

	rental, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RentalResponse{}, rentalerrors.ErrRentalNotFound
		}
		return RentalResponse{}, err
	}

	rental.EquipmentType = req.EquipmentType
	rental.EquipmentName = req.EquipmentName
	rental.EquipmentDescription = req.EquipmentDescription
	rental.Brand = req.Brand
	rental.Model = req.Model
	rental.SerialNumber = req.SerialNumber
	rental.LicensePlate = req.LicensePlate
	rental.MonthlyValue = monthlyValue
	rental.StartDate = startDate
	rental.EndDate = endDate
	rental.Status = req.Status
	rental.UpdatedBy = &actorUUID

	if err := qtx.Update(ctx, rental); err != nil {
		s.logger.Error("update rental persist failed",
			zap.String("rental_id", id),
			zap.Error(err),
		)
		return RentalResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update rental commit failed",
			zap.String("rental_id", id),
			zap.Error(err),
		)
		return RentalResponse{}, err
	}
	s.logger.Info("update rental success",
		zap.String("rental_id", id),
		zap.String("status", rental.Status),
	)
	return mapRentalToResponse(*rental), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Stats(ctx context.Context, companyID string) (RentalStatsResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return RentalStatsResponse{}, rentalerrors.ErrInvalidCompanyID
	}
	stats, err := s.repo.Stats(ctx, companyID)
	if err != nil {
		return RentalStatsResponse{}, err
	}
	return RentalStatsResponse{
		TotalEquipments:   stats.TotalEquipments,
		ActiveEquipments:  stats.ActiveEquipments,
		TotalMonthlyValue: stats.TotalMonthlyValue.StringFixed(2),
		ByType:            stats.ByType,
	}, nil
}

func (s *service) GetPayments(ctx context.Context, companyID string, filter PaymentQueryFilter) ([]PaymentResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, rentalerrors.ErrInvalidCompanyID
	}
	payments, err := s.paymentRepo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, mapPaymentToResponse(payment))
	}
	return responses, nil
}

func (s *service) MarkPaymentPaid(ctx context.Context, companyID, actorID, id string, req MarkPaymentPaidRequest) (PaymentResponse, error) {
	s.logger.Debug("mark payment paid requested",
		zap.String("payment_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark payment paid begin tx failed", zap.Error(err))
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.paymentRepo.WithTx(tx)

	if _, err = uuid.Parse(companyID); err != nil {
		return PaymentResponse{}, rentalerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PaymentResponse{}, rentalerrors.ErrInvalidActorID
	}
	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		return PaymentResponse{}, err
	}

	payment, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, rentalerrors.ErrPaymentNotFound
		}
		return PaymentResponse{}, err
	}
	if payment.Status != PaymentStatusPending {
		return PaymentResponse{}, rentalerrors.ErrPaymentNotPending
	}

	method := req.PaymentMethod
	payment.Status = PaymentStatusPaid
	payment.PaymentDate = &paymentDate
	payment.PaymentMethod = &method
	payment.PaymentReference = req.PaymentReference
	payment.UpdatedBy = &actorUUID

	if err := qtx.Update(ctx, payment); err != nil {
		s.logger.Error("mark payment paid persist failed",
			zap.String("payment_id", id),
			zap.Error(err),
		)
		return PaymentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("mark payment paid commit failed",
			zap.String("payment_id", id),
			zap.Error(err),
		)
		return PaymentResponse{}, err
	}
	s.logger.Info("mark payment paid success",
		zap.String("payment_id", id),
	)
	return mapPaymentToResponse(*payment), nil
}

func parseMonthlyValue(v string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(v)
	if err != nil || !value.IsPositive() {
		return decimal.Decimal{}, rentalerrors.ErrInvalidMonthlyValue
	}
	return value, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, rentalerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseContractDates(start string, end *string) (time.Time, *time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, nil, err
	}
	var endDate *time.Time
	if end != nil && *end != "" {
		parsed, err := parseDate(*end)
		if err != nil {
			return time.Time{}, nil, err
		}
		if startDate.After(parsed) {
			return time.Time{}, nil, rentalerrors.ErrInvalidDateRange
		}
		endDate = &parsed
	}
	return startDate, endDate, nil
}

func mapRentalToResponse(rental EquipmentRental) RentalResponse {
	resp := RentalResponse{
		ID:                   rental.ID.String(),
		CompanyID:            rental.CompanyID.String(),
		EmployeeID:           rental.EmployeeID.String(),
		EquipmentType:        rental.EquipmentType,
		EquipmentName:        rental.EquipmentName,
		EquipmentDescription: rental.EquipmentDescription,
		Brand:                rental.Brand,
		Model:                rental.Model,
		SerialNumber:         rental.SerialNumber,
		LicensePlate:         rental.LicensePlate,
		MonthlyValue:         rental.MonthlyValue.StringFixed(2),
		StartDate:            rental.StartDate.Format("2006-01-02"),
		Status:               rental.Status,
	}
	if rental.EndDate != nil {
		v := rental.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	return resp
}

func mapPaymentToResponse(payment RentalPayment) PaymentResponse {
	resp := PaymentResponse{
		ID:                payment.ID.String(),
		CompanyID:         payment.CompanyID.String(),
		EquipmentRentalID: payment.EquipmentRentalID.String(),
		PaymentYear:       payment.PaymentYear,
		PaymentMonth:      payment.PaymentMonth,
		Amount:            payment.Amount.StringFixed(2),
		Status:            payment.Status,
		PaymentMethod:     payment.PaymentMethod,
		PaymentReference:  payment.PaymentReference,
		Notes:             payment.Notes,
	}
	if payment.PaymentDate != nil {
		v := payment.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &v
	}
	return resp
}
