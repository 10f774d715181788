package payable

import (
	"context"

	payableerrors "rh-backoffice/internal/payable/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=payable_service.go -destination=mock/payable_service_mock.go -package=mock
type Service interface {
	// GetByClass lists a company's payables of one financial class,
	// ordered by due date.
	GetByClass(ctx context.Context, companyID, financialClass string) ([]PayableResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payable.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payable.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByClass(ctx context.Context, companyID, financialClass string) ([]PayableResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, payableerrors.ErrInvalidCompanyID
	}
	if financialClass == "" {
		financialClass = ClassEquipmentRental
	}

	payables, err := s.repo.FindByCompanyAndClass(ctx, companyID, financialClass)
	if err != nil {
		return nil, err
	}

	responses := make([]PayableResponse, 0, len(payables))
	for _, p := range payables {
		responses = append(responses, mapToResponse(p))
	}
	return responses, nil
}

func mapToResponse(p AccountPayable) PayableResponse {
	resp := PayableResponse{
		ID:             p.ID.String(),
		CompanyID:      p.CompanyID.String(),
		DocumentNumber: p.DocumentNumber,
		Description:    p.Description,
		Amount:         p.Amount.StringFixed(2),
		DueDate:        p.DueDate.Format("2006-01-02"),
		Status:         p.Status,
		FinancialClass: p.FinancialClass,
	}
	if p.SupplierID != nil {
		v := p.SupplierID.String()
		resp.SupplierID = &v
	}
	return resp
}
