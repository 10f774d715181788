package approval

import (
	"context"
	"database/sql"
	"errors"
	"time"

	approvalerrors "rh-backoffice/internal/approval/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID string, filter QueryFilter) ([]ApprovalResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ApprovalResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string, notes *string) (ApprovalResponse, error)
	Reject(ctx context.Context, companyID, actorID, id, notes string) (ApprovalResponse, error)
	Stats(ctx context.Context, companyID string) (ApprovalStatsResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, companyID string, filter QueryFilter) ([]ApprovalResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, approvalerrors.ErrInvalidCompanyID
	}
	if filter.ReferenceMonth != nil && (*filter.ReferenceMonth < 1 || *filter.ReferenceMonth > 12) {
		return nil, approvalerrors.ErrInvalidReferenceMonth
	}

	approvals, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(approvals), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ApprovalResponse, error) {
	a, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApprovalResponse{}, approvalerrors.ErrApprovalNotFound
		}
		return ApprovalResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string, notes *string) (ApprovalResponse, error) {
	return s.resolve(ctx, companyID, actorID, id, StatusApproved, notes)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id, notes string) (ApprovalResponse, error) {
	if notes == "" {
		return ApprovalResponse{}, approvalerrors.ErrNotesRequired
	}
	return s.resolve(ctx, companyID, actorID, id, StatusRejected, &notes)
}

// resolve moves a pending approval to its terminal status. Resolved
// approvals are immutable, so any later decision has to go through a
// fresh batch run.
func (s *service) resolve(ctx context.Context, companyID, actorID, id, targetStatus string, notes *string) (ApprovalResponse, error) {
	s.logger.Debug("resolve approval requested",
		zap.String("approval_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve approval begin tx failed", zap.Error(err))
		return ApprovalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err = uuid.Parse(companyID); err != nil {
		return ApprovalResponse{}, approvalerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ApprovalResponse{}, approvalerrors.ErrInvalidActorID
	}

	a, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApprovalResponse{}, approvalerrors.ErrApprovalNotFound
		}
		return ApprovalResponse{}, err
	}
	if a.Status != StatusPending {
		s.logger.Warn("resolve approval not pending",
			zap.String("approval_id", id),
			zap.String("current_status", a.Status),
		)
		return ApprovalResponse{}, approvalerrors.ErrApprovalNotPending
	}

	now := time.Now().UTC()
	a.Status = targetStatus
	a.ApproverID = &actorUUID
	a.ApprovedAt = &now
	a.Notes = notes

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("resolve approval persist failed",
			zap.String("approval_id", id),
			zap.Error(err),
		)
		return ApprovalResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("resolve approval commit failed",
			zap.String("approval_id", id),
			zap.Error(err),
		)
		return ApprovalResponse{}, err
	}
	s.logger.Info("resolve approval success",
		zap.String("approval_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*a), nil
}

func (s *service) Stats(ctx context.Context, companyID string) (ApprovalStatsResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return ApprovalStatsResponse{}, approvalerrors.ErrInvalidCompanyID
	}

	approvals, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		return ApprovalStatsResponse{}, err
	}

	stats := ApprovalStatsResponse{}
	pendingAmount := decimal.Zero
	for _, a := range approvals {
		switch a.Status {
		case StatusPending:
			stats.Pending++
			pendingAmount = pendingAmount.Add(a.ApprovedValue)
		case StatusApproved:
			stats.Approved++
		case StatusRejected:
			stats.Rejected++
		}
	}
	stats.PendingAmount = pendingAmount.StringFixed(2)
	return stats, nil
}

func mapToResponse(a Approval) ApprovalResponse {
	resp := ApprovalResponse{
		ID:                a.ID.String(),
		CompanyID:         a.CompanyID.String(),
		EmployeeID:        a.EmployeeID.String(),
		EquipmentRentalID: a.EquipmentRentalID.String(),
		ReferenceMonth:    a.ReferenceMonth,
		ReferenceYear:     a.ReferenceYear,
		ApprovedValue:     a.ApprovedValue.StringFixed(2),
		Status:            a.Status,
		Notes:             a.Notes,
	}
	if a.ApproverID != nil {
		v := a.ApproverID.String()
		resp.ApproverID = &v
	}
	if a.ApprovedAt != nil {
		v := a.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(approvals []Approval) []ApprovalResponse {
	responses := make([]ApprovalResponse, 0, len(approvals))
	for _, a := range approvals {
		responses = append(responses, mapToResponse(a))
	}
	return responses
}
