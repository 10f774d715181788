package approvalerrors

import (
	"net/http"

	"rh-backoffice/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrApprovalNotFound = apperror.New(
		apperror.CodeNotFound,
		"approval not found",
		http.StatusNotFound,
	)
	ErrApprovalNotPending = apperror.New(
		apperror.CodeInvalidState,
		"approval has already been resolved",
		http.StatusBadRequest,
	)
	ErrNotesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"notes are required when rejecting",
		http.StatusBadRequest,
	)
	ErrInvalidReferenceMonth = apperror.New(
		apperror.CodeInvalidInput,
		"reference month must be between 1 and 12",
		http.StatusBadRequest,
	)
)
