package rentalerrors

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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidRentalID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid equipment rental id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidMonthlyValue = apperror.New(
		apperror.CodeInvalidInput,
		"monthly_value must be greater than zero",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrRentalNotFound = apperror.New(
		apperror.CodeNotFound,
		"equipment rental not found",
		http.StatusNotFound,
	)
	ErrPaymentNotFound = apperror.New(
		apperror.CodeNotFound,
		"rental payment not found",
		http.StatusNotFound,
	)
	ErrPaymentNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending payments can be settled",
		http.StatusBadRequest,
	)
	ErrRentalNotActive = apperror.New(
		apperror.CodeInvalidState,
		"equipment rental is not active",
		http.StatusBadRequest,
	)
	ErrDuplicatePayment = apperror.New(
		apperror.CodeConflict,
		"a payment for this rental and month already exists",
		http.StatusConflict,
	)
	ErrInvalidPayableMode = apperror.New(
		apperror.CodeInvalidInput,
		"accounts_payable_mode must be per_employee or single_total",
		http.StatusBadRequest,
	)
)
