package rental

import (
	"net/http"
	"strconv"

	"rh-backoffice/internal/shared/apperror"
	"rh-backoffice/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service    Service
	calculator Calculator
	reports    ReportService
	logger     *zap.Logger
}

func NewHandler(service Service, calculator Calculator, reports ReportService, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rental.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rental.handler")
	}
	return &Handler{service: service, calculator: calculator, reports: reports, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("rental request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)
	h.logger.Debug("http create rental", zap.String("company_id", companyID), zap.String("actor_id", actorID))

	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create rental validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	var filter RentalQueryFilter
	if v := c.Query("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := c.Query("equipment_type"); v != "" {
		filter.EquipmentType = &v
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	resp, err := h.service.GetAll(ctx, companyID, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	targetID := c.Param("id")
	companyID := c.GetString("company_id")

	resp, err := h.service.GetByID(ctx, companyID, targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req UpdateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update rental validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dados inválidos", err.Error())
		return
	}

	resp, err := h.service.Update(ctx, companyID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	companyID := c.GetString("company_id")

	if err := h.service.Delete(ctx, companyID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	resp, err := h.service.Stats(ctx, companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Calculations previews the absence discounts for a period without
// writing anything.
func (h *Handler) Calculations(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	period := c.Query("period")
	filters := CalculationFilters{
		EmployeeID:    c.Query("employee_id"),
		EquipmentType: c.Query("equipment_type"),
	}

	resp, err := h.calculator.CalculateAll(ctx, companyID, period, filters)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Report(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	period := c.Query("period")

	resp, err := h.reports.GeneratePeriodReport(ctx, companyID, period)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPayments(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	var filter PaymentQueryFilter
	if v := c.Query("equipment_rental_id"); v != "" {
		filter.EquipmentRentalID = &v
	}
	if v := c.Query("payment_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dados inválidos", "payment_year must be a number")
			return
		}
		filter.PaymentYear = &year
	}
	if v := c.Query("payment_month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dados inválidos", "payment_month must be a number")
			return
		}
		filter.PaymentMonth = &month
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}

	resp, err := h.service.GetPayments(ctx, companyID, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkPaymentPaid(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req MarkPaymentPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http mark payment paid validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dados inválidos", err.Error())
		return
	}

	resp, err := h.service.MarkPaymentPaid(ctx, companyID, actorID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
