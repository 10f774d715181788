package rental

import (
	"encoding/json"
	"net/http"
	"time"

	"rh-backoffice/internal/shared/apperror"
	"rh-backoffice/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type BatchHandler struct {
	service BatchService
	reports ReportService
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewBatchHandler(service BatchService, reports ReportService, logger ...*zap.Logger) *BatchHandler {
	l := zap.L().Named("rental.batch.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rental.batch.handler")
	}
	return &BatchHandler{service: service, reports: reports, logger: l}
}

func NewBatchHandlerWithRedis(service BatchService, reports ReportService, rdb *redis.Client, logger ...*zap.Logger) *BatchHandler {
	h := NewBatchHandler(service, reports, logger...)
	h.rdb = rdb
	return h
}

func (h *BatchHandler) ProcessPeriod(c *gin.Context) {
	ctx := c.Request.Context()
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(ctx, lk)
		}
	}

	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req ProcessBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http process batch validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dados inválidos", err.Error())
		return
	}

	result, err := h.service.ProcessPeriod(ctx, companyID, actorID, req.Period, req.Options())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("process batch failed",
			zap.String("company_id", companyID),
			zap.String("period", req.Period),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	// A fresh run changes the numbers behind any cached report.
	if err := h.reports.InvalidateReport(ctx, companyID, req.Period); err != nil {
		h.logger.Warn("report cache invalidation failed",
			zap.String("company_id", companyID),
			zap.String("period", req.Period),
			zap.Error(err),
		)
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(result); marshalErr == nil {
				_ = h.rdb.Set(ctx, ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusOK, result, nil)
}
