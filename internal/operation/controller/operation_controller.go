package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"almacen/internal/dto"
	apperrors "almacen/internal/errors"
	"almacen/internal/web"
)

type OperationService interface {
	RecordPurchase(ctx context.Context, branchID int, req dto.RecordPurchaseRequest) (*dto.RecordPurchaseResponse, error)
	RecordProduction(ctx context.Context, branchID int, req dto.RecordProductionRequest) (*dto.RecordProductionResponse, error)
	RecordTicket(ctx context.Context, branchID int, req dto.RecordTicketRequest) (*dto.RecordTicketResponse, error)
	AdjustStock(ctx context.Context, branchID int, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error)
}

// OperationController exposes the four mutating operations. The branch is
// resolved once at startup and threaded into every call.
type OperationController struct {
	service  OperationService
	branchID int
	logger   *zap.Logger
}

func NewOperationController(service OperationService, branchID int, logger *zap.Logger) *OperationController {
	return &OperationController{
		service:  service,
		branchID: branchID,
		logger:   logger,
	}
}

func (c *OperationController) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var req dto.RecordPurchaseRequest
	if !c.decode(w, r, &req) {
		return
	}

	resp, err := c.service.RecordPurchase(r.Context(), c.branchID, req)
	if err != nil {
		c.logger.Warn("purchase rejected", zap.String("traceId", traceID), zap.Error(err))
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusCreated, resp)
}

func (c *OperationController) RecordProduction(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var req dto.RecordProductionRequest
	if !c.decode(w, r, &req) {
		return
	}

	resp, err := c.service.RecordProduction(r.Context(), c.branchID, req)
	if err != nil {
		c.logger.Warn("production rejected", zap.String("traceId", traceID), zap.Error(err))
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusCreated, resp)
}

func (c *OperationController) RecordTicket(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var req dto.RecordTicketRequest
	if !c.decode(w, r, &req) {
		return
	}

	resp, err := c.service.RecordTicket(r.Context(), c.branchID, req)
	if err != nil {
		c.logger.Warn("ticket rejected", zap.String("traceId", traceID), zap.Error(err))
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusCreated, resp)
}

func (c *OperationController) AdjustStock(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var req dto.AdjustStockRequest
	if !c.decode(w, r, &req) {
		return
	}

	resp, err := c.service.AdjustStock(r.Context(), c.branchID, req)
	if err != nil {
		c.logger.Warn("adjustment rejected", zap.String("traceId", traceID), zap.Error(err))
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, resp)
}

func (c *OperationController) decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		web.WriteError(c.logger, w, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return false
	}
	return true
}
