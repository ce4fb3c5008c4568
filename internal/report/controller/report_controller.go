package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"almacen/internal/dto"
	apperrors "almacen/internal/errors"
	"almacen/internal/report/repository"
	"almacen/internal/web"
)

type ReportService interface {
	CurrentInventory(ctx context.Context, branchID int) ([]dto.InventoryRow, error)
	LowStock(ctx context.Context, branchID int, threshold decimal.Decimal) ([]dto.InventoryRow, error)
	Kardex(ctx context.Context, productName string, branchID int) ([]dto.KardexRow, error)
	DetailedSales(ctx context.Context, dr repository.DateRange) ([]dto.SalesReportRow, error)
	DetailedWaste(ctx context.Context, dr repository.DateRange) ([]dto.WasteReportRow, error)
	DetailedPurchases(ctx context.Context, dr repository.DateRange, supplier *string) ([]dto.PurchaseReportRow, error)
	TopProducts(ctx context.Context, dr repository.DateRange, limit int) ([]dto.TopProductRow, error)
}

type ReportController struct {
	service  ReportService
	branchID int
	logger   *zap.Logger
}

func NewReportController(service ReportService, branchID int, logger *zap.Logger) *ReportController {
	return &ReportController{
		service:  service,
		branchID: branchID,
		logger:   logger,
	}
}

func (c *ReportController) CurrentInventory(w http.ResponseWriter, r *http.Request) {
	rows, err := c.service.CurrentInventory(r.Context(), c.branchID)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, rows)
}

func (c *ReportController) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := decimal.NewFromInt(5)
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			web.WriteError(c.logger, w, apperrors.NewValidationError("invalid threshold", apperrors.ValidationDetail{
				Field:   "threshold",
				Message: "threshold must be a number",
			}))
			return
		}
		threshold = parsed
	}

	rows, err := c.service.LowStock(r.Context(), c.branchID, threshold)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, rows)
}

func (c *ReportController) Kardex(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rows, err := c.service.Kardex(r.Context(), name, c.branchID)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, rows)
}

func (c *ReportController) DetailedSales(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	rows, err := c.service.DetailedSales(r.Context(), dr)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, rows)
}

func (c *ReportController) DetailedWaste(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	rows, err := c.service.DetailedWaste(r.Context(), dr)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, rows)
}

func (c *ReportController) DetailedPurchases(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	var supplier *string
	if s := r.URL.Query().Get("supplier"); s != "" {
		supplier = &s
	}

	rows, err := c.service.DetailedPurchases(r.Context(), dr, supplier)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, rows)
}

func (c *ReportController) TopProducts(w http.ResponseWriter, r *http.Request) {
	dr, err := parseDateRange(r)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			web.WriteError(c.logger, w, apperrors.NewValidationError("invalid limit", apperrors.ValidationDetail{
				Field:   "limit",
				Message: "limit must be a positive integer",
			}))
			return
		}
		limit = parsed
	}

	rows, err := c.service.TopProducts(r.Context(), dr, limit)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, rows)
}

// parseDateRange reads optional from/to query params as YYYY-MM-DD. The "to"
// bound is exclusive and shifted one day forward so a range covers its last
// day entirely.
func parseDateRange(r *http.Request) (repository.DateRange, error) {
	var dr repository.DateRange

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return dr, apperrors.NewValidationError("invalid from date", apperrors.ValidationDetail{
				Field:   "from",
				Message: "from must be YYYY-MM-DD",
			})
		}
		dr.From = &t
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return dr, apperrors.NewValidationError("invalid to date", apperrors.ValidationDetail{
				Field:   "to",
				Message: "to must be YYYY-MM-DD",
			})
		}
		end := t.AddDate(0, 0, 1)
		dr.To = &end
	}

	return dr, nil
}
