package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"almacen/internal/domain"
	"almacen/internal/dto"
	apperrors "almacen/internal/errors"
	"almacen/internal/web"
)

type DirectoryService interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (int, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	DeactivateSupplier(ctx context.Context, name string) error
	CreateCashier(ctx context.Context, req dto.CreateCashierRequest) (int, error)
	ListCashiers(ctx context.Context) ([]domain.Cashier, error)
	DeactivateCashier(ctx context.Context, name string) error
}

type DirectoryController struct {
	service DirectoryService
	logger  *zap.Logger
}

func NewDirectoryController(service DirectoryService, logger *zap.Logger) *DirectoryController {
	return &DirectoryController{
		service: service,
		logger:  logger,
	}
}

func (c *DirectoryController) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(c.logger, w, apperrors.NewValidationError("invalid JSON body"))
		return
	}

	id, err := c.service.CreateSupplier(r.Context(), req)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusCreated, map[string]int{"id": id})
}

func (c *DirectoryController) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := c.service.ListSuppliers(r.Context())
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	out := make([]dto.SupplierDTO, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.SupplierDTO{ID: s.ID, Name: s.Name, Phone: s.Phone, Contact: s.Contact})
	}

	web.WriteJSON(c.logger, w, http.StatusOK, out)
}

func (c *DirectoryController) DeactivateSupplier(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := c.service.DeactivateSupplier(r.Context(), name); err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *DirectoryController) CreateCashier(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCashierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(c.logger, w, apperrors.NewValidationError("invalid JSON body"))
		return
	}

	id, err := c.service.CreateCashier(r.Context(), req)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusCreated, map[string]int{"id": id})
}

func (c *DirectoryController) ListCashiers(w http.ResponseWriter, r *http.Request) {
	cashiers, err := c.service.ListCashiers(r.Context())
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	out := make([]dto.CashierDTO, 0, len(cashiers))
	for _, cs := range cashiers {
		out = append(out, dto.CashierDTO{ID: cs.ID, Name: cs.Name})
	}

	web.WriteJSON(c.logger, w, http.StatusOK, out)
}

func (c *DirectoryController) DeactivateCashier(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := c.service.DeactivateCashier(r.Context(), name); err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, map[string]string{"status": "ok"})
}
