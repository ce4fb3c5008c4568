package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"almacen/internal/domain"
	"almacen/internal/dto"
	apperrors "almacen/internal/errors"
	"almacen/internal/web"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.CreateProductResponse, error)
	FindByCode(ctx context.Context, code string) (*domain.Product, error)
	Search(ctx context.Context, q string) ([]domain.Product, error)
	List(ctx context.Context, category string, sellableOnly bool) ([]domain.Product, error)
	ListPurchasable(ctx context.Context) ([]domain.Product, error)
}

type CatalogController struct {
	service CatalogService
	logger  *zap.Logger
}

func NewCatalogController(service CatalogService, logger *zap.Logger) *CatalogController {
	return &CatalogController{
		service: service,
		logger:  logger,
	}
}

func (c *CatalogController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(c.logger, w, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	resp, err := c.service.CreateProduct(r.Context(), req)
	if err != nil {
		c.logger.Warn("create product rejected", zap.String("traceId", traceID), zap.Error(err))
		web.WriteError(c.logger, w, err)
		return
	}

	c.logger.Info("product created", zap.String("traceId", traceID), zap.Int("productId", resp.ID))
	web.WriteJSON(c.logger, w, http.StatusCreated, resp)
}

func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	sellableOnly := r.URL.Query().Get("sellable") == "true"
	purchasable := r.URL.Query().Get("purchasable") == "true"

	var (
		products []domain.Product
		err      error
	)
	if purchasable {
		products, err = c.service.ListPurchasable(r.Context())
	} else {
		products, err = c.service.List(r.Context(), category, sellableOnly)
	}
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, toProductDTOs(products))
}

func (c *CatalogController) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		web.WriteError(c.logger, w, apperrors.NewValidationError("q is required", apperrors.ValidationDetail{
			Field:   "q",
			Message: "q must not be empty",
		}))
		return
	}

	if code := r.URL.Query().Get("code"); code == "true" {
		product, err := c.service.FindByCode(r.Context(), q)
		if err != nil {
			web.WriteError(c.logger, w, err)
			return
		}
		web.WriteJSON(c.logger, w, http.StatusOK, toProductDTO(*product))
		return
	}

	products, err := c.service.Search(r.Context(), q)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, toProductDTOs(products))
}

func toProductDTO(p domain.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:       p.ID,
		Name:     p.Name,
		Code:     p.Code,
		Category: string(p.Category),
		Unit:     string(p.Unit),
		Sellable: p.Sellable,
		Price:    p.Price,
		LastCost: p.LastCost,
	}
}

func toProductDTOs(products []domain.Product) []dto.ProductDTO {
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out
}
