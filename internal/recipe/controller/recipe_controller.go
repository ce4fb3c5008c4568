package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"almacen/internal/dto"
	apperrors "almacen/internal/errors"
	"almacen/internal/web"
)

type RecipeService interface {
	SetRecipe(ctx context.Context, manufacturedName string, components []dto.RecipeComponent) error
	GetRecipe(ctx context.Context, manufacturedName string) ([]dto.RecipeLineDTO, error)
}

type CostingEngine interface {
	RecipeCost(ctx context.Context, manufacturedName string) (decimal.Decimal, error)
}

type RecipeController struct {
	service RecipeService
	costing CostingEngine
	logger  *zap.Logger
}

func NewRecipeController(service RecipeService, costing CostingEngine, logger *zap.Logger) *RecipeController {
	return &RecipeController{
		service: service,
		costing: costing,
		logger:  logger,
	}
}

func (c *RecipeController) SetRecipe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req dto.SetRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(c.logger, w, apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		}))
		return
	}

	if err := c.service.SetRecipe(r.Context(), name, req.Components); err != nil {
		c.logger.Warn("set recipe rejected", zap.String("product", name), zap.Error(err))
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *RecipeController) GetRecipe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	lines, err := c.service.GetRecipe(r.Context(), name)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, lines)
}

func (c *RecipeController) GetRecipeCost(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	cost, err := c.costing.RecipeCost(r.Context(), name)
	if err != nil {
		web.WriteError(c.logger, w, err)
		return
	}

	web.WriteJSON(c.logger, w, http.StatusOK, dto.RecipeCostResponse{
		Product: name,
		Cost:    cost,
	})
}
