package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"almacen/internal/domain"
	"almacen/internal/errors"
)

type ProductsRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}

type RecipesRepository interface {
	GetByProductID(ctx context.Context, productID int) ([]domain.RecipeLine, error)
}

type PurchaseHistoryRepository interface {
	LastUnitCost(ctx context.Context, productID int) (decimal.Decimal, bool, error)
}

// CostingEngine computes product costs from recorded purchases. Costs are not
// stored: every call reads the latest purchase history, so a recipe cost
// always reflects current component prices rather than the prices in effect
// when the recipe was written.
type CostingEngine struct {
	products  ProductsRepository
	recipes   RecipesRepository
	purchases PurchaseHistoryRepository
	logger    *zap.Logger
}

func NewCostingEngine(products ProductsRepository, recipes RecipesRepository, purchases PurchaseHistoryRepository, logger *zap.Logger) *CostingEngine {
	return &CostingEngine{
		products:  products,
		recipes:   recipes,
		purchases: purchases,
		logger:    logger,
	}
}

// LastUnitCost returns the cost per display unit of a product: the unit cost
// of its most recent purchase line, falling back to the cost stamped on the
// product, then to zero for products never purchased.
func (s *CostingEngine) LastUnitCost(ctx context.Context, productName string) (decimal.Decimal, error) {
	product, err := s.products.FindByName(ctx, productName)
	if err != nil {
		return decimal.Zero, err
	}
	return s.unitCostOf(ctx, product.ID, product.LastCost)
}

func (s *CostingEngine) unitCostOf(ctx context.Context, productID int, fallback decimal.Decimal) (decimal.Decimal, error) {
	cost, found, err := s.purchases.LastUnitCost(ctx, productID)
	if err != nil {
		return decimal.Zero, errors.NewInternalError("reading purchase history", err)
	}
	if found {
		return cost, nil
	}
	return fallback, nil
}

// RecipeCost returns the component cost of producing one unit of a
// manufactured product. Each recipe line contributes its quantity times the
// component's last unit cost converted to base units, so components costed
// per kg are charged per gram consumed. Products without a recipe cost zero.
func (s *CostingEngine) RecipeCost(ctx context.Context, productName string) (decimal.Decimal, error) {
	product, err := s.products.FindByName(ctx, productName)
	if err != nil {
		return decimal.Zero, err
	}
	if product.Category != domain.CategoryManufactured {
		return decimal.Zero, errors.NewConsistencyError(
			fmt.Sprintf("product %q has no recipe cost; only %q products do", productName, domain.CategoryManufactured))
	}

	lines, err := s.recipes.GetByProductID(ctx, product.ID)
	if err != nil {
		return decimal.Zero, errors.NewInternalError("reading recipe", err)
	}

	total := decimal.Zero
	for _, line := range lines {
		unitCost, found, err := s.purchases.LastUnitCost(ctx, line.ComponentID)
		if err != nil {
			return decimal.Zero, errors.NewInternalError("reading purchase history", err)
		}
		if !found {
			component, err := s.products.FindByID(ctx, line.ComponentID)
			if err != nil {
				return decimal.Zero, err
			}
			if component.LastCost.IsZero() {
				s.logger.Debug("component never purchased, costing at zero",
					zap.String("component", line.ComponentName))
				continue
			}
			unitCost = component.LastCost
		}
		costPerBase := unitCost.Div(line.ComponentUnit.BaseFactor())
		total = total.Add(costPerBase.Mul(line.QtyPerUnit))
	}

	return total, nil
}
