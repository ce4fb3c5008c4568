package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"almacen/internal/domain"
	"almacen/internal/dto"
	apperrors "almacen/internal/errors"
	"almacen/internal/infrastructure/mysql"
)

type TransactionManager interface {
	InTx(ctx context.Context, fn func(tx mysql.Executor) error) error
}

type ProductsRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Product, error)
}

type RecipesRepository interface {
	Replace(ctx context.Context, ex mysql.Executor, productID int, lines []domain.RecipeLine) error
	GetByProductID(ctx context.Context, productID int) ([]domain.RecipeLine, error)
}

type RecipeService struct {
	txManager TransactionManager
	products  ProductsRepository
	recipes   RecipesRepository
	logger    *zap.Logger
}

func NewRecipeService(
	txManager TransactionManager,
	products ProductsRepository,
	recipes RecipesRepository,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		txManager: txManager,
		products:  products,
		recipes:   recipes,
		logger:    logger,
	}
}

// SetRecipe replaces the full recipe of a manufactured product. The whole
// component list is validated before anything is written, so one bad line
// leaves the previous recipe untouched.
func (s *RecipeService) SetRecipe(ctx context.Context, manufacturedName string, components []dto.RecipeComponent) error {
	if len(components) == 0 {
		return apperrors.NewValidationError("components are required", apperrors.ValidationDetail{
			Field:   "components",
			Message: "components must not be empty",
		})
	}

	owner, err := s.products.FindByName(ctx, manufacturedName)
	if err != nil {
		return err
	}
	if owner.Category != domain.CategoryManufactured {
		return apperrors.NewConsistencyError(
			fmt.Sprintf("recipes can only be defined for %q products", domain.CategoryManufactured))
	}

	lines := make([]domain.RecipeLine, 0, len(components))
	seen := make(map[int]int)
	for _, comp := range components {
		product, err := s.products.FindByName(ctx, comp.Component)
		if err != nil {
			return err
		}
		if product.Sellable {
			return apperrors.NewConsistencyError(
				fmt.Sprintf("component %q is sellable; only raw materials may be recipe components", product.Name))
		}
		if !comp.QtyPerUnit.IsPositive() {
			return apperrors.NewValidationError("quantity per unit must be positive", apperrors.ValidationDetail{
				Field:   "qtyPerUnit",
				Message: fmt.Sprintf("component %q must have a quantity greater than zero", product.Name),
			})
		}

		// Last line per component wins: repeating a component upserts it.
		if idx, dup := seen[product.ID]; dup {
			lines[idx].QtyPerUnit = comp.QtyPerUnit
			continue
		}
		seen[product.ID] = len(lines)
		lines = append(lines, domain.RecipeLine{
			ProductID:     owner.ID,
			ComponentID:   product.ID,
			ComponentName: product.Name,
			ComponentUnit: product.Unit,
			QtyPerUnit:    comp.QtyPerUnit,
		})
	}

	err = s.txManager.InTx(ctx, func(tx mysql.Executor) error {
		return s.recipes.Replace(ctx, tx, owner.ID, lines)
	})
	if err != nil {
		return apperrors.NewInternalError("replacing recipe", err)
	}

	s.logger.Info("recipe replaced",
		zap.String("product", owner.Name),
		zap.Int("components", len(lines)),
	)

	return nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, manufacturedName string) ([]dto.RecipeLineDTO, error) {
	owner, err := s.products.FindByName(ctx, manufacturedName)
	if err != nil {
		return nil, err
	}

	lines, err := s.recipes.GetByProductID(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RecipeLineDTO, 0, len(lines))
	for _, line := range lines {
		out = append(out, dto.RecipeLineDTO{
			Component:  line.ComponentName,
			Unit:       string(line.ComponentUnit.Base()),
			QtyPerUnit: line.QtyPerUnit,
		})
	}

	return out, nil
}
