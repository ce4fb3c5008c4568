package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"almacen/internal/domain"
	"almacen/internal/dto"
	apperrors "almacen/internal/errors"
	"almacen/internal/infrastructure/mysql"
)

// CodePrefix is the prefix of auto-assigned external codes.
const CodePrefix = "PRD"

type ProductsRepository interface {
	Insert(ctx context.Context, p domain.Product) (int, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	FindSellableByCode(ctx context.Context, code string) (*domain.Product, error)
	Search(ctx context.Context, q string) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error)
	ListSellable(ctx context.Context) ([]domain.Product, error)
	ListPurchasable(ctx context.Context) ([]domain.Product, error)
	UsedCodes(ctx context.Context, prefix string) (map[string]struct{}, error)
}

type CatalogService struct {
	repo   ProductsRepository
	logger *zap.Logger
}

func NewCatalogService(repo ProductsRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// NextCode picks the first unused PRD0001-style code in one deterministic
// scan over the codes already taken.
func (s *CatalogService) NextCode(ctx context.Context) (string, error) {
	used, err := s.repo.UsedCodes(ctx, CodePrefix)
	if err != nil {
		return "", err
	}

	for i := 1; ; i++ {
		code := fmt.Sprintf("%s%04d", CodePrefix, i)
		if _, taken := used[code]; !taken {
			return code, nil
		}
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	category, ok := domain.ParseCategory(req.Category)
	if !ok {
		return nil, apperrors.NewValidationError("unknown category", apperrors.ValidationDetail{
			Field:   "category",
			Message: "category must be 'Insumos', 'Elaborados' or 'Productos'",
		})
	}

	unit, ok := domain.ParseUnit(req.Unit)
	if !ok {
		return nil, apperrors.NewValidationError("unknown unit", apperrors.ValidationDetail{
			Field:   "unit",
			Message: "unit must be 'pz', 'g' or 'kg'",
		})
	}

	if req.Price.IsNegative() {
		return nil, apperrors.NewValidationError("price must not be negative", apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be zero or positive",
		})
	}

	constraints := domain.DeriveConstraints(category)

	price := req.Price
	if !constraints.PriceAllowed {
		// Non-sellable products never carry a sale price.
		price = decimal.Zero
	}

	var code *string
	trimmedCode := strings.TrimSpace(req.Code)
	if constraints.CodeRequired {
		resolved := trimmedCode
		if resolved == "" {
			generated, err := s.NextCode(ctx)
			if err != nil {
				return nil, apperrors.NewInternalError("generating product code", err)
			}
			resolved = generated
		}
		code = &resolved
	} else if trimmedCode != "" {
		code = &trimmedCode
	}

	product := domain.Product{
		Name:     name,
		Code:     code,
		Category: category,
		Unit:     unit,
		Sellable: constraints.Sellable,
		Price:    price,
		LastCost: decimal.Zero,
	}

	id, err := s.repo.Insert(ctx, product)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return nil, apperrors.NewValidationError("product name or code already in use", apperrors.ValidationDetail{
				Field:   "name",
				Message: "name and code must be unique",
			})
		}
		return nil, apperrors.NewInternalError("inserting product", err)
	}

	resp := &dto.CreateProductResponse{ID: id}
	if code != nil {
		resp.Code = *code
	}

	s.logger.Info("product created",
		zap.Int("productId", id),
		zap.String("name", name),
		zap.String("category", string(category)),
		zap.Bool("sellable", constraints.Sellable),
	)

	return resp, nil
}

func (s *CatalogService) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	return s.repo.FindSellableByCode(ctx, code)
}

func (s *CatalogService) Search(ctx context.Context, q string) ([]domain.Product, error) {
	return s.repo.Search(ctx, q)
}

func (s *CatalogService) List(ctx context.Context, category string, sellableOnly bool) ([]domain.Product, error) {
	if category != "" {
		parsed, ok := domain.ParseCategory(category)
		if !ok {
			return nil, apperrors.NewValidationError("unknown category", apperrors.ValidationDetail{
				Field:   "category",
				Message: "category must be 'Insumos', 'Elaborados' or 'Productos'",
			})
		}
		return s.repo.ListByCategory(ctx, parsed)
	}
	if sellableOnly {
		return s.repo.ListSellable(ctx)
	}
	return s.repo.List(ctx)
}

func (s *CatalogService) ListPurchasable(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListPurchasable(ctx)
}
