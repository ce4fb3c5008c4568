package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"almacen/internal/domain"
	"almacen/internal/dto"
	apperrors "almacen/internal/errors"
)

type mockProductsRepository struct {
	InsertFunc             func(ctx context.Context, p domain.Product) (int, error)
	FindByIDFunc           func(ctx context.Context, id int) (*domain.Product, error)
	FindByNameFunc         func(ctx context.Context, name string) (*domain.Product, error)
	FindSellableByCodeFunc func(ctx context.Context, code string) (*domain.Product, error)
	SearchFunc             func(ctx context.Context, q string) ([]domain.Product, error)
	ListFunc               func(ctx context.Context) ([]domain.Product, error)
	ListByCategoryFunc     func(ctx context.Context, category domain.Category) ([]domain.Product, error)
	ListSellableFunc       func(ctx context.Context) ([]domain.Product, error)
	ListPurchasableFunc    func(ctx context.Context) ([]domain.Product, error)
	UsedCodesFunc          func(ctx context.Context, prefix string) (map[string]struct{}, error)
}

func (m *mockProductsRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	return m.InsertFunc(ctx, p)
}

func (m *mockProductsRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockProductsRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return m.FindByNameFunc(ctx, name)
}

func (m *mockProductsRepository) FindSellableByCode(ctx context.Context, code string) (*domain.Product, error) {
	return m.FindSellableByCodeFunc(ctx, code)
}

func (m *mockProductsRepository) Search(ctx context.Context, q string) ([]domain.Product, error) {
	return m.SearchFunc(ctx, q)
}

func (m *mockProductsRepository) List(ctx context.Context) ([]domain.Product, error) {
	return m.ListFunc(ctx)
}

func (m *mockProductsRepository) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	return m.ListByCategoryFunc(ctx, category)
}

func (m *mockProductsRepository) ListSellable(ctx context.Context) ([]domain.Product, error) {
	return m.ListSellableFunc(ctx)
}

func (m *mockProductsRepository) ListPurchasable(ctx context.Context) ([]domain.Product, error) {
	return m.ListPurchasableFunc(ctx)
}

func (m *mockProductsRepository) UsedCodes(ctx context.Context, prefix string) (map[string]struct{}, error) {
	return m.UsedCodesFunc(ctx, prefix)
}

func TestCreateProduct_RawMaterial(t *testing.T) {
	var inserted domain.Product
	repo := &mockProductsRepository{
		InsertFunc: func(_ context.Context, p domain.Product) (int, error) {
			inserted = p
			return 7, nil
		},
	}
	svc := NewCatalogService(repo, zap.NewNop())

	resp, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:     "Harina",
		Category: "Insumos",
		Unit:     "kg",
	})

	assert.NoError(t, err)
	assert.Equal(t, 7, resp.ID)
	assert.Empty(t, resp.Code)
	assert.False(t, inserted.Sellable)
	assert.Nil(t, inserted.Code)
	assert.True(t, inserted.Price.IsZero())
}

func TestCreateProduct_PriceForcedZeroForRawMaterial(t *testing.T) {
	var inserted domain.Product
	repo := &mockProductsRepository{
		InsertFunc: func(_ context.Context, p domain.Product) (int, error) {
			inserted = p
			return 1, nil
		},
	}
	svc := NewCatalogService(repo, zap.NewNop())

	_, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:     "Harina",
		Category: "Insumos",
		Unit:     "kg",
		Price:    decimal.RequireFromString("99.50"),
	})

	assert.NoError(t, err)
	assert.True(t, inserted.Price.IsZero(), "non-sellable price must be dropped, got %s", inserted.Price)
}

func TestCreateProduct_GeneratesFirstUnusedCode(t *testing.T) {
	var inserted domain.Product
	repo := &mockProductsRepository{
		UsedCodesFunc: func(_ context.Context, prefix string) (map[string]struct{}, error) {
			return map[string]struct{}{
				"PRD0001": {},
				"PRD0002": {},
				"PRD0004": {},
			}, nil
		},
		InsertFunc: func(_ context.Context, p domain.Product) (int, error) {
			inserted = p
			return 2, nil
		},
	}
	svc := NewCatalogService(repo, zap.NewNop())

	resp, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:     "Pan",
		Category: "Elaborados",
		Unit:     "pz",
		Price:    decimal.NewFromInt(18),
	})

	assert.NoError(t, err)
	assert.Equal(t, "PRD0003", resp.Code, "gaps are filled before the sequence grows")
	assert.NotNil(t, inserted.Code)
	assert.Equal(t, "PRD0003", *inserted.Code)
	assert.True(t, inserted.Sellable)
}

func TestCreateProduct_KeepsExplicitCode(t *testing.T) {
	repo := &mockProductsRepository{
		InsertFunc: func(_ context.Context, p domain.Product) (int, error) {
			return 3, nil
		},
	}
	svc := NewCatalogService(repo, zap.NewNop())

	resp, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:     "Refresco",
		Category: "Productos",
		Unit:     "pz",
		Code:     "750100001",
		Price:    decimal.NewFromInt(20),
	})

	assert.NoError(t, err)
	assert.Equal(t, "750100001", resp.Code)
}

func TestCreateProduct_Rejections(t *testing.T) {
	repo := &mockProductsRepository{
		InsertFunc: func(_ context.Context, p domain.Product) (int, error) {
			t.Fatal("insert must not be reached")
			return 0, nil
		},
	}
	svc := NewCatalogService(repo, zap.NewNop())

	cases := []struct {
		name string
		req  dto.CreateProductRequest
	}{
		{"empty name", dto.CreateProductRequest{Name: "   ", Category: "Insumos", Unit: "g"}},
		{"unknown category", dto.CreateProductRequest{Name: "X", Category: "Bebidas", Unit: "g"}},
		{"unknown unit", dto.CreateProductRequest{Name: "X", Category: "Insumos", Unit: "oz"}},
		{"negative price", dto.CreateProductRequest{Name: "X", Category: "Productos", Unit: "pz", Code: "C1", Price: decimal.NewFromInt(-1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tc.req)
			_, ok := apperrors.IsValidationError(err)
			assert.True(t, ok, "expected validation error, got %v", err)
		})
	}
}

func TestList_UnknownCategoryRejected(t *testing.T) {
	svc := NewCatalogService(&mockProductsRepository{}, zap.NewNop())

	_, err := svc.List(context.Background(), "Bebidas", false)
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}
