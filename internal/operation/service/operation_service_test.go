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
	"almacen/internal/infrastructure/mysql"
)

const testBranch = 1

type mockTransactionManager struct{}

func (m *mockTransactionManager) InTx(_ context.Context, fn func(tx mysql.Executor) error) error {
	return fn(nil)
}

type mockProductsRepository struct {
	byID      map[int]*domain.Product
	byName    map[string]*domain.Product
	lastCosts map[int]decimal.Decimal
}

func newMockProducts(products ...*domain.Product) *mockProductsRepository {
	m := &mockProductsRepository{
		byID:      make(map[int]*domain.Product),
		byName:    make(map[string]*domain.Product),
		lastCosts: make(map[int]decimal.Decimal),
	}
	for _, p := range products {
		m.byID[p.ID] = p
		m.byName[p.Name] = p
	}
	return m
}

func (m *mockProductsRepository) FindByID(_ context.Context, id int) (*domain.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("product not found")
	}
	return p, nil
}

func (m *mockProductsRepository) FindByName(_ context.Context, name string) (*domain.Product, error) {
	p, ok := m.byName[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("product not found")
	}
	return p, nil
}

func (m *mockProductsRepository) UpdateLastCost(_ context.Context, _ mysql.Executor, productID int, cost decimal.Decimal) error {
	m.lastCosts[productID] = cost
	return nil
}

type mockRecipesRepository struct {
	recipes map[int][]domain.RecipeLine
}

func (m *mockRecipesRepository) GetByProductID(_ context.Context, productID int) ([]domain.RecipeLine, error) {
	return m.recipes[productID], nil
}

// fakeLedger keeps balances in memory with the same sufficiency semantics as
// the real one.
type fakeLedger struct {
	balances  map[int]decimal.Decimal
	movements []domain.Movement
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{balances: make(map[int]decimal.Decimal)}
}

func (l *fakeLedger) set(productID int, balance decimal.Decimal) {
	l.balances[productID] = balance
}

func (l *fakeLedger) BalanceForUpdate(_ context.Context, _ mysql.Executor, productID, _ int) (decimal.Decimal, error) {
	return l.balances[productID], nil
}

func (l *fakeLedger) AssertSufficient(_ context.Context, _ mysql.Executor, productID int, productName string, _ int, required decimal.Decimal) (decimal.Decimal, error) {
	available := l.balances[productID]
	if available.LessThan(required) {
		return available, apperrors.NewInsufficientStockError(productName, required, available)
	}
	return available, nil
}

func (l *fakeLedger) ApplyDelta(_ context.Context, _ mysql.Executor, m domain.Movement) error {
	l.balances[m.ProductID] = l.balances[m.ProductID].Add(m.Delta)
	l.movements = append(l.movements, m)
	return nil
}

type mockSuppliersRepository struct {
	suppliers map[string]*domain.Supplier
}

func (m *mockSuppliersRepository) FindActiveByName(_ context.Context, name string) (*domain.Supplier, error) {
	s, ok := m.suppliers[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("supplier not found")
	}
	return s, nil
}

type mockCashiersRepository struct {
	cashiers map[string]*domain.Cashier
}

func (m *mockCashiersRepository) FindActiveByName(_ context.Context, name string) (*domain.Cashier, error) {
	c, ok := m.cashiers[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("cashier not found")
	}
	return c, nil
}

type mockPurchasesRepository struct {
	inserted []domain.Purchase
	lines    []domain.PurchaseLine
	total    decimal.Decimal
}

func (m *mockPurchasesRepository) Insert(_ context.Context, _ mysql.Executor, p domain.Purchase) (int64, error) {
	m.inserted = append(m.inserted, p)
	return int64(len(m.inserted)), nil
}

func (m *mockPurchasesRepository) InsertLine(_ context.Context, _ mysql.Executor, line domain.PurchaseLine) error {
	m.lines = append(m.lines, line)
	return nil
}

func (m *mockPurchasesRepository) UpdateTotal(_ context.Context, _ mysql.Executor, _ int64, total decimal.Decimal) error {
	m.total = total
	return nil
}

type mockProductionsRepository struct {
	inserted []domain.ProductionBatch
}

func (m *mockProductionsRepository) Insert(_ context.Context, _ mysql.Executor, b domain.ProductionBatch) (int64, error) {
	m.inserted = append(m.inserted, b)
	return int64(len(m.inserted)), nil
}

type mockTicketsRepository struct {
	inserted []domain.Ticket
	lines    []domain.TicketLine
	total    decimal.Decimal
}

func (m *mockTicketsRepository) Insert(_ context.Context, _ mysql.Executor, t domain.Ticket) (int64, error) {
	m.inserted = append(m.inserted, t)
	return int64(len(m.inserted)), nil
}

func (m *mockTicketsRepository) InsertLine(_ context.Context, _ mysql.Executor, line domain.TicketLine) error {
	m.lines = append(m.lines, line)
	return nil
}

func (m *mockTicketsRepository) UpdateTotal(_ context.Context, _ mysql.Executor, _ int64, total decimal.Decimal) error {
	m.total = total
	return nil
}

type fixture struct {
	svc         *OperationService
	products    *mockProductsRepository
	recipes     *mockRecipesRepository
	ledger      *fakeLedger
	purchases   *mockPurchasesRepository
	productions *mockProductionsRepository
	tickets     *mockTicketsRepository
}

func newFixture(products ...*domain.Product) *fixture {
	f := &fixture{
		products:    newMockProducts(products...),
		recipes:     &mockRecipesRepository{recipes: make(map[int][]domain.RecipeLine)},
		ledger:      newFakeLedger(),
		purchases:   &mockPurchasesRepository{},
		productions: &mockProductionsRepository{},
		tickets:     &mockTicketsRepository{},
	}
	f.svc = NewOperationService(
		&mockTransactionManager{},
		f.products,
		f.recipes,
		f.ledger,
		&mockSuppliersRepository{suppliers: map[string]*domain.Supplier{
			"Molinos SA": {ID: 1, Name: "Molinos SA", Active: true},
		}},
		&mockCashiersRepository{cashiers: map[string]*domain.Cashier{
			"Ana": {ID: 1, Name: "Ana", Active: true},
		}},
		f.purchases,
		f.productions,
		f.tickets,
		zap.NewNop(),
	)
	return f
}

func harina() *domain.Product {
	return &domain.Product{ID: 1, Name: "Harina", Category: domain.CategoryRawMaterial, Unit: domain.UnitKilogram}
}

func pan() *domain.Product {
	return &domain.Product{
		ID: 2, Name: "Pan", Category: domain.CategoryManufactured, Unit: domain.UnitPiece,
		Sellable: true, Price: decimal.NewFromInt(18),
	}
}

func TestRecordPurchase_WritesCostAndStock(t *testing.T) {
	f := newFixture(harina())

	resp, err := f.svc.RecordPurchase(context.Background(), testBranch, dto.RecordPurchaseRequest{
		Supplier: "Molinos SA",
		Lines: []dto.PurchaseLineRequest{
			{Product: "Harina", Quantity: decimal.NewFromInt(100), TotalCost: decimal.NewFromInt(5000)},
		},
	})

	assert.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(5000)))

	// 5000 over 100 kg is 50 per kg.
	assert.True(t, f.products.lastCosts[1].Equal(decimal.NewFromInt(50)), "got %s", f.products.lastCosts[1])

	assert.Len(t, f.ledger.movements, 1)
	m := f.ledger.movements[0]
	assert.True(t, m.Delta.Equal(decimal.NewFromInt(100000)), "100 kg enter as 100000 g, got %s", m.Delta)
	assert.Equal(t, domain.ReasonPurchase, m.Reason)
	assert.Equal(t, "Purchases", m.RefTable)

	assert.Len(t, f.purchases.lines, 1)
	assert.True(t, f.purchases.lines[0].UnitCost.Equal(decimal.NewFromInt(50)))
	assert.NotNil(t, f.purchases.inserted[0].SupplierID)
}

func TestRecordPurchase_RejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(harina())

	_, err := f.svc.RecordPurchase(context.Background(), testBranch, dto.RecordPurchaseRequest{
		Lines: []dto.PurchaseLineRequest{
			{Product: "Harina", Quantity: decimal.Zero, TotalCost: decimal.NewFromInt(100)},
		},
	})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok, "got %v", err)
	assert.Empty(t, f.ledger.movements)
}

func TestRecordPurchase_UnknownSupplier(t *testing.T) {
	f := newFixture(harina())

	_, err := f.svc.RecordPurchase(context.Background(), testBranch, dto.RecordPurchaseRequest{
		Supplier: "Desconocido",
		Lines: []dto.PurchaseLineRequest{
			{Product: "Harina", Quantity: decimal.NewFromInt(1), TotalCost: decimal.NewFromInt(10)},
		},
	})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok, "got %v", err)
}

func TestRecordProduction_ConsumesComponentsAndAddsOutput(t *testing.T) {
	f := newFixture(harina(), pan())
	f.recipes.recipes[2] = []domain.RecipeLine{
		{ProductID: 2, ComponentID: 1, ComponentName: "Harina", ComponentUnit: domain.UnitKilogram, QtyPerUnit: decimal.NewFromInt(250)},
	}
	f.ledger.set(1, decimal.NewFromInt(5000))

	resp, err := f.svc.RecordProduction(context.Background(), testBranch, dto.RecordProductionRequest{
		Product:  "Pan",
		Quantity: decimal.NewFromInt(10),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.BatchID)

	// 250 g per unit, 10 units: 2500 g consumed, 10 pz produced.
	assert.True(t, f.ledger.balances[1].Equal(decimal.NewFromInt(2500)), "got %s", f.ledger.balances[1])
	assert.True(t, f.ledger.balances[2].Equal(decimal.NewFromInt(10)))

	assert.Len(t, f.ledger.movements, 2)
	assert.True(t, f.ledger.movements[0].Delta.Equal(decimal.NewFromInt(-2500)))
	assert.Equal(t, domain.ReasonProduction, f.ledger.movements[0].Reason)
	assert.True(t, f.ledger.movements[1].Delta.Equal(decimal.NewFromInt(10)))
}

func TestRecordProduction_NoRecipe(t *testing.T) {
	f := newFixture(harina(), pan())

	_, err := f.svc.RecordProduction(context.Background(), testBranch, dto.RecordProductionRequest{
		Product:  "Pan",
		Quantity: decimal.NewFromInt(1),
	})

	nre, ok := apperrors.IsNoRecipeError(err)
	assert.True(t, ok, "got %v", err)
	assert.Equal(t, "Pan", nre.Product)
	assert.Empty(t, f.productions.inserted)
}

func TestRecordProduction_NotManufactured(t *testing.T) {
	f := newFixture(harina())

	_, err := f.svc.RecordProduction(context.Background(), testBranch, dto.RecordProductionRequest{
		Product:  "Harina",
		Quantity: decimal.NewFromInt(1),
	})

	_, ok := apperrors.IsConsistencyError(err)
	assert.True(t, ok, "got %v", err)
}

func TestRecordProduction_ShortComponentStopsEverything(t *testing.T) {
	sal := &domain.Product{ID: 3, Name: "Sal", Category: domain.CategoryRawMaterial, Unit: domain.UnitGram}
	agua := &domain.Product{ID: 4, Name: "Agua", Category: domain.CategoryRawMaterial, Unit: domain.UnitGram}

	f := newFixture(harina(), pan(), sal, agua)
	f.recipes.recipes[2] = []domain.RecipeLine{
		{ProductID: 2, ComponentID: 1, ComponentName: "Harina", ComponentUnit: domain.UnitKilogram, QtyPerUnit: decimal.NewFromInt(250)},
		{ProductID: 2, ComponentID: 3, ComponentName: "Sal", ComponentUnit: domain.UnitGram, QtyPerUnit: decimal.NewFromInt(5)},
		{ProductID: 2, ComponentID: 4, ComponentName: "Agua", ComponentUnit: domain.UnitGram, QtyPerUnit: decimal.NewFromInt(100)},
	}
	f.ledger.set(1, decimal.NewFromInt(10000))
	f.ledger.set(3, decimal.NewFromInt(10)) // enough for 2 units only
	f.ledger.set(4, decimal.NewFromInt(10000))

	_, err := f.svc.RecordProduction(context.Background(), testBranch, dto.RecordProductionRequest{
		Product:  "Pan",
		Quantity: decimal.NewFromInt(10),
	})

	ise, ok := apperrors.IsInsufficientStockError(err)
	assert.True(t, ok, "got %v", err)
	assert.Equal(t, "Sal", ise.Product)
	assert.True(t, ise.Required.Equal(decimal.NewFromInt(50)))
	assert.True(t, ise.Available.Equal(decimal.NewFromInt(10)))

	// All balances untouched: the check runs before the first write.
	assert.Empty(t, f.ledger.movements)
	assert.Empty(t, f.productions.inserted)
	assert.True(t, f.ledger.balances[1].Equal(decimal.NewFromInt(10000)))
	assert.True(t, f.ledger.balances[4].Equal(decimal.NewFromInt(10000)))
}

func TestRecordTicket_Sale(t *testing.T) {
	f := newFixture(pan())
	f.ledger.set(2, decimal.NewFromInt(10))

	resp, err := f.svc.RecordTicket(context.Background(), testBranch, dto.RecordTicketRequest{
		Type:    "VENTA",
		Cashier: "Ana",
		Lines: []dto.TicketLineRequest{
			{ProductID: 2, Quantity: decimal.NewFromInt(3)},
		},
	})

	assert.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(54)), "3 x 18, got %s", resp.Total)

	assert.True(t, f.ledger.balances[2].Equal(decimal.NewFromInt(7)))
	assert.Equal(t, domain.ReasonSale, f.ledger.movements[0].Reason)

	assert.Len(t, f.tickets.lines, 1)
	line := f.tickets.lines[0]
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(18)))
	assert.True(t, line.CatalogPrice.Equal(decimal.NewFromInt(18)))
	assert.NotNil(t, f.tickets.inserted[0].Cashier)
}

func TestRecordTicket_OversellRejectedWithoutEffects(t *testing.T) {
	f := newFixture(pan())
	f.ledger.set(2, decimal.NewFromInt(10))

	_, err := f.svc.RecordTicket(context.Background(), testBranch, dto.RecordTicketRequest{
		Type: "VENTA",
		Lines: []dto.TicketLineRequest{
			{ProductID: 2, Quantity: decimal.NewFromInt(12)},
		},
	})

	ise, ok := apperrors.IsInsufficientStockError(err)
	assert.True(t, ok, "got %v", err)
	assert.True(t, ise.Required.Equal(decimal.NewFromInt(12)))
	assert.True(t, ise.Available.Equal(decimal.NewFromInt(10)))

	assert.Empty(t, f.ledger.movements)
	assert.Empty(t, f.tickets.lines)
	assert.True(t, f.ledger.balances[2].Equal(decimal.NewFromInt(10)), "balance must stay at 10")
}

func TestRecordTicket_WasteChargedAtZero(t *testing.T) {
	f := newFixture(pan())
	f.ledger.set(2, decimal.NewFromInt(10))

	resp, err := f.svc.RecordTicket(context.Background(), testBranch, dto.RecordTicketRequest{
		Type: "MERMA",
		Lines: []dto.TicketLineRequest{
			{ProductID: 2, Quantity: decimal.NewFromInt(2)},
		},
	})

	assert.NoError(t, err)
	assert.True(t, resp.Total.IsZero())

	line := f.tickets.lines[0]
	assert.True(t, line.UnitPrice.IsZero())
	assert.True(t, line.Subtotal.IsZero())
	assert.True(t, line.CatalogPrice.Equal(decimal.NewFromInt(18)), "catalog price is still snapshotted")

	assert.True(t, f.ledger.balances[2].Equal(decimal.NewFromInt(8)))
	assert.Equal(t, domain.ReasonWaste, f.ledger.movements[0].Reason)
}

func TestRecordTicket_NotSellable(t *testing.T) {
	f := newFixture(harina())

	_, err := f.svc.RecordTicket(context.Background(), testBranch, dto.RecordTicketRequest{
		Type: "VENTA",
		Lines: []dto.TicketLineRequest{
			{ProductID: 1, Quantity: decimal.NewFromInt(1)},
		},
	})

	_, ok := apperrors.IsConsistencyError(err)
	assert.True(t, ok, "got %v", err)
}

func TestRecordTicket_UnknownType(t *testing.T) {
	f := newFixture(pan())

	_, err := f.svc.RecordTicket(context.Background(), testBranch, dto.RecordTicketRequest{
		Type: "DEVOLUCION",
		Lines: []dto.TicketLineRequest{
			{ProductID: 2, Quantity: decimal.NewFromInt(1)},
		},
	})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok, "got %v", err)
}

func TestAdjustStock_MayGoNegative(t *testing.T) {
	f := newFixture(harina())
	f.ledger.set(1, decimal.NewFromInt(500))

	resp, err := f.svc.AdjustStock(context.Background(), testBranch, dto.AdjustStockRequest{
		Product: "Harina",
		Delta:   decimal.NewFromInt(-1), // -1 kg on a 500 g balance
		Note:    "conteo físico",
	})

	assert.NoError(t, err)
	assert.True(t, resp.Balance.Equal(decimal.NewFromInt(-500)), "got %s", resp.Balance)

	m := f.ledger.movements[0]
	assert.Equal(t, domain.ReasonAdjustment, m.Reason)
	assert.True(t, m.Delta.Equal(decimal.NewFromInt(-1000)))
}

func TestAdjustStock_ZeroDeltaRejected(t *testing.T) {
	f := newFixture(harina())

	_, err := f.svc.AdjustStock(context.Background(), testBranch, dto.AdjustStockRequest{
		Product: "Harina",
		Delta:   decimal.Zero,
	})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok, "got %v", err)
	assert.Empty(t, f.ledger.movements)
}
