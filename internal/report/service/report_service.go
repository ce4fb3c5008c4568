package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"almacen/internal/domain"
	"almacen/internal/dto"
	"almacen/internal/report/repository"
)

type ReportsRepository interface {
	CurrentInventory(ctx context.Context, branchID int) ([]repository.InventoryRow, error)
	DetailedSales(ctx context.Context, dr repository.DateRange) ([]repository.SalesRow, error)
	DetailedWaste(ctx context.Context, dr repository.DateRange) ([]repository.WasteRow, error)
	DetailedPurchases(ctx context.Context, dr repository.DateRange, supplier *string) ([]repository.PurchaseRow, error)
	TopProducts(ctx context.Context, dr repository.DateRange, limit int) ([]repository.TopProductRow, error)
}

type ProductsRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Product, error)
}

type LedgerRepository interface {
	Movements(ctx context.Context, productID, branchID int) ([]domain.Movement, error)
}

type CostingEngine interface {
	LastUnitCost(ctx context.Context, productName string) (decimal.Decimal, error)
	RecipeCost(ctx context.Context, manufacturedName string) (decimal.Decimal, error)
}

// ReportService renders read-only views over the ledger and the operation
// records. Costs on sales rows are recomputed at report time, so margins
// reflect the prices of the latest purchases, not the prices at sale time.
type ReportService struct {
	reports  ReportsRepository
	products ProductsRepository
	ledger   LedgerRepository
	costing  CostingEngine
	logger   *zap.Logger
}

func NewReportService(reports ReportsRepository, products ProductsRepository, ledger LedgerRepository, costing CostingEngine, logger *zap.Logger) *ReportService {
	return &ReportService{
		reports:  reports,
		products: products,
		ledger:   ledger,
		costing:  costing,
		logger:   logger,
	}
}

func (s *ReportService) CurrentInventory(ctx context.Context, branchID int) ([]dto.InventoryRow, error) {
	rows, err := s.reports.CurrentInventory(ctx, branchID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.InventoryRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.InventoryRow{
			Product:  row.ProductName,
			Unit:     string(row.Unit),
			Quantity: domain.FromBase(row.Unit, row.QtyBase),
			UnitCost: row.LastCost,
		})
	}

	return result, nil
}

// LowStock lists products whose display-unit balance is below the threshold.
func (s *ReportService) LowStock(ctx context.Context, branchID int, threshold decimal.Decimal) ([]dto.InventoryRow, error) {
	rows, err := s.CurrentInventory(ctx, branchID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.InventoryRow, 0)
	for _, row := range rows {
		if row.Quantity.LessThan(threshold) {
			result = append(result, row)
		}
	}

	return result, nil
}

// Kardex is the movement history of one product on one branch, oldest first,
// with quantities rendered in the product's display unit.
func (s *ReportService) Kardex(ctx context.Context, productName string, branchID int) ([]dto.KardexRow, error) {
	product, err := s.products.FindByName(ctx, productName)
	if err != nil {
		return nil, err
	}

	movements, err := s.ledger.Movements(ctx, product.ID, branchID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.KardexRow, 0, len(movements))
	for _, m := range movements {
		result = append(result, dto.KardexRow{
			Date:     m.CreatedAt,
			Quantity: domain.FromBase(product.Unit, m.Delta),
			Reason:   string(m.Reason),
			Note:     m.Note,
		})
	}

	return result, nil
}

func (s *ReportService) DetailedSales(ctx context.Context, dr repository.DateRange) ([]dto.SalesReportRow, error) {
	rows, err := s.reports.DetailedSales(ctx, dr)
	if err != nil {
		return nil, err
	}

	// Cost is recomputed once per product for the whole report.
	costs := make(map[string]decimal.Decimal)

	result := make([]dto.SalesReportRow, 0, len(rows))
	for _, row := range rows {
		cost, ok := costs[row.ProductName]
		if !ok {
			cost, err = s.unitCost(ctx, row.ProductName, row.Category)
			if err != nil {
				return nil, err
			}
			costs[row.ProductName] = cost
		}

		result = append(result, dto.SalesReportRow{
			Date:      row.Date,
			Product:   row.ProductName,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
			UnitCost:  cost,
			Subtotal:  row.Subtotal,
			Margin:    row.UnitPrice.Sub(cost).Mul(row.Quantity),
		})
	}

	return result, nil
}

func (s *ReportService) unitCost(ctx context.Context, productName string, category domain.Category) (decimal.Decimal, error) {
	if category == domain.CategoryManufactured {
		return s.costing.RecipeCost(ctx, productName)
	}
	return s.costing.LastUnitCost(ctx, productName)
}

func (s *ReportService) DetailedWaste(ctx context.Context, dr repository.DateRange) ([]dto.WasteReportRow, error) {
	rows, err := s.reports.DetailedWaste(ctx, dr)
	if err != nil {
		return nil, err
	}

	result := make([]dto.WasteReportRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.WasteReportRow{
			Date:         row.Date,
			Product:      row.ProductName,
			Quantity:     row.Quantity,
			CatalogPrice: row.CatalogPrice,
			Loss:         row.CatalogPrice.Mul(row.Quantity),
		})
	}

	return result, nil
}

func (s *ReportService) DetailedPurchases(ctx context.Context, dr repository.DateRange, supplier *string) ([]dto.PurchaseReportRow, error) {
	rows, err := s.reports.DetailedPurchases(ctx, dr, supplier)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PurchaseReportRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.PurchaseReportRow{
			Date:      row.Date,
			Supplier:  row.SupplierName,
			Product:   row.ProductName,
			Quantity:  row.Quantity,
			UnitCost:  row.UnitCost,
			TotalCost: row.TotalCost,
		})
	}

	return result, nil
}

func (s *ReportService) TopProducts(ctx context.Context, dr repository.DateRange, limit int) ([]dto.TopProductRow, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.reports.TopProducts(ctx, dr, limit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TopProductRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.TopProductRow{
			Product:  row.ProductName,
			Quantity: row.Quantity,
			Revenue:  row.Revenue,
		})
	}

	return result, nil
}
