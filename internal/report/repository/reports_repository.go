package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"almacen/internal/domain"
)

// DateRange filters report rows by creation time. Nil bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

type InventoryRow struct {
	ProductName string
	Unit        domain.Unit
	QtyBase     decimal.Decimal
	LastCost    decimal.Decimal
}

type SalesRow struct {
	Date        time.Time
	ProductName string
	Category    domain.Category
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

type WasteRow struct {
	Date         time.Time
	ProductName  string
	Quantity     decimal.Decimal
	CatalogPrice decimal.Decimal
}

type PurchaseRow struct {
	Date         time.Time
	SupplierName *string
	ProductName  string
	Quantity     decimal.Decimal
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
}

type TopProductRow struct {
	ProductName string
	Quantity    decimal.Decimal
	Revenue     decimal.Decimal
}

type MySQLReportsRepository struct {
	db *sql.DB
}

func NewMySQLReportsRepository(db *sql.DB) *MySQLReportsRepository {
	return &MySQLReportsRepository{db: db}
}

func (r *MySQLReportsRepository) CurrentInventory(ctx context.Context, branchID int) ([]InventoryRow, error) {
	query := `
		SELECT p.name, p.unit, i.qtyBase, p.lastCost
		FROM Inventory i
		JOIN Products p ON p.id = i.productId
		WHERE i.branchId = ?
		ORDER BY p.name`

	rows, err := r.db.QueryContext(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("querying inventory: %w", err)
	}
	defer rows.Close()

	var result []InventoryRow
	for rows.Next() {
		var row InventoryRow
		if err := rows.Scan(&row.ProductName, &row.Unit, &row.QtyBase, &row.LastCost); err != nil {
			return nil, fmt.Errorf("scanning inventory row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (r *MySQLReportsRepository) DetailedSales(ctx context.Context, dr DateRange) ([]SalesRow, error) {
	query := `
		SELECT t.createdAt, p.name, p.category, tl.quantity, tl.unitPrice, tl.subtotal
		FROM TicketLines tl
		JOIN Tickets t ON t.id = tl.ticketId
		JOIN Products p ON p.id = tl.productId
		WHERE t.type = ?`
	args := []any{domain.TicketSale}
	query, args = appendRange(query, args, "t.createdAt", dr)
	query += ` ORDER BY t.createdAt, tl.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sales: %w", err)
	}
	defer rows.Close()

	var result []SalesRow
	for rows.Next() {
		var row SalesRow
		if err := rows.Scan(&row.Date, &row.ProductName, &row.Category, &row.Quantity, &row.UnitPrice, &row.Subtotal); err != nil {
			return nil, fmt.Errorf("scanning sales row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (r *MySQLReportsRepository) DetailedWaste(ctx context.Context, dr DateRange) ([]WasteRow, error) {
	query := `
		SELECT t.createdAt, p.name, tl.quantity, tl.catalogPrice
		FROM TicketLines tl
		JOIN Tickets t ON t.id = tl.ticketId
		JOIN Products p ON p.id = tl.productId
		WHERE t.type = ?`
	args := []any{domain.TicketWaste}
	query, args = appendRange(query, args, "t.createdAt", dr)
	query += ` ORDER BY t.createdAt, tl.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying waste: %w", err)
	}
	defer rows.Close()

	var result []WasteRow
	for rows.Next() {
		var row WasteRow
		if err := rows.Scan(&row.Date, &row.ProductName, &row.Quantity, &row.CatalogPrice); err != nil {
			return nil, fmt.Errorf("scanning waste row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (r *MySQLReportsRepository) DetailedPurchases(ctx context.Context, dr DateRange, supplier *string) ([]PurchaseRow, error) {
	query := `
		SELECT p.createdAt, s.name, prod.name, pl.quantity, pl.unitCost, pl.totalCost
		FROM PurchaseLines pl
		JOIN Purchases p ON p.id = pl.purchaseId
		JOIN Products prod ON prod.id = pl.productId
		LEFT JOIN Suppliers s ON s.id = p.supplierId
		WHERE 1 = 1`
	var args []any
	query, args = appendRange(query, args, "p.createdAt", dr)
	if supplier != nil {
		query += ` AND s.name = ?`
		args = append(args, *supplier)
	}
	query += ` ORDER BY p.createdAt, pl.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying purchases: %w", err)
	}
	defer rows.Close()

	var result []PurchaseRow
	for rows.Next() {
		var row PurchaseRow
		if err := rows.Scan(&row.Date, &row.SupplierName, &row.ProductName, &row.Quantity, &row.UnitCost, &row.TotalCost); err != nil {
			return nil, fmt.Errorf("scanning purchase row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (r *MySQLReportsRepository) TopProducts(ctx context.Context, dr DateRange, limit int) ([]TopProductRow, error) {
	query := `
		SELECT p.name, SUM(tl.quantity), SUM(tl.subtotal) AS revenue
		FROM TicketLines tl
		JOIN Tickets t ON t.id = tl.ticketId
		JOIN Products p ON p.id = tl.productId
		WHERE t.type = ?`
	args := []any{domain.TicketSale}
	query, args = appendRange(query, args, "t.createdAt", dr)
	query += ` GROUP BY p.id, p.name ORDER BY revenue DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying top products: %w", err)
	}
	defer rows.Close()

	var result []TopProductRow
	for rows.Next() {
		var row TopProductRow
		if err := rows.Scan(&row.ProductName, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scanning top product row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func appendRange(query string, args []any, column string, dr DateRange) (string, []any) {
	var b strings.Builder
	b.WriteString(query)
	if dr.From != nil {
		b.WriteString(" AND " + column + " >= ?")
		args = append(args, *dr.From)
	}
	if dr.To != nil {
		b.WriteString(" AND " + column + " < ?")
		args = append(args, *dr.To)
	}
	return b.String(), args
}
