package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"almacen/internal/domain"
	"almacen/internal/infrastructure/mysql"
)

type MySQLPurchasesRepository struct {
	db *sql.DB
}

func NewMySQLPurchasesRepository(db *sql.DB) *MySQLPurchasesRepository {
	return &MySQLPurchasesRepository{db: db}
}

func (r *MySQLPurchasesRepository) Insert(ctx context.Context, ex mysql.Executor, p domain.Purchase) (int64, error) {
	query := `INSERT INTO Purchases (branchId, supplierId, total, note) VALUES (?, ?, ?, ?)`

	result, err := ex.ExecContext(ctx, query, p.BranchID, p.SupplierID, p.Total, p.Note)
	if err != nil {
		return 0, fmt.Errorf("inserting purchase: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return lastInsertID, nil
}

func (r *MySQLPurchasesRepository) InsertLine(ctx context.Context, ex mysql.Executor, line domain.PurchaseLine) error {
	query := `
		INSERT INTO PurchaseLines (purchaseId, productId, quantity, totalCost, unitCost)
		VALUES (?, ?, ?, ?, ?)`

	if _, err := ex.ExecContext(ctx, query, line.PurchaseID, line.ProductID, line.Quantity, line.TotalCost, line.UnitCost); err != nil {
		return fmt.Errorf("inserting purchase line: %w", err)
	}

	return nil
}

func (r *MySQLPurchasesRepository) UpdateTotal(ctx context.Context, ex mysql.Executor, purchaseID int64, total decimal.Decimal) error {
	query := `UPDATE Purchases SET total = ? WHERE id = ?`

	if _, err := ex.ExecContext(ctx, query, total, purchaseID); err != nil {
		return fmt.Errorf("updating purchase total: %w", err)
	}

	return nil
}
