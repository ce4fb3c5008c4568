package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type MySQLPurchaseHistoryRepository struct {
	db *sql.DB
}

func NewMySQLPurchaseHistoryRepository(db *sql.DB) *MySQLPurchaseHistoryRepository {
	return &MySQLPurchaseHistoryRepository{db: db}
}

// LastUnitCost returns the unit cost of the most recent purchase line for a
// product. The second return is false when the product was never purchased.
func (r *MySQLPurchaseHistoryRepository) LastUnitCost(ctx context.Context, productID int) (decimal.Decimal, bool, error) {
	query := `
		SELECT pl.unitCost
		FROM PurchaseLines pl
		JOIN Purchases p ON p.id = pl.purchaseId
		WHERE pl.productId = ?
		ORDER BY p.createdAt DESC, pl.id DESC
		LIMIT 1`

	var cost decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&cost)
	if err == sql.ErrNoRows {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("querying last unit cost: %w", err)
	}

	return cost, true, nil
}
