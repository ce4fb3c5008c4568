package repository

import (
	"context"
	"database/sql"
	"fmt"

	"almacen/internal/domain"
	"almacen/internal/infrastructure/mysql"
)

type MySQLRecipesRepository struct {
	db *sql.DB
}

func NewMySQLRecipesRepository(db *sql.DB) *MySQLRecipesRepository {
	return &MySQLRecipesRepository{db: db}
}

// Replace swaps the whole recipe in one shot. Validation happens before this
// is called; by the time we are here every line is known good.
func (r *MySQLRecipesRepository) Replace(ctx context.Context, ex mysql.Executor, productID int, lines []domain.RecipeLine) error {
	if _, err := ex.ExecContext(ctx, `DELETE FROM Recipes WHERE productId = ?`, productID); err != nil {
		return fmt.Errorf("clearing recipe: %w", err)
	}

	query := `INSERT INTO Recipes (productId, componentId, qtyPerUnit) VALUES (?, ?, ?)`
	for _, line := range lines {
		if _, err := ex.ExecContext(ctx, query, productID, line.ComponentID, line.QtyPerUnit); err != nil {
			return fmt.Errorf("inserting recipe line: %w", err)
		}
	}

	return nil
}

func (r *MySQLRecipesRepository) GetByProductID(ctx context.Context, productID int) ([]domain.RecipeLine, error) {
	query := `
		SELECT r.productId, r.componentId, p.name, p.unit, r.qtyPerUnit
		FROM Recipes r
		JOIN Products p ON p.id = r.componentId
		WHERE r.productId = ?
		ORDER BY p.name`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying recipe: %w", err)
	}
	defer rows.Close()

	var lines []domain.RecipeLine
	for rows.Next() {
		var line domain.RecipeLine
		err := rows.Scan(&line.ProductID, &line.ComponentID, &line.ComponentName, &line.ComponentUnit, &line.QtyPerUnit)
		if err != nil {
			return nil, fmt.Errorf("scanning recipe row: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipe rows: %w", err)
	}

	return lines, nil
}
