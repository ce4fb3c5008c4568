package repository

import (
	"context"
	"database/sql"
	"fmt"

	"almacen/internal/domain"
	"almacen/internal/infrastructure/mysql"
)

type MySQLProductionsRepository struct {
	db *sql.DB
}

func NewMySQLProductionsRepository(db *sql.DB) *MySQLProductionsRepository {
	return &MySQLProductionsRepository{db: db}
}

func (r *MySQLProductionsRepository) Insert(ctx context.Context, ex mysql.Executor, b domain.ProductionBatch) (int64, error) {
	query := `INSERT INTO Productions (productId, branchId, quantity, note) VALUES (?, ?, ?, ?)`

	result, err := ex.ExecContext(ctx, query, b.ProductID, b.BranchID, b.Quantity, b.Note)
	if err != nil {
		return 0, fmt.Errorf("inserting production batch: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return lastInsertID, nil
}
