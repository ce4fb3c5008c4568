package repository

import (
	"context"
	"database/sql"
	"fmt"

	"almacen/internal/domain"
	"almacen/internal/errors"
)

type MySQLCashiersRepository struct {
	db *sql.DB
}

func NewMySQLCashiersRepository(db *sql.DB) *MySQLCashiersRepository {
	return &MySQLCashiersRepository{db: db}
}

func (r *MySQLCashiersRepository) Insert(ctx context.Context, c domain.Cashier) (int, error) {
	query := `INSERT INTO Cashiers (name, active) VALUES (?, 1)`

	result, err := r.db.ExecContext(ctx, query, c.Name)
	if err != nil {
		return 0, fmt.Errorf("inserting cashier: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLCashiersRepository) FindActiveByName(ctx context.Context, name string) (*domain.Cashier, error) {
	query := `SELECT id, name, active FROM Cashiers WHERE name = ? AND active = 1`

	var c domain.Cashier
	err := r.db.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name, &c.Active)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("cashier %q not found or inactive", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying cashier by name: %w", err)
	}

	return &c, nil
}

func (r *MySQLCashiersRepository) ListActive(ctx context.Context) ([]domain.Cashier, error) {
	query := `SELECT id, name, active FROM Cashiers WHERE active = 1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying cashiers: %w", err)
	}
	defer rows.Close()

	var cashiers []domain.Cashier
	for rows.Next() {
		var c domain.Cashier
		if err := rows.Scan(&c.ID, &c.Name, &c.Active); err != nil {
			return nil, fmt.Errorf("scanning cashier row: %w", err)
		}
		cashiers = append(cashiers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cashier rows: %w", err)
	}

	return cashiers, nil
}

func (r *MySQLCashiersRepository) Deactivate(ctx context.Context, name string) error {
	query := `UPDATE Cashiers SET active = 0 WHERE name = ?`

	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("deactivating cashier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("cashier %q not found", name))
	}

	return nil
}
