package repository

import (
	"context"
	"database/sql"
	"fmt"

	"almacen/internal/domain"
	"almacen/internal/errors"
)

type MySQLSuppliersRepository struct {
	db *sql.DB
}

func NewMySQLSuppliersRepository(db *sql.DB) *MySQLSuppliersRepository {
	return &MySQLSuppliersRepository{db: db}
}

func (r *MySQLSuppliersRepository) Insert(ctx context.Context, s domain.Supplier) (int, error) {
	query := `INSERT INTO Suppliers (name, phone, contact, active) VALUES (?, ?, ?, 1)`

	result, err := r.db.ExecContext(ctx, query, s.Name, s.Phone, s.Contact)
	if err != nil {
		return 0, fmt.Errorf("inserting supplier: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLSuppliersRepository) FindActiveByName(ctx context.Context, name string) (*domain.Supplier, error) {
	query := `SELECT id, name, phone, contact, active FROM Suppliers WHERE name = ? AND active = 1`

	var s domain.Supplier
	err := r.db.QueryRowContext(ctx, query, name).Scan(&s.ID, &s.Name, &s.Phone, &s.Contact, &s.Active)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("supplier %q not found or inactive", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying supplier by name: %w", err)
	}

	return &s, nil
}

func (r *MySQLSuppliersRepository) ListActive(ctx context.Context) ([]domain.Supplier, error) {
	query := `SELECT id, name, phone, contact, active FROM Suppliers WHERE active = 1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		var s domain.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Contact, &s.Active); err != nil {
			return nil, fmt.Errorf("scanning supplier row: %w", err)
		}
		suppliers = append(suppliers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating supplier rows: %w", err)
	}

	return suppliers, nil
}

// Deactivate soft-deletes: history keeps pointing at the row.
func (r *MySQLSuppliersRepository) Deactivate(ctx context.Context, name string) error {
	query := `UPDATE Suppliers SET active = 0 WHERE name = ?`

	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("deactivating supplier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("supplier %q not found", name))
	}

	return nil
}
