package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"almacen/internal/domain"
	"almacen/internal/infrastructure/mysql"
)

// MySQLLedgerRepository persists balances and the append-only movement log.
// Both are always written inside the caller's transaction so the invariant
// balance == sum(movement deltas) can never be observed broken.
type MySQLLedgerRepository struct {
	db *sql.DB
}

func NewMySQLLedgerRepository(db *sql.DB) *MySQLLedgerRepository {
	return &MySQLLedgerRepository{db: db}
}

func (r *MySQLLedgerRepository) Balance(ctx context.Context, productID, branchID int) (decimal.Decimal, error) {
	query := `SELECT qtyBase FROM Inventory WHERE productId = ? AND branchId = ?`

	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, productID, branchID).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("querying balance: %w", err)
	}

	return balance, nil
}

// BalanceForUpdate creates the zero row if the product was never touched on
// this branch, then takes a row lock. Every decrement must go through this
// read so two concurrent operations cannot both pass a sufficiency check
// against the same stale balance.
func (r *MySQLLedgerRepository) BalanceForUpdate(ctx context.Context, ex mysql.Executor, productID, branchID int) (decimal.Decimal, error) {
	insert := `INSERT IGNORE INTO Inventory (productId, branchId, qtyBase) VALUES (?, ?, 0)`
	if _, err := ex.ExecContext(ctx, insert, productID, branchID); err != nil {
		return decimal.Zero, fmt.Errorf("ensuring balance row: %w", err)
	}

	query := `SELECT qtyBase FROM Inventory WHERE productId = ? AND branchId = ? FOR UPDATE`

	var balance decimal.Decimal
	if err := ex.QueryRowContext(ctx, query, productID, branchID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("locking balance row: %w", err)
	}

	return balance, nil
}

// ApplyDelta appends one movement and adjusts the balance by the same
// amount. Never committed on its own.
func (r *MySQLLedgerRepository) ApplyDelta(ctx context.Context, ex mysql.Executor, m domain.Movement) error {
	insert := `
		INSERT INTO Movements (productId, branchId, deltaBase, reason, refTable, refId, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	if _, err := ex.ExecContext(ctx, insert, m.ProductID, m.BranchID, m.Delta, m.Reason, m.RefTable, m.RefID, m.Note); err != nil {
		return fmt.Errorf("inserting movement: %w", err)
	}

	update := `UPDATE Inventory SET qtyBase = qtyBase + ? WHERE productId = ? AND branchId = ?`

	result, err := ex.ExecContext(ctx, update, m.Delta, m.ProductID, m.BranchID)
	if err != nil {
		return fmt.Errorf("updating balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("balance row missing for product %d on branch %d", m.ProductID, m.BranchID)
	}

	return nil
}

func (r *MySQLLedgerRepository) Movements(ctx context.Context, productID, branchID int) ([]domain.Movement, error) {
	query := `
		SELECT id, productId, branchId, deltaBase, reason, refTable, refId, note, createdAt
		FROM Movements
		WHERE productId = ? AND branchId = ?
		ORDER BY createdAt, id`

	rows, err := r.db.QueryContext(ctx, query, productID, branchID)
	if err != nil {
		return nil, fmt.Errorf("querying movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.Movement
	for rows.Next() {
		var m domain.Movement
		err := rows.Scan(&m.ID, &m.ProductID, &m.BranchID, &m.Delta, &m.Reason, &m.RefTable, &m.RefID, &m.Note, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning movement row: %w", err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movement rows: %w", err)
	}

	return movements, nil
}

// SumDeltas recomputes the balance from the movement log.
func (r *MySQLLedgerRepository) SumDeltas(ctx context.Context, productID, branchID int) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(deltaBase), 0) FROM Movements WHERE productId = ? AND branchId = ?`

	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, productID, branchID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing movement deltas: %w", err)
	}

	return sum, nil
}
