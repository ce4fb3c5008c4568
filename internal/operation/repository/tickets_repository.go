package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"almacen/internal/domain"
	"almacen/internal/infrastructure/mysql"
)

type MySQLTicketsRepository struct {
	db *sql.DB
}

func NewMySQLTicketsRepository(db *sql.DB) *MySQLTicketsRepository {
	return &MySQLTicketsRepository{db: db}
}

func (r *MySQLTicketsRepository) Insert(ctx context.Context, ex mysql.Executor, t domain.Ticket) (int64, error) {
	query := `INSERT INTO Tickets (type, branchId, cashier, total, note) VALUES (?, ?, ?, ?, ?)`

	result, err := ex.ExecContext(ctx, query, t.Type, t.BranchID, t.Cashier, t.Total, t.Note)
	if err != nil {
		return 0, fmt.Errorf("inserting ticket: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return lastInsertID, nil
}

func (r *MySQLTicketsRepository) InsertLine(ctx context.Context, ex mysql.Executor, line domain.TicketLine) error {
	query := `
		INSERT INTO TicketLines (ticketId, productId, quantity, unitPrice, catalogPrice, subtotal)
		VALUES (?, ?, ?, ?, ?, ?)`

	if _, err := ex.ExecContext(ctx, query, line.TicketID, line.ProductID, line.Quantity, line.UnitPrice, line.CatalogPrice, line.Subtotal); err != nil {
		return fmt.Errorf("inserting ticket line: %w", err)
	}

	return nil
}

func (r *MySQLTicketsRepository) UpdateTotal(ctx context.Context, ex mysql.Executor, ticketID int64, total decimal.Decimal) error {
	query := `UPDATE Tickets SET total = ? WHERE id = ?`

	if _, err := ex.ExecContext(ctx, query, total, ticketID); err != nil {
		return fmt.Errorf("updating ticket total: %w", err)
	}

	return nil
}
