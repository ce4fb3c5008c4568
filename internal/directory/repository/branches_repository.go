package repository

import (
	"context"
	"database/sql"
	"fmt"

	"almacen/internal/domain"
)

type MySQLBranchesRepository struct {
	db *sql.DB
}

func NewMySQLBranchesRepository(db *sql.DB) *MySQLBranchesRepository {
	return &MySQLBranchesRepository{db: db}
}

// Ensure creates the branch if it does not exist and returns it. Called once
// at startup with the configured branch name.
func (r *MySQLBranchesRepository) Ensure(ctx context.Context, name string) (*domain.Branch, error) {
	insert := `INSERT IGNORE INTO Branches (name) VALUES (?)`
	if _, err := r.db.ExecContext(ctx, insert, name); err != nil {
		return nil, fmt.Errorf("ensuring branch: %w", err)
	}

	query := `SELECT id, name FROM Branches WHERE name = ?`

	var b domain.Branch
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&b.ID, &b.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("branch %q missing after ensure", name)
		}
		return nil, fmt.Errorf("querying branch: %w", err)
	}

	return &b, nil
}
