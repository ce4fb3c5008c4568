package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"almacen/internal/domain"
	"almacen/internal/errors"
	"almacen/internal/infrastructure/mysql"
)

type MySQLProductsRepository struct {
	db *sql.DB
}

func NewMySQLProductsRepository(db *sql.DB) *MySQLProductsRepository {
	return &MySQLProductsRepository{db: db}
}

const productColumns = `id, name, code, category, unit, sellable, price, lastCost, createdAt, updatedAt`

func scanProduct(scan func(dest ...interface{}) error) (*domain.Product, error) {
	var p domain.Product
	err := scan(
		&p.ID, &p.Name, &p.Code, &p.Category, &p.Unit, &p.Sellable,
		&p.Price, &p.LastCost, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MySQLProductsRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	query := `
		INSERT INTO Products (name, code, category, unit, sellable, price, lastCost)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Code, p.Category, p.Unit, p.Sellable, p.Price, p.LastCost,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLProductsRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Products WHERE id = ?`, productColumns)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return p, nil
}

func (r *MySQLProductsRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Products WHERE name = ?`, productColumns)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, name).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by name: %w", err)
	}

	return p, nil
}

// FindSellableByCode resolves the external code printed on labels. Only
// sellable products carry one.
func (r *MySQLProductsRepository) FindSellableByCode(ctx context.Context, code string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Products WHERE sellable = 1 AND code = ?`, productColumns)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, code).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("sellable product with code %q not found", code))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by code: %w", err)
	}

	return p, nil
}

// Search is a case-insensitive substring match over name and code.
func (r *MySQLProductsRepository) Search(ctx context.Context, q string) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM Products
		WHERE name LIKE ? OR code LIKE ?
		ORDER BY name`, productColumns)

	like := "%" + q + "%"
	return r.queryProducts(ctx, query, like, like)
}

func (r *MySQLProductsRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Products ORDER BY name`, productColumns)
	return r.queryProducts(ctx, query)
}

func (r *MySQLProductsRepository) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Products WHERE category = ? ORDER BY name`, productColumns)
	return r.queryProducts(ctx, query, category)
}

func (r *MySQLProductsRepository) ListSellable(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Products WHERE sellable = 1 ORDER BY name`, productColumns)
	return r.queryProducts(ctx, query)
}

// ListPurchasable returns products bought from suppliers: raw materials and
// resale goods, never manufactured ones.
func (r *MySQLProductsRepository) ListPurchasable(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM Products
		WHERE category IN (?, ?)
		ORDER BY name`, productColumns)
	return r.queryProducts(ctx, query, domain.CategoryRawMaterial, domain.CategoryResale)
}

// UsedCodes returns every code starting with prefix, for the generator scan.
func (r *MySQLProductsRepository) UsedCodes(ctx context.Context, prefix string) (map[string]struct{}, error) {
	query := `SELECT code FROM Products WHERE code LIKE ?`

	rows, err := r.db.QueryContext(ctx, query, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("querying used codes: %w", err)
	}
	defer rows.Close()

	used := make(map[string]struct{})
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scanning code row: %w", err)
		}
		used[code] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating code rows: %w", err)
	}

	return used, nil
}

func (r *MySQLProductsRepository) UpdateLastCost(ctx context.Context, ex mysql.Executor, productID int, cost decimal.Decimal) error {
	query := `UPDATE Products SET lastCost = ? WHERE id = ?`

	result, err := ex.ExecContext(ctx, query, cost, productID)
	if err != nil {
		return fmt.Errorf("updating product last cost: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	}

	return nil
}

func (r *MySQLProductsRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}
