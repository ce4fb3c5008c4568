package service

import (
	"context"

	"github.com/shopspring/decimal"

	"almacen/internal/domain"
	apperrors "almacen/internal/errors"
	"almacen/internal/infrastructure/mysql"
)

type LedgerRepository interface {
	Balance(ctx context.Context, productID, branchID int) (decimal.Decimal, error)
	BalanceForUpdate(ctx context.Context, ex mysql.Executor, productID, branchID int) (decimal.Decimal, error)
	ApplyDelta(ctx context.Context, ex mysql.Executor, m domain.Movement) error
	Movements(ctx context.Context, productID, branchID int) ([]domain.Movement, error)
}

// Ledger is the single writer surface for stock. It knows nothing about why
// a delta happens beyond the reason tag it records.
type Ledger struct {
	repo LedgerRepository
}

func NewLedger(repo LedgerRepository) *Ledger {
	return &Ledger{repo: repo}
}

func (l *Ledger) Balance(ctx context.Context, productID, branchID int) (decimal.Decimal, error) {
	return l.repo.Balance(ctx, productID, branchID)
}

func (l *Ledger) BalanceForUpdate(ctx context.Context, ex mysql.Executor, productID, branchID int) (decimal.Decimal, error) {
	return l.repo.BalanceForUpdate(ctx, ex, productID, branchID)
}

// AssertSufficient locks the balance row and fails if the requirement
// exceeds it. The caller aborts its whole transaction on error.
func (l *Ledger) AssertSufficient(ctx context.Context, ex mysql.Executor, productID int, productName string, branchID int, required decimal.Decimal) (decimal.Decimal, error) {
	available, err := l.repo.BalanceForUpdate(ctx, ex, productID, branchID)
	if err != nil {
		return decimal.Zero, err
	}
	if available.LessThan(required) {
		return decimal.Zero, apperrors.NewInsufficientStockError(productName, required, available)
	}
	return available, nil
}

func (l *Ledger) ApplyDelta(ctx context.Context, ex mysql.Executor, m domain.Movement) error {
	return l.repo.ApplyDelta(ctx, ex, m)
}

func (l *Ledger) Movements(ctx context.Context, productID, branchID int) ([]domain.Movement, error) {
	return l.repo.Movements(ctx, productID, branchID)
}
