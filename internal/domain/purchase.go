package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID         int64
	BranchID   int
	SupplierID *int
	Total      decimal.Decimal
	Note       string
	CreatedAt  time.Time
}

type PurchaseLine struct {
	ID         int64
	PurchaseID int64
	ProductID  int
	// Quantity is in the product's display unit, as captured.
	Quantity  decimal.Decimal
	TotalCost decimal.Decimal
	// UnitCost = TotalCost / Quantity, per display unit.
	UnitCost decimal.Decimal
}
