package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementReason string

const (
	ReasonPurchase   MovementReason = "COMPRA"
	ReasonProduction MovementReason = "PRODUCCION"
	ReasonSale       MovementReason = "VENTA"
	ReasonWaste      MovementReason = "MERMA"
	ReasonAdjustment MovementReason = "AJUSTE"
)

// Movement is one immutable entry of the stock ledger. For any
// (product, branch) the sum of deltas equals the inventory balance.
type Movement struct {
	ID        int64
	ProductID int
	BranchID  int
	// Delta is signed and expressed in the product's base unit.
	Delta     decimal.Decimal
	Reason    MovementReason
	RefTable  string
	RefID     *int64
	Note      string
	CreatedAt time.Time
}
