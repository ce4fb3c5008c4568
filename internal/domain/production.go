package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionBatch records one manufacture run of a recipe-owning product.
// It only exists if the full component stock was available at commit time.
type ProductionBatch struct {
	ID        int64
	ProductID int
	BranchID  int
	Quantity  decimal.Decimal
	Note      string
	CreatedAt time.Time
}
