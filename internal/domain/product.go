package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       int
	Name     string
	Code     *string
	Category Category
	Unit     Unit
	Sellable bool
	// Price is the catalog sale price, zero for non-sellable products.
	Price decimal.Decimal
	// LastCost is the unit cost written by the most recent purchase,
	// denominated per display unit.
	LastCost  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
