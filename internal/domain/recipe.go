package domain

import "github.com/shopspring/decimal"

// RecipeLine quantifies one raw component per single unit of a manufactured
// product. QtyPerUnit is expressed in the component's base unit. Recipes are
// flat: only non-sellable products may be components, only manufactured
// products may own recipes, so a multi-level structure is not representable.
type RecipeLine struct {
	ProductID     int
	ComponentID   int
	ComponentName string
	ComponentUnit Unit
	QtyPerUnit    decimal.Decimal
}
