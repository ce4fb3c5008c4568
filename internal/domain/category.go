package domain

// Category is a fixed, non-extensible enumeration. "Insumos" are raw
// materials, "Elaborados" are manufactured in-house from a recipe,
// "Productos" are bought ready for resale.
type Category string

const (
	CategoryRawMaterial  Category = "Insumos"
	CategoryManufactured Category = "Elaborados"
	CategoryResale       Category = "Productos"
)

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryRawMaterial, CategoryManufactured, CategoryResale:
		return Category(s), true
	}
	return "", false
}

// Constraints are the business rules a category implies for a product.
type Constraints struct {
	Sellable     bool
	PriceAllowed bool
	CodeRequired bool
}

// DeriveConstraints is the single place category rules are decided.
// Only sellable products carry a price and require an external code.
func DeriveConstraints(c Category) Constraints {
	sellable := c == CategoryManufactured || c == CategoryResale
	return Constraints{
		Sellable:     sellable,
		PriceAllowed: sellable,
		CodeRequired: sellable,
	}
}
