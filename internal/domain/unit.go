package domain

import (
	"github.com/shopspring/decimal"
)

// Unit is the display unit a product is captured in. Quantities are stored
// in base units: grams for mass, pieces for count.
type Unit string

const (
	UnitPiece    Unit = "pz"
	UnitGram     Unit = "g"
	UnitKilogram Unit = "kg"
)

var thousand = decimal.NewFromInt(1000)

func ParseUnit(s string) (Unit, bool) {
	switch Unit(s) {
	case UnitPiece, UnitGram, UnitKilogram:
		return Unit(s), true
	}
	return "", false
}

// Base returns the unit quantities are stored in.
func (u Unit) Base() Unit {
	if u == UnitKilogram {
		return UnitGram
	}
	return u
}

// BaseFactor is how many base units make up one display unit.
func (u Unit) BaseFactor() decimal.Decimal {
	if u == UnitKilogram {
		return thousand
	}
	return decimal.NewFromInt(1)
}

// ToBase converts a display-unit quantity to base units. kg multiplies by
// 1000 into grams; g and pz are already base units.
func ToBase(u Unit, qty decimal.Decimal) decimal.Decimal {
	return qty.Mul(u.BaseFactor())
}

// FromBase converts a base-unit quantity back to the display unit.
func FromBase(u Unit, baseQty decimal.Decimal) decimal.Decimal {
	if u == UnitKilogram {
		return baseQty.Div(thousand)
	}
	return baseQty
}
