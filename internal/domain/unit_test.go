package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseUnit(t *testing.T) {
	for _, valid := range []string{"pz", "g", "kg"} {
		u, ok := ParseUnit(valid)
		assert.True(t, ok)
		assert.Equal(t, Unit(valid), u)
	}

	_, ok := ParseUnit("lb")
	assert.False(t, ok)
	_, ok = ParseUnit("")
	assert.False(t, ok)
}

func TestUnit_Base(t *testing.T) {
	assert.Equal(t, UnitGram, UnitKilogram.Base())
	assert.Equal(t, UnitGram, UnitGram.Base())
	assert.Equal(t, UnitPiece, UnitPiece.Base())
}

func TestToBase_Kilograms(t *testing.T) {
	got := ToBase(UnitKilogram, decimal.RequireFromString("2.5"))
	assert.True(t, got.Equal(decimal.NewFromInt(2500)), "got %s", got)
}

func TestToBase_RoundTrip(t *testing.T) {
	quantities := []string{"0", "1", "0.5", "1000"}
	units := []Unit{UnitPiece, UnitGram, UnitKilogram}

	for _, u := range units {
		for _, q := range quantities {
			qty := decimal.RequireFromString(q)
			back := FromBase(u, ToBase(u, qty))
			assert.True(t, back.Equal(qty), "unit %s qty %s came back as %s", u, q, back)
		}
	}
}

func TestFromBase_ExactDivision(t *testing.T) {
	// 1 gram in kilograms must be exact, not a float approximation.
	got := FromBase(UnitKilogram, decimal.NewFromInt(1))
	assert.Equal(t, "0.001", got.String())
}
