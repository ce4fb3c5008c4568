package dto

import "github.com/shopspring/decimal"

type RecipeComponent struct {
	Component string `json:"component"`
	// QtyPerUnit is in the component's base unit, per one unit produced.
	QtyPerUnit decimal.Decimal `json:"qtyPerUnit"`
}

type SetRecipeRequest struct {
	Components []RecipeComponent `json:"components"`
}

type RecipeLineDTO struct {
	Component  string          `json:"component"`
	Unit       string          `json:"unit"`
	QtyPerUnit decimal.Decimal `json:"qtyPerUnit"`
}

type RecipeCostResponse struct {
	Product string          `json:"product"`
	Cost    decimal.Decimal `json:"cost"`
}
