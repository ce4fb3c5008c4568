package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	Code     string          `json:"code,omitempty"`
}

type CreateProductResponse struct {
	ID   int    `json:"id"`
	Code string `json:"code,omitempty"`
}

type ProductDTO struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Code     *string         `json:"code,omitempty"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	Sellable bool            `json:"sellable"`
	Price    decimal.Decimal `json:"price"`
	LastCost decimal.Decimal `json:"lastCost"`
}
