package dto

import "github.com/shopspring/decimal"

type PurchaseLineRequest struct {
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

type RecordPurchaseRequest struct {
	Lines    []PurchaseLineRequest `json:"lines"`
	Supplier string                `json:"supplier,omitempty"`
	Note     string                `json:"note,omitempty"`
}

type RecordPurchaseResponse struct {
	PurchaseID int64           `json:"purchaseId"`
	Total      decimal.Decimal `json:"total"`
}

type RecordProductionRequest struct {
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note,omitempty"`
}

type RecordProductionResponse struct {
	BatchID int64 `json:"batchId"`
}

type TicketLineRequest struct {
	ProductID int             `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type RecordTicketRequest struct {
	Type    string              `json:"type"`
	Lines   []TicketLineRequest `json:"lines"`
	Cashier string              `json:"cashier,omitempty"`
	Note    string              `json:"note,omitempty"`
}

type RecordTicketResponse struct {
	TicketID int64           `json:"ticketId"`
	Total    decimal.Decimal `json:"total"`
}

type AdjustStockRequest struct {
	Product string          `json:"product"`
	// Delta is signed and in the product's display unit.
	Delta decimal.Decimal `json:"delta"`
	Note  string          `json:"note,omitempty"`
}

type AdjustStockResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
