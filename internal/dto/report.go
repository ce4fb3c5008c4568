package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type InventoryRow struct {
	Product  string          `json:"product"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unitCost"`
}

type SalesReportRow struct {
	Date      time.Time       `json:"date"`
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Margin    decimal.Decimal `json:"margin"`
}

type WasteReportRow struct {
	Date         time.Time       `json:"date"`
	Product      string          `json:"product"`
	Quantity     decimal.Decimal `json:"quantity"`
	CatalogPrice decimal.Decimal `json:"catalogPrice"`
	Loss         decimal.Decimal `json:"loss"`
}

type PurchaseReportRow struct {
	Date      time.Time       `json:"date"`
	Supplier  *string         `json:"supplier,omitempty"`
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

type TopProductRow struct {
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type KardexRow struct {
	Date     time.Time       `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason"`
	Note     string          `json:"note,omitempty"`
}
