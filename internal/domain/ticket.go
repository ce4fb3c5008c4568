package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketType string

const (
	TicketSale  TicketType = "VENTA"
	TicketWaste TicketType = "MERMA"
)

func ParseTicketType(s string) (TicketType, bool) {
	switch TicketType(s) {
	case TicketSale, TicketWaste:
		return TicketType(s), true
	}
	return "", false
}

type Ticket struct {
	ID        int64
	Type      TicketType
	BranchID  int
	Cashier   *string
	Total     decimal.Decimal
	Note      string
	CreatedAt time.Time
}

type TicketLine struct {
	ID       int64
	TicketID int64
	ProductID int
	Quantity decimal.Decimal
	// UnitPrice is the price charged: the catalog price for a sale,
	// zero for waste.
	UnitPrice decimal.Decimal
	// CatalogPrice snapshots the catalog price at ticket time regardless
	// of type, so waste can be valued later.
	CatalogPrice decimal.Decimal
	Subtotal     decimal.Decimal
}
