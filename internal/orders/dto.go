package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddLineItemInput holds the payload to append one line to an order. The
// unit price is the caller's snapshot; it is stored as given and never
// re-read from the variant afterwards.
type AddLineItemInput struct {
	OrderID   int64           `json:"order_id" validate:"required"`
	VariantID int64           `json:"variant_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Note      string          `json:"note"`
}

// OrderItemDetail is one order line joined with its variant brand and
// product name for display.
type OrderItemDetail struct {
	ID          int64
	OrderID     int64
	VariantID   int64
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Note        *string
	Brand       string
	ProductName string
}

// SaleRecord is one line of the global sales report: an order item joined
// across variants, products, orders, and customers.
type SaleRecord struct {
	ItemID       int64
	OrderID      int64
	Quantity     int
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
	ProductName  string
	Brand        string
	CustomerName string
	PlacedAt     time.Time
	Status       string
}
