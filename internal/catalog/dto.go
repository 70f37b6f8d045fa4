package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSummary is one row of the product listing: the family plus
// aggregates computed across its variants. Zero-variant products appear
// with zero aggregates.
type ProductSummary struct {
	ID            int64
	Name          string
	Category      string
	CreatedAt     time.Time
	VariantCount  int
	TotalQuantity int
	TotalValue    decimal.Decimal
}

// CreateProductInput holds the validated payload to create a product family.
type CreateProductInput struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// UpdateProductInput holds optional mutation values for a product family.
type UpdateProductInput struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

// CreateVariantInput holds the validated payload to create a brand variant.
// An empty code falls back to PROD<product id>, as the register screen has
// always done.
type CreateVariantInput struct {
	ProductID int64           `json:"product_id" validate:"required"`
	Code      string          `json:"code"`
	Brand     string          `json:"brand" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ExpiresAt *time.Time      `json:"expires_at"`
}

// RecordMovementInput captures one append-only stock audit entry. Type is
// stored as-is; the store does not constrain it.
type RecordMovementInput struct {
	VariantID int64  `json:"variant_id" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// RegisterEntryInput is the register screen's one-shot flow: product
// family (reused by name when it already exists), new variant, initial
// quantity, and an intake movement.
type RegisterEntryInput struct {
	Name      string          `json:"name" validate:"required"`
	Category  string          `json:"category" validate:"required"`
	Brand     string          `json:"brand" validate:"required"`
	Code      string          `json:"code"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
	ExpiresAt *time.Time      `json:"expires_at"`
}

// RegisterEntryResult reports what the register flow created or reused.
type RegisterEntryResult struct {
	ProductID     int64
	VariantID     int64
	ReusedProduct bool
}
