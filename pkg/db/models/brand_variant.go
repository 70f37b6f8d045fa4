package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BrandVariant is a purchasable SKU of a product family: one brand, one
// code, one price, one stock count. The code is unique across the whole
// store. The product reference is declared but not enforced by SQLite, so a
// deleted product leaves its variants behind unless the caller removes them
// first.
type BrandVariant struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID    int64           `gorm:"column:produto_id;not null"`
	Code         string          `gorm:"column:codigo;unique"`
	Brand        string          `gorm:"column:marca;not null"`
	UnitPrice    decimal.Decimal `gorm:"column:preco_unitario;type:numeric;not null"`
	Quantity     int             `gorm:"column:quantidade;not null;default:0"`
	ExpiresAt    *time.Time      `gorm:"column:data_validade"`
	RegisteredAt time.Time       `gorm:"column:data_cadastro;autoCreateTime"`
}

func (BrandVariant) TableName() string { return "produto_marcas" }
