package models

import "github.com/shopspring/decimal"

// OrderItem is one line of an order. UnitPrice is a snapshot taken when the
// item is added, so later price edits never rewrite past orders.
type OrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:pedido_id;not null"`
	VariantID int64           `gorm:"column:produto_marca_id;not null"`
	Quantity  int             `gorm:"column:quantidade;not null"`
	UnitPrice decimal.Decimal `gorm:"column:preco_unitario;type:numeric;not null"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric;not null"`
	Note      *string         `gorm:"column:observacao"`
}

func (OrderItem) TableName() string { return "pedido_itens" }
