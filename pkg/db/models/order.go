package models

import (
	"time"

	"github.com/arvoredo/arvoredo-pos/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order groups line items for one customer. Total is denormalized and
// recomputed from the line items on every item mutation.
type Order struct {
	ID         int64             `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID int64             `gorm:"column:cliente_id;not null"`
	PlacedAt   time.Time         `gorm:"column:data_hora;autoCreateTime"`
	Status     enums.OrderStatus `gorm:"column:status;not null;default:pendente"`
	Total      decimal.Decimal   `gorm:"column:total;type:numeric;not null;default:0"`
}

func (Order) TableName() string { return "pedidos" }
