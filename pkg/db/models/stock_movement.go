package models

import "time"

// StockMovement is one entry in the append-only stock audit log. It is
// never updated or deleted, and never reconciled against the variant's
// quantity column; the two are maintained independently and can drift.
type StockMovement struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	VariantID  int64     `gorm:"column:produto_marca_id;not null"`
	Type       string    `gorm:"column:tipo;not null"`
	Quantity   int       `gorm:"column:quantidade;not null"`
	OccurredAt time.Time `gorm:"column:data_hora;autoCreateTime"`
	Reason     *string   `gorm:"column:motivo"`
}

func (StockMovement) TableName() string { return "historico_movimentacao" }
