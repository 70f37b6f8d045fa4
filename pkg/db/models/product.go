package models

import "time"

// Product is a product family. Names are not unique at the schema level;
// grouping by name is a policy of the register flow, not of the store.
type Product struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:nome;not null"`
	Category  string    `gorm:"column:categoria;not null"`
	CreatedAt time.Time `gorm:"column:data_criacao;autoCreateTime"`
}

func (Product) TableName() string { return "produtos" }
