package models

import "time"

// Customer is a store customer. OnTab marks customers allowed to buy on
// credit; no balance or limit is tracked beyond the flag.
type Customer struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:nome;not null"`
	Nickname  *string   `gorm:"column:apelido"`
	TaxID     *string   `gorm:"column:cpf"`
	OnTab     bool      `gorm:"column:fiando;not null;default:false"`
	CreatedAt time.Time `gorm:"column:data_criacao;autoCreateTime"`
}

func (Customer) TableName() string { return "clientes" }
