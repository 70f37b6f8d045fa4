package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/arvoredo/arvoredo-pos/pkg/config"
	"github.com/arvoredo/arvoredo-pos/pkg/db"
	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var storeSchema = []string{
	`CREATE TABLE IF NOT EXISTS produtos (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  categoria TEXT NOT NULL,
  data_criacao DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS produto_marcas (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  produto_id INTEGER NOT NULL,
  codigo TEXT UNIQUE,
  marca TEXT NOT NULL,
  preco_unitario NUMERIC NOT NULL,
  quantidade INTEGER NOT NULL DEFAULT 0,
  data_validade DATETIME,
  data_cadastro DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS clientes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  apelido TEXT,
  cpf TEXT,
  fiando BOOLEAN NOT NULL DEFAULT 0,
  data_criacao DATETIME
);`,
	`CREATE TABLE IF NOT EXISTS pedidos (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cliente_id INTEGER NOT NULL,
  data_hora DATETIME,
  status TEXT NOT NULL DEFAULT 'pendente',
  total NUMERIC NOT NULL DEFAULT 0
);`,
	`CREATE TABLE IF NOT EXISTS pedido_itens (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  pedido_id INTEGER NOT NULL,
  produto_marca_id INTEGER NOT NULL,
  quantidade INTEGER NOT NULL,
  preco_unitario NUMERIC NOT NULL,
  subtotal NUMERIC NOT NULL,
  observacao TEXT
);`,
}

func setupOrdersTestDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.DBConfig{Path: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})

	for _, stmt := range storeSchema {
		require.NoError(t, client.DB().Exec(stmt).Error)
	}
	return client
}

func mustCreateCustomer(t *testing.T, client *db.Client, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: name}
	require.NoError(t, client.DB().Create(customer).Error)
	return customer
}

func mustCreateVariant(t *testing.T, client *db.Client, product, brand, code, price string) *models.BrandVariant {
	t.Helper()

	family := &models.Product{Name: product, Category: "Mercearia"}
	require.NoError(t, client.DB().Create(family).Error)

	variant := &models.BrandVariant{
		ProductID: family.ID,
		Code:      code,
		Brand:     brand,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  10,
	}
	require.NoError(t, client.DB().Create(variant).Error)
	return variant
}
