package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/arvoredo/arvoredo-pos/pkg/config"
	"github.com/arvoredo/arvoredo-pos/pkg/db"
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
	`CREATE TABLE IF NOT EXISTS historico_movimentacao (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  produto_marca_id INTEGER NOT NULL,
  tipo TEXT NOT NULL,
  quantidade INTEGER NOT NULL,
  data_hora DATETIME,
  motivo TEXT
);`,
}

// setupCatalogTestDB opens a private in-memory store per test so counts and
// autoincrement ids never leak between tests.
func setupCatalogTestDB(t *testing.T) *db.Client {
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
