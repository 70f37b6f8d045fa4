package migrate

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpCreatesStoreTables(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// One connection, or each pooled conn would see its own empty :memory: db.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, Up(context.Background(), db))

	for _, table := range []string{
		"produtos",
		"produto_marcas",
		"historico_movimentacao",
		"clientes",
		"pedidos",
		"pedido_itens",
	} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		assert.NoErrorf(t, err, "table %s missing", table)
	}

	// Re-running is a no-op; applied versions are skipped.
	require.NoError(t, Up(context.Background(), db))
}

func TestRunRequiresDB(t *testing.T) {
	err := Run(context.Background(), nil, "up")
	assert.Error(t, err)
}
