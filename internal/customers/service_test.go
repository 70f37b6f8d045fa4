package customers

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/arvoredo/arvoredo-pos/pkg/config"
	"github.com/arvoredo/arvoredo-pos/pkg/db"
	pkgerrors "github.com/arvoredo/arvoredo-pos/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCustomersTestDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.DBConfig{Path: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})

	schema := `CREATE TABLE IF NOT EXISTS clientes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  apelido TEXT,
  cpf TEXT,
  fiando BOOLEAN NOT NULL DEFAULT 0,
  data_criacao DATETIME
);`
	require.NoError(t, client.DB().Exec(schema).Error)
	return client
}

func newCustomerService(t *testing.T) Service {
	t.Helper()
	client := setupCustomersTestDB(t)
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	return svc
}

func TestCreateTrimsAndNullsOptionals(t *testing.T) {
	svc := newCustomerService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, CreateCustomerInput{
		Name:     "  Maria da Silva  ",
		Nickname: "   ",
		TaxID:    " 123.456.789-00 ",
		OnTab:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria da Silva", customer.Name)
	assert.Nil(t, customer.Nickname)
	require.NotNil(t, customer.TaxID)
	assert.Equal(t, "123.456.789-00", *customer.TaxID)
	assert.True(t, customer.OnTab)
}

func TestCreateRequiresName(t *testing.T) {
	svc := newCustomerService(t)

	_, err := svc.Create(context.Background(), CreateCustomerInput{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGetMissingCustomer(t *testing.T) {
	svc := newCustomerService(t)

	_, err := svc.Get(context.Background(), 42)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListAlphabetical(t *testing.T) {
	svc := newCustomerService(t)
	ctx := context.Background()

	for _, name := range []string{"Zélia", "Antônio", "Marcos"} {
		_, err := svc.Create(ctx, CreateCustomerInput{Name: name})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Antônio", list[0].Name)
	assert.Equal(t, "Marcos", list[1].Name)
	assert.Equal(t, "Zélia", list[2].Name)
}
