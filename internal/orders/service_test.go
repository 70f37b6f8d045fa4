package orders

import (
	"context"
	"testing"

	pkgerrors "github.com/arvoredo/arvoredo-pos/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequiresCustomer(t *testing.T) {
	client := setupOrdersTestDB(t)
	svc, err := NewService(NewRepository(client.DB()), client)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 0)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestAddLineItemComputesTotals(t *testing.T) {
	client := setupOrdersTestDB(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "Maria")
	arroz := mustCreateVariant(t, client, "Arroz", "Tio João", "ARZ-1", "12.50")
	feijao := mustCreateVariant(t, client, "Feijão", "Kicaldo", "FEI-1", "6.25")

	order, err := svc.Create(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, order.Total.IsZero())

	item, err := svc.AddLineItem(ctx, AddLineItemInput{
		OrderID:   order.ID,
		VariantID: arroz.ID,
		Quantity:  2,
		UnitPrice: arroz.UnitPrice,
	})
	require.NoError(t, err)
	assert.True(t, item.Subtotal.Equal(decimal.RequireFromString("25.00")),
		"got %s", item.Subtotal)

	_, err = svc.AddLineItem(ctx, AddLineItemInput{
		OrderID:   order.ID,
		VariantID: feijao.ID,
		Quantity:  2,
		UnitPrice: feijao.UnitPrice,
	})
	require.NoError(t, err)

	saved, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, saved.Total.Equal(decimal.RequireFromString("37.50")),
		"got %s", saved.Total)
}

func TestRemoveLineItemRecomputesTotal(t *testing.T) {
	client := setupOrdersTestDB(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "João")
	variant := mustCreateVariant(t, client, "Café", "Pilão", "CAF-1", "18.00")

	order, err := svc.Create(ctx, customer.ID)
	require.NoError(t, err)

	keep, err := svc.AddLineItem(ctx, AddLineItemInput{
		OrderID:   order.ID,
		VariantID: variant.ID,
		Quantity:  1,
		UnitPrice: variant.UnitPrice,
	})
	require.NoError(t, err)

	drop, err := svc.AddLineItem(ctx, AddLineItemInput{
		OrderID:   order.ID,
		VariantID: variant.ID,
		Quantity:  3,
		UnitPrice: variant.UnitPrice,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveLineItem(ctx, drop.ID))

	saved, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, saved.Total.Equal(keep.Subtotal), "got %s", saved.Total)

	items, err := svc.ListItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)
}

func TestUnitPriceIsASnapshot(t *testing.T) {
	client := setupOrdersTestDB(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "Ana")
	variant := mustCreateVariant(t, client, "Leite", "Itambé", "LEI-1", "5.00")

	order, err := svc.Create(ctx, customer.ID)
	require.NoError(t, err)

	_, err = svc.AddLineItem(ctx, AddLineItemInput{
		OrderID:   order.ID,
		VariantID: variant.ID,
		Quantity:  2,
		UnitPrice: variant.UnitPrice,
	})
	require.NoError(t, err)

	// Raise the catalog price after the sale.
	require.NoError(t, client.DB().
		Exec("UPDATE produto_marcas SET preco_unitario = ? WHERE id = ?", "9.99", variant.ID).
		Error)

	items, err := svc.ListItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("5.00")),
		"got %s", items[0].UnitPrice)
}

func TestListSalesJoinsEverything(t *testing.T) {
	client := setupOrdersTestDB(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "Maria")
	variant := mustCreateVariant(t, client, "Arroz", "Tio João", "ARZ-1", "12.50")

	order, err := svc.Create(ctx, customer.ID)
	require.NoError(t, err)
	_, err = svc.AddLineItem(ctx, AddLineItemInput{
		OrderID:   order.ID,
		VariantID: variant.ID,
		Quantity:  2,
		UnitPrice: variant.UnitPrice,
		Note:      "sem pressa",
	})
	require.NoError(t, err)

	sales, err := svc.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "Maria", sales[0].CustomerName)
	assert.Equal(t, "Arroz", sales[0].ProductName)
	assert.Equal(t, "Tio João", sales[0].Brand)
	assert.Equal(t, "pendente", sales[0].Status)
	assert.True(t, sales[0].Subtotal.Equal(decimal.RequireFromString("25.00")))
}

func TestListForCustomerNewestFirst(t *testing.T) {
	client := setupOrdersTestDB(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	ctx := context.Background()

	customer := mustCreateCustomer(t, client, "José")
	other := mustCreateCustomer(t, client, "Outra")

	first, err := svc.Create(ctx, customer.ID)
	require.NoError(t, err)
	second, err := svc.Create(ctx, customer.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, other.ID)
	require.NoError(t, err)

	list, err := svc.ListForCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
