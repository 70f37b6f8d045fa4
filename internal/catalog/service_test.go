package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	pkgerrors "github.com/arvoredo/arvoredo-pos/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) (Service, *Repository) {
	t.Helper()
	client := setupCatalogTestDB(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	return svc, repo
}

func TestRegisterEntryCreatesEverything(t *testing.T) {
	svc, repo := newCatalogService(t)
	ctx := context.Background()

	result, err := svc.RegisterEntry(ctx, RegisterEntryInput{
		Name:      "Farinha",
		Category:  "Mercearia",
		Brand:     "Dona Benta",
		UnitPrice: decimal.RequireFromString("6.40"),
		Quantity:  8,
	})
	require.NoError(t, err)
	assert.False(t, result.ReusedProduct)

	variant, err := repo.FindVariantByID(ctx, result.VariantID)
	require.NoError(t, err)
	assert.Equal(t, result.ProductID, variant.ProductID)
	assert.Equal(t, 8, variant.Quantity)
	// Blank code falls back to the generated one.
	assert.Equal(t, "PROD1", variant.Code)

	movements, err := repo.ListMovementsByVariant(ctx, result.VariantID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "entrada", movements[0].Type)
	assert.Equal(t, 8, movements[0].Quantity)
}

func TestRegisterEntryReusesFamilyCaseInsensitive(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	first, err := svc.RegisterEntry(ctx, RegisterEntryInput{
		Name:      "Farinha",
		Category:  "Mercearia",
		Brand:     "Dona Benta",
		Code:      "FAR-1",
		UnitPrice: decimal.RequireFromString("6.40"),
	})
	require.NoError(t, err)

	second, err := svc.RegisterEntry(ctx, RegisterEntryInput{
		Name:      "FARINHA",
		Category:  "Outra Categoria",
		Brand:     "Renata",
		Code:      "FAR-2",
		UnitPrice: decimal.RequireFromString("5.90"),
	})
	require.NoError(t, err)

	assert.True(t, second.ReusedProduct)
	assert.Equal(t, first.ProductID, second.ProductID)

	summaries, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].VariantCount)
}

func TestRegisterEntryRollsBackOnDuplicateCode(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.RegisterEntry(ctx, RegisterEntryInput{
		Name:      "Farinha",
		Category:  "Mercearia",
		Brand:     "Dona Benta",
		Code:      "FAR-1",
		UnitPrice: decimal.RequireFromString("6.40"),
	})
	require.NoError(t, err)

	_, err = svc.RegisterEntry(ctx, RegisterEntryInput{
		Name:      "Macarrão",
		Category:  "Mercearia",
		Brand:     "Barilla",
		Code:      "FAR-1",
		UnitPrice: decimal.RequireFromString("9.90"),
	})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// The whole entry rolled back: no second family was created.
	summaries, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Farinha", summaries[0].Name)
}

func TestFindOrCreateProduct(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	created, reused, err := svc.FindOrCreateProduct(ctx, CreateProductInput{
		Name:     "Sabão",
		Category: "Limpeza",
	})
	require.NoError(t, err)
	assert.False(t, reused)

	found, reused, err := svc.FindOrCreateProduct(ctx, CreateProductInput{
		Name:     "sabão",
		Category: "Outra",
	})
	require.NoError(t, err)
	assert.True(t, reused)
	assert.Equal(t, created.ID, found.ID)
	// The original category stands; the second input never overwrites it.
	assert.Equal(t, "Limpeza", found.Category)
}

func TestCreateProductAlwaysInserts(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Sabão", Category: "Limpeza"})
	require.NoError(t, err)
	second, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Sabão", Category: "Limpeza"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDeleteProductWithVariants(t *testing.T) {
	svc, repo := newCatalogService(t)
	ctx := context.Background()

	result, err := svc.RegisterEntry(ctx, RegisterEntryInput{
		Name:      "Óleo",
		Category:  "Mercearia",
		Brand:     "Liza",
		Code:      "OLE-1",
		UnitPrice: decimal.RequireFromString("7.80"),
		Quantity:  5,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProductWithVariants(ctx, result.ProductID))

	variants, err := repo.ListVariantsByProduct(ctx, result.ProductID)
	require.NoError(t, err)
	assert.Empty(t, variants)

	_, err = svc.GetProduct(ctx, result.ProductID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateProductAndExpiry(t *testing.T) {
	svc, _ := newCatalogService(t)
	ctx := context.Background()

	result, err := svc.RegisterEntry(ctx, RegisterEntryInput{
		Name:      "Mel",
		Category:  "Mercearia",
		Brand:     "Apis",
		Code:      "MEL-1",
		UnitPrice: decimal.RequireFromString("21.00"),
	})
	require.NoError(t, err)

	name := "Mel Silvestre"
	updated, err := svc.UpdateProduct(ctx, result.ProductID, UpdateProductInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Mel Silvestre", updated.Name)
	assert.Equal(t, "Mercearia", updated.Category)

	expiry := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.UpdateExpiry(ctx, result.VariantID, &expiry))

	variant, err := svc.GetVariant(ctx, result.VariantID)
	require.NoError(t, err)
	require.NotNil(t, variant.ExpiresAt)
	assert.True(t, expiry.Equal(*variant.ExpiresAt))

	require.NoError(t, svc.UpdateExpiry(ctx, result.VariantID, nil))
	variant, err = svc.GetVariant(ctx, result.VariantID)
	require.NoError(t, err)
	assert.Nil(t, variant.ExpiresAt)
}

func TestRecordMovementLeavesQuantityAlone(t *testing.T) {
	svc, repo := newCatalogService(t)
	ctx := context.Background()

	product, err := repo.CreateProduct(ctx, &models.Product{Name: "Vinagre", Category: "Mercearia"})
	require.NoError(t, err)
	variant, err := repo.CreateVariant(ctx, &models.BrandVariant{
		ProductID: product.ID,
		Code:      "VIN-1",
		Brand:     "Castelo",
		UnitPrice: decimal.RequireFromString("3.10"),
		Quantity:  7,
	})
	require.NoError(t, err)

	_, err = svc.RecordMovement(ctx, RecordMovementInput{
		VariantID: variant.ID,
		Type:      "saida",
		Quantity:  5,
		Reason:    "perda",
	})
	require.NoError(t, err)

	reloaded, err := repo.FindVariantByID(ctx, variant.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Quantity)
}
