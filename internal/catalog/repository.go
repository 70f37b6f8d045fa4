package catalog

import (
	"context"
	"time"

	"github.com/arvoredo/arvoredo-pos/pkg/db"
	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	pkgerrors "github.com/arvoredo/arvoredo-pos/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository defines persistence for product families.
type ProductRepository interface {
	CreateProduct(context.Context, *models.Product) (*models.Product, error)
	FindProductByID(context.Context, int64) (*models.Product, error)
	FindProductByName(context.Context, string) (*models.Product, error)
	ListProductSummaries(context.Context) ([]ProductSummary, error)
	UpdateProduct(context.Context, *models.Product) error
	DeleteProduct(context.Context, int64) error
}

// VariantRepository defines persistence for brand variants.
type VariantRepository interface {
	CreateVariant(context.Context, *models.BrandVariant) (*models.BrandVariant, error)
	FindVariantByID(context.Context, int64) (*models.BrandVariant, error)
	ListVariantsByProduct(context.Context, int64) ([]models.BrandVariant, error)
	SetQuantity(ctx context.Context, variantID int64, quantity int) error
	SetPrice(ctx context.Context, variantID int64, price decimal.Decimal) error
	SetExpiry(ctx context.Context, variantID int64, expiresAt *time.Time) error
	DeleteVariant(context.Context, int64) error
	DeleteVariantsByProduct(context.Context, int64) error
}

// MovementRepository appends to and reads the stock audit log.
type MovementRepository interface {
	CreateMovement(context.Context, *models.StockMovement) (*models.StockMovement, error)
	ListMovementsByVariant(context.Context, int64) ([]models.StockMovement, error)
}

const productSummaryQuery = `
SELECT p.id,
       p.nome AS name,
       p.categoria AS category,
       p.data_criacao AS created_at,
       COUNT(pm.id) AS variant_count,
       COALESCE(SUM(pm.quantidade), 0) AS total_quantity,
       COALESCE(SUM(pm.quantidade * pm.preco_unitario), 0) AS total_value
FROM produtos p
LEFT JOIN produto_marcas pm ON pm.produto_id = p.id
GROUP BY p.id
ORDER BY p.nome
`

// Repository wires together all catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts a new product family row. It never deduplicates by
// name; that policy lives in the service.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindProductByID loads a product family by id.
func (r *Repository) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductByName loads the first product whose name matches
// case-insensitively.
func (r *Repository) FindProductByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(nome) = LOWER(?)", name).
		Order("id").
		First(&product).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProductSummaries returns every product family with variant aggregates,
// ordered by name.
func (r *Repository) ListProductSummaries(ctx context.Context) ([]ProductSummary, error) {
	var rows []productSummaryRecord
	if err := r.db.WithContext(ctx).Raw(productSummaryQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]ProductSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, row.toSummary())
	}
	return summaries, nil
}

// UpdateProduct persists the mutable product fields.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// DeleteProduct removes a product row by id. Variants are NOT cascaded;
// callers that care must delete them first.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// CreateVariant inserts a brand variant. A duplicate code surfaces as a
// conflict; the row is not inserted.
func (r *Repository) CreateVariant(ctx context.Context, variant *models.BrandVariant) (*models.BrandVariant, error) {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		if db.IsUniqueViolation(err, "produto_marcas.codigo") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "código já existe")
		}
		return nil, err
	}
	return variant, nil
}

// FindVariantByID loads a brand variant by id.
func (r *Repository) FindVariantByID(ctx context.Context, id int64) (*models.BrandVariant, error) {
	var variant models.BrandVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// ListVariantsByProduct lists a family's variants ordered by brand.
func (r *Repository) ListVariantsByProduct(ctx context.Context, productID int64) ([]models.BrandVariant, error) {
	var rows []models.BrandVariant
	err := r.db.WithContext(ctx).
		Where("produto_id = ?", productID).
		Order("marca").
		Find(&rows).
		Error
	return rows, err
}

// SetQuantity writes an absolute stock count. Callers wanting a relative
// adjustment must read-modify-write.
func (r *Repository) SetQuantity(ctx context.Context, variantID int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.BrandVariant{}).
		Where("id = ?", variantID).
		Update("quantidade", quantity).
		Error
}

// SetPrice updates the variant's unit price. Past order items keep their
// snapshot.
func (r *Repository) SetPrice(ctx context.Context, variantID int64, price decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.BrandVariant{}).
		Where("id = ?", variantID).
		Update("preco_unitario", price).
		Error
}

// SetExpiry updates the variant's expiry date; nil clears it.
func (r *Repository) SetExpiry(ctx context.Context, variantID int64, expiresAt *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.BrandVariant{}).
		Where("id = ?", variantID).
		Update("data_validade", expiresAt).
		Error
}

// DeleteVariant removes a variant unconditionally; it does not check for
// order items referencing it.
func (r *Repository) DeleteVariant(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BrandVariant{}).Error
}

// DeleteVariantsByProduct removes every variant of a family. Used by the
// product delete flow before the product row goes.
func (r *Repository) DeleteVariantsByProduct(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("produto_id = ?", productID).
		Delete(&models.BrandVariant{}).
		Error
}

// CreateMovement appends one audit entry.
func (r *Repository) CreateMovement(ctx context.Context, movement *models.StockMovement) (*models.StockMovement, error) {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		return nil, err
	}
	return movement, nil
}

// ListMovementsByVariant lists the audit log for a variant, newest first.
func (r *Repository) ListMovementsByVariant(ctx context.Context, variantID int64) ([]models.StockMovement, error) {
	var rows []models.StockMovement
	err := r.db.WithContext(ctx).
		Where("produto_marca_id = ?", variantID).
		Order("data_hora DESC").
		Order("id DESC").
		Find(&rows).
		Error
	return rows, err
}

type productSummaryRecord struct {
	ID            int64
	Name          string
	Category      string
	CreatedAt     time.Time
	VariantCount  int
	TotalQuantity int
	TotalValue    decimal.Decimal
}

func (r productSummaryRecord) toSummary() ProductSummary {
	return ProductSummary{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		CreatedAt:     r.CreatedAt,
		VariantCount:  r.VariantCount,
		TotalQuantity: r.TotalQuantity,
		TotalValue:    r.TotalValue,
	}
}
