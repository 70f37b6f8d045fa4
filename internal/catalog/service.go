package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arvoredo/arvoredo-pos/pkg/db"
	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	"github.com/arvoredo/arvoredo-pos/pkg/enums"
	pkgerrors "github.com/arvoredo/arvoredo-pos/pkg/errors"
	"github.com/arvoredo/arvoredo-pos/pkg/validate"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes the catalog operations the shell screens consume.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	FindOrCreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, bool, error)
	ListProducts(ctx context.Context) ([]ProductSummary, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	DeleteProductWithVariants(ctx context.Context, id int64) error

	CreateVariant(ctx context.Context, input CreateVariantInput) (*models.BrandVariant, error)
	GetVariant(ctx context.Context, id int64) (*models.BrandVariant, error)
	ListVariants(ctx context.Context, productID int64) ([]models.BrandVariant, error)
	SetQuantity(ctx context.Context, variantID int64, quantity int) error
	UpdatePrice(ctx context.Context, variantID int64, price decimal.Decimal) error
	UpdateExpiry(ctx context.Context, variantID int64, expiresAt *time.Time) error
	DeleteVariant(ctx context.Context, variantID int64) error

	RecordMovement(ctx context.Context, input RecordMovementInput) (*models.StockMovement, error)
	ListMovements(ctx context.Context, variantID int64) ([]models.StockMovement, error)

	RegisterEntry(ctx context.Context, input RegisterEntryInput) (*RegisterEntryResult, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateProduct always inserts a new family row, even when the name is
// already taken. Screens that want name reuse call FindOrCreateProduct.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	product := &models.Product{
		Name:     strings.TrimSpace(input.Name),
		Category: strings.TrimSpace(input.Category),
	}
	return s.repo.CreateProduct(ctx, product)
}

// FindOrCreateProduct reuses an existing family by case-insensitive name
// match, creating one only when no match exists. The second return value
// reports whether an existing family was reused.
func (s *service) FindOrCreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, bool, error) {
	if err := validate.Struct(input); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindProductByName(ctx, strings.TrimSpace(input.Name))
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up product by name")
	}

	product, err := s.CreateProduct(ctx, input)
	if err != nil {
		return nil, false, err
	}
	return product, false, nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductSummary, error) {
	return s.repo.ListProductSummaries(ctx)
}

func (s *service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "produto não encontrado")
		}
		return nil, err
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "nome do produto é obrigatório")
		}
		product.Name = name
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes only the family row. Any variants stay behind; this
// is the store's documented no-cascade behavior.
func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}

// DeleteProductWithVariants deletes a family's variants and then the family
// itself inside one transaction, mirroring the edit screen's delete flow.
func (s *service) DeleteProductWithVariants(ctx context.Context, id int64) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteVariantsByProduct(ctx, id); err != nil {
			return err
		}
		return repo.DeleteProduct(ctx, id)
	})
}

func (s *service) CreateVariant(ctx context.Context, input CreateVariantInput) (*models.BrandVariant, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = fmt.Sprintf("PROD%d", input.ProductID)
	}

	variant := &models.BrandVariant{
		ProductID: input.ProductID,
		Code:      code,
		Brand:     strings.TrimSpace(input.Brand),
		UnitPrice: input.UnitPrice,
		ExpiresAt: input.ExpiresAt,
	}
	return s.repo.CreateVariant(ctx, variant)
}

func (s *service) GetVariant(ctx context.Context, id int64) (*models.BrandVariant, error) {
	variant, err := s.repo.FindVariantByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "marca não encontrada")
		}
		return nil, err
	}
	return variant, nil
}

func (s *service) ListVariants(ctx context.Context, productID int64) ([]models.BrandVariant, error) {
	return s.repo.ListVariantsByProduct(ctx, productID)
}

func (s *service) SetQuantity(ctx context.Context, variantID int64, quantity int) error {
	return s.repo.SetQuantity(ctx, variantID, quantity)
}

func (s *service) UpdatePrice(ctx context.Context, variantID int64, price decimal.Decimal) error {
	return s.repo.SetPrice(ctx, variantID, price)
}

func (s *service) UpdateExpiry(ctx context.Context, variantID int64, expiresAt *time.Time) error {
	return s.repo.SetExpiry(ctx, variantID, expiresAt)
}

func (s *service) DeleteVariant(ctx context.Context, variantID int64) error {
	return s.repo.DeleteVariant(ctx, variantID)
}

// RecordMovement appends to the audit log. It deliberately does not touch
// the variant's quantity; the two are maintained independently.
func (s *service) RecordMovement(ctx context.Context, input RecordMovementInput) (*models.StockMovement, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	movement := &models.StockMovement{
		VariantID: input.VariantID,
		Type:      input.Type,
		Quantity:  input.Quantity,
	}
	if reason := strings.TrimSpace(input.Reason); reason != "" {
		movement.Reason = &reason
	}
	return s.repo.CreateMovement(ctx, movement)
}

func (s *service) ListMovements(ctx context.Context, variantID int64) ([]models.StockMovement, error) {
	return s.repo.ListMovementsByVariant(ctx, variantID)
}

// RegisterEntry runs the register screen's flow atomically: reuse or create
// the family, create the variant, set the initial quantity, and log an
// intake movement. A duplicate code rolls the whole entry back.
func (s *service) RegisterEntry(ctx context.Context, input RegisterEntryInput) (*RegisterEntryResult, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var result RegisterEntryResult
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := repo.FindProductByName(ctx, strings.TrimSpace(input.Name))
		switch {
		case err == nil:
			result.ReusedProduct = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			product, err = repo.CreateProduct(ctx, &models.Product{
				Name:     strings.TrimSpace(input.Name),
				Category: strings.TrimSpace(input.Category),
			})
			if err != nil {
				return err
			}
		default:
			return err
		}
		result.ProductID = product.ID

		code := strings.TrimSpace(input.Code)
		if code == "" {
			code = fmt.Sprintf("PROD%d", product.ID)
		}
		variant, err := repo.CreateVariant(ctx, &models.BrandVariant{
			ProductID: product.ID,
			Code:      code,
			Brand:     strings.TrimSpace(input.Brand),
			UnitPrice: input.UnitPrice,
			Quantity:  input.Quantity,
			ExpiresAt: input.ExpiresAt,
		})
		if err != nil {
			return err
		}
		result.VariantID = variant.ID

		_, err = repo.CreateMovement(ctx, &models.StockMovement{
			VariantID: variant.ID,
			Type:      string(enums.MovementTypeIn),
			Quantity:  input.Quantity,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
