package customers

import (
	"context"

	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for customer records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a customer repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns every customer, alphabetical by name.
func (r *repository) List(ctx context.Context) ([]models.Customer, error) {
	var rows []models.Customer
	if err := r.db.WithContext(ctx).Order("nome").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
