package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	pkgerrors "github.com/arvoredo/arvoredo-pos/pkg/errors"
	"github.com/arvoredo/arvoredo-pos/pkg/validate"
	"gorm.io/gorm"
)

// Service exposes customer record operations.
type Service interface {
	Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error)
	Get(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

// CreateCustomerInput holds the validated payload to create a customer.
// OnTab marks customers allowed to buy on credit.
type CreateCustomerInput struct {
	Name     string `json:"name" validate:"required"`
	Nickname string `json:"nickname"`
	TaxID    string `json:"tax_id"`
	OnTab    bool   `json:"on_tab"`
}

type service struct {
	repo Repository
}

// NewService wires a customer service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:  strings.TrimSpace(input.Name),
		OnTab: input.OnTab,
	}
	if nickname := strings.TrimSpace(input.Nickname); nickname != "" {
		customer.Nickname = &nickname
	}
	if taxID := strings.TrimSpace(input.TaxID); taxID != "" {
		customer.TaxID = &taxID
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting customer")
	}
	return customer, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cliente não encontrado")
		}
		return nil, err
	}
	return customer, nil
}

func (s *service) List(ctx context.Context) ([]models.Customer, error) {
	return s.repo.List(ctx)
}
