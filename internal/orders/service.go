package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arvoredo/arvoredo-pos/pkg/db"
	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	"github.com/arvoredo/arvoredo-pos/pkg/enums"
	pkgerrors "github.com/arvoredo/arvoredo-pos/pkg/errors"
	"github.com/arvoredo/arvoredo-pos/pkg/validate"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes order recording operations.
type Service interface {
	Create(ctx context.Context, customerID int64) (*models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	AddLineItem(ctx context.Context, input AddLineItemInput) (*models.OrderItem, error)
	RemoveLineItem(ctx context.Context, itemID int64) error
	ListForCustomer(ctx context.Context, customerID int64) ([]models.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]OrderItemDetail, error)
	ListSales(ctx context.Context) ([]SaleRecord, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an order service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// Create opens a pending order with a zero total.
func (s *service) Create(ctx context.Context, customerID int64) (*models.Order, error) {
	if customerID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cliente é obrigatório")
	}
	order := &models.Order{
		CustomerID: customerID,
		Status:     enums.OrderStatusPending,
		Total:      decimal.Zero,
	}
	return s.repo.CreateOrder(ctx, order)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pedido não encontrado")
		}
		return nil, err
	}
	return order, nil
}

// AddLineItem snapshots the unit price, computes the subtotal, inserts the
// line, and recomputes the order total from all current lines — one
// transaction, so the total never disagrees with the lines it covers.
func (s *service) AddLineItem(ctx context.Context, input AddLineItemInput) (*models.OrderItem, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	item := &models.OrderItem{
		OrderID:   input.OrderID,
		VariantID: input.VariantID,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Subtotal:  input.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
	}
	if note := strings.TrimSpace(input.Note); note != "" {
		item.Note = &note
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateItem(ctx, item); err != nil {
			return err
		}
		return recomputeTotal(ctx, repo, input.OrderID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveLineItem deletes a line and recomputes the order total. The
// original store skipped the recompute on delete and let the total go
// stale; totals here track every mutation.
func (s *service) RemoveLineItem(ctx context.Context, itemID int64) error {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item não encontrado")
		}
		return err
	}

	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		return recomputeTotal(ctx, repo, item.OrderID)
	})
}

func (s *service) ListForCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	return s.repo.ListOrdersByCustomer(ctx, customerID)
}

func (s *service) ListItems(ctx context.Context, orderID int64) ([]OrderItemDetail, error) {
	return s.repo.ListItemDetails(ctx, orderID)
}

func (s *service) ListSales(ctx context.Context) ([]SaleRecord, error) {
	return s.repo.ListSales(ctx)
}

func recomputeTotal(ctx context.Context, repo *Repository, orderID int64) error {
	total, err := repo.SumItemSubtotals(ctx, orderID)
	if err != nil {
		return err
	}
	return repo.SetOrderTotal(ctx, orderID, total)
}
