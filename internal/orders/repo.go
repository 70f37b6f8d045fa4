package orders

import (
	"context"
	"database/sql"

	"github.com/arvoredo/arvoredo-pos/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const itemDetailQuery = `
SELECT pi.id,
       pi.pedido_id AS order_id,
       pi.produto_marca_id AS variant_id,
       pi.quantidade AS quantity,
       pi.preco_unitario AS unit_price,
       pi.subtotal,
       pi.observacao AS note,
       pm.marca AS brand,
       p.nome AS product_name
FROM pedido_itens pi
JOIN produto_marcas pm ON pm.id = pi.produto_marca_id
JOIN produtos p ON p.id = pm.produto_id
WHERE pi.pedido_id = ?
ORDER BY pi.id
`

const salesQuery = `
SELECT pi.id AS item_id,
       pi.pedido_id AS order_id,
       pi.quantidade AS quantity,
       pi.preco_unitario AS unit_price,
       pi.subtotal,
       p.nome AS product_name,
       pm.marca AS brand,
       c.nome AS customer_name,
       pe.data_hora AS placed_at,
       pe.status
FROM pedido_itens pi
JOIN produto_marcas pm ON pm.id = pi.produto_marca_id
JOIN produtos p ON p.id = pm.produto_id
JOIN pedidos pe ON pe.id = pi.pedido_id
JOIN clientes c ON c.id = pe.cliente_id
ORDER BY pe.data_hora DESC, pi.id DESC
`

// Repository wires together order and line item persistence.
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

// CreateOrder inserts a new order row.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindOrderByID loads an order by id.
func (r *Repository) FindOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrdersByCustomer lists a customer's orders, newest first.
func (r *Repository) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", customerID).
		Order("data_hora DESC").
		Order("id DESC").
		Find(&rows).
		Error
	return rows, err
}

// CreateItem inserts one order line.
func (r *Repository) CreateItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindItemByID loads one order line by id.
func (r *Repository) FindItemByID(ctx context.Context, id int64) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes one order line by id.
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.OrderItem{}).Error
}

// SumItemSubtotals re-aggregates the order's current line items. O(n) per
// call; order sizes here are small.
func (r *Repository) SumItemSubtotals(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(subtotal), 0) FROM pedido_itens WHERE pedido_id = ?", orderID).
		Scan(&total).
		Error
	return total, err
}

// SetOrderTotal persists the denormalized total.
func (r *Repository) SetOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total", total).
		Error
}

// ListItemDetails lists an order's lines joined with brand and product name.
func (r *Repository) ListItemDetails(ctx context.Context, orderID int64) ([]OrderItemDetail, error) {
	var records []itemDetailRecord
	if err := r.db.WithContext(ctx).Raw(itemDetailQuery, orderID).Scan(&records).Error; err != nil {
		return nil, err
	}

	details := make([]OrderItemDetail, 0, len(records))
	for _, record := range records {
		details = append(details, record.toDetail())
	}
	return details, nil
}

// ListSales returns the global sales report, newest order first.
func (r *Repository) ListSales(ctx context.Context) ([]SaleRecord, error) {
	var rows []SaleRecord
	if err := r.db.WithContext(ctx).Raw(salesQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type itemDetailRecord struct {
	ID          int64
	OrderID     int64
	VariantID   int64
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Note        sql.NullString
	Brand       string
	ProductName string
}

func (r itemDetailRecord) toDetail() OrderItemDetail {
	detail := OrderItemDetail{
		ID:          r.ID,
		OrderID:     r.OrderID,
		VariantID:   r.VariantID,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Subtotal:    r.Subtotal,
		Brand:       r.Brand,
		ProductName: r.ProductName,
	}
	if r.Note.Valid {
		note := r.Note.String
		detail.Note = &note
	}
	return detail
}
