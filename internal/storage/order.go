package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nautimar/nautica-shop/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage описывает методы для работы с заказами и их позициями.
type OrderStorage interface {
	// CreateOrder вставляет новый заказ в статусе pending с использованием транзакции.
	CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error
	// CreateOrderItem вставляет позицию заказа с использованием транзакции.
	CreateOrderItem(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error
	// GetOrderByID возвращает заказ по идентификатору (без позиций).
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	// GetOrdersByUserID возвращает список заказов пользователя, новые первыми.
	GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error)
	// GetAllOrders возвращает все заказы (для админки), новые первыми.
	GetAllOrders(ctx context.Context) ([]*models.Order, error)
	// GetItemsByOrderID возвращает позиции указанного заказа.
	GetItemsByOrderID(ctx context.Context, orderID string) ([]*models.OrderItem, error)
	// UpdateOrderStatus обновляет статус и идентификатор платежа по id заказа.
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, paymentID string) error
}

// orderRepository — конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	query := `INSERT INTO orders (id, user_id, total_amount, status, payment_method, idempotency_key, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`
	_, err := tx.ExecContext(ctx, query,
		order.ID, order.UserID, order.TotalAmount, order.Status, order.PaymentMethod, order.IdempotencyKey)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *orderRepository) CreateOrderItem(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error {
	query := `INSERT INTO order_items (order_id, item_type, product_id, accessory_id, quantity, unit_price, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW())`
	_, err := tx.ExecContext(ctx, query,
		item.OrderID, item.ItemType, item.ProductID, item.AccessoryID, item.Quantity, item.UnitPrice)
	if err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT id, user_id, total_amount, status, payment_method, payment_id, created_at, updated_at
	          FROM orders WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
		&order.PaymentMethod, &order.PaymentID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	query := `SELECT id, user_id, total_amount, status, payment_method, payment_id, created_at, updated_at
	          FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) GetAllOrders(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT id, user_id, total_amount, status, payment_method, payment_id, created_at, updated_at
	          FROM orders ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
			&order.PaymentMethod, &order.PaymentID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetItemsByOrderID(ctx context.Context, orderID string) ([]*models.OrderItem, error) {
	query := `SELECT id, order_id, item_type, product_id, accessory_id, quantity, unit_price, created_at
	          FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ItemType, &item.ProductID,
			&item.AccessoryID, &item.Quantity, &item.UnitPrice, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, paymentID string) error {
	query := `UPDATE orders SET status = $1, payment_id = $2, updated_at = NOW() WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, paymentID, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
