package models

import "time"

// Способы оплаты, доступные на checkout
const (
	PaymentMethodPix  = "pix"
	PaymentMethodCard = "card"
)

// Типы позиций заказа
const (
	ItemTypeAccessory   = "accessory"
	ItemTypeReservation = "reservation"
)

// Order представляет заказ, созданный при оформлении корзины.
// Создаётся в статусе pending; статус и PaymentID меняет только
// обработчик вебхука платёжного провайдера.
type Order struct {
	ID             string       `json:"id"`
	UserID         int64        `json:"user_id"`
	TotalAmount    float64      `json:"total_amount"`
	Status         OrderStatus  `json:"status"`
	PaymentMethod  string       `json:"payment_method"`
	PaymentID      *string      `json:"payment_id,omitempty"`
	IdempotencyKey string       `json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Items          []*OrderItem `json:"items,omitempty"`
}

// OrderItem представляет позицию заказа. Цена фиксируется на момент
// создания заказа и после этого не меняется.
type OrderItem struct {
	ID          int64     `json:"id"`
	OrderID     string    `json:"order_id"`
	ItemType    string    `json:"item_type"` // accessory или reservation
	ProductID   *string   `json:"product_id,omitempty"`
	AccessoryID *string   `json:"accessory_id,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
}
