package models

import "time"

// Reservation представляет бронирование судна с задатком,
// привязанное к породившему его заказу
type Reservation struct {
	ID        string            `json:"id"`
	UserID    int64             `json:"user_id"`
	ProductID string            `json:"product_id"`
	Mode      string            `json:"mode"` // fixed или percent
	Amount    float64           `json:"amount"`
	Status    ReservationStatus `json:"status"`
	OrderID   string            `json:"order_id"`
	PaymentID *string           `json:"payment_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
