package models

import "time"

// Favorite представляет судно, добавленное пользователем в избранное
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
	Product   *Product  `json:"product,omitempty"` // заполняется через JOIN с таблицей products
}
