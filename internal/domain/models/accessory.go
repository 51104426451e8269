package models

import "time"

// Accessory представляет аксессуар, доступный для покупки
type Accessory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
