package models

// CartEntry — позиция корзины, приходит от клиента при оформлении заказа.
// Для type == "reservation" заполняются ProductID и Mode,
// для type == "accessory" — ID аксессуара и Quantity.
// Цена от клиента не принимается на веру: сервер пересчитывает её по каталогу.
type CartEntry struct {
	Type      string  `json:"type" validate:"required,oneof=accessory reservation"`
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Quantity  int     `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	ProductID string  `json:"product_id,omitempty"`
	Mode      string  `json:"mode,omitempty" validate:"omitempty,oneof=fixed percent"`
}
