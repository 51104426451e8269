package models

// OrderStatus — статус заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ReservationStatus — статус бронирования, меняется вместе со статусом заказа
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Допустимые переходы статуса заказа: paid и cancelled — терминальные,
// повторные и противоречащие уведомления провайдера их не перезаписывают
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:   {OrderStatusPaid: true, OrderStatusCancelled: true},
	OrderStatusPaid:      {},
	OrderStatusCancelled: {},
}

// CanTransition сообщает, разрешён ли переход заказа из from в to
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// ReservationStatusFor возвращает статус брони, соответствующий статусу заказа
func ReservationStatusFor(status OrderStatus) ReservationStatus {
	switch status {
	case OrderStatusPaid:
		return ReservationStatusConfirmed
	case OrderStatusCancelled:
		return ReservationStatusCancelled
	default:
		return ReservationStatusPending
	}
}
