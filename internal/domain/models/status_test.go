package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nautimar/nautica-shop/internal/domain/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"pending to paid", models.OrderStatusPending, models.OrderStatusPaid, true},
		{"pending to cancelled", models.OrderStatusPending, models.OrderStatusCancelled, true},
		{"paid is terminal", models.OrderStatusPaid, models.OrderStatusCancelled, false},
		{"cancelled is terminal", models.OrderStatusCancelled, models.OrderStatusPaid, false},
		{"no self transition", models.OrderStatusPending, models.OrderStatusPending, false},
		{"unknown status", models.OrderStatus("unknown"), models.OrderStatusPaid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, models.CanTransition(tt.from, tt.to))
		})
	}
}

func TestReservationStatusFor(t *testing.T) {
	assert.Equal(t, models.ReservationStatusConfirmed, models.ReservationStatusFor(models.OrderStatusPaid))
	assert.Equal(t, models.ReservationStatusCancelled, models.ReservationStatusFor(models.OrderStatusCancelled))
	assert.Equal(t, models.ReservationStatusPending, models.ReservationStatusFor(models.OrderStatusPending))
}
