package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nautimar/nautica-shop/internal/domain/models"
	"github.com/nautimar/nautica-shop/internal/storage"
)

// ErrForbidden — попытка доступа к чужому заказу или админским операциям
var ErrForbidden = errors.New("forbidden")

// OrderService отдаёт заказы пользователя; именно отсюда клиент
// читает обновлённый статус после прохождения оплаты
type OrderService interface {
	GetUserOrders(ctx context.Context, userID int64) ([]*models.Order, error)
	GetOrder(ctx context.Context, userID int64, orderID string) (*models.Order, error)
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage) OrderService {
	return &orderService{log: log, orderRepo: orderRepo}
}

func (s *orderService) GetUserOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	const op = "service.OrderService.GetUserOrders"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		logger.Error("failed to get orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, order := range orders {
		items, err := s.orderRepo.GetItemsByOrderID(ctx, order.ID)
		if err != nil {
			logger.Error("failed to get order items", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to get order items: %w", op, err)
		}
		order.Items = items
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID int64, orderID string) (*models.Order, error) {
	const op = "service.OrderService.GetOrder"

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if order.UserID != userID {
		s.log.Warn("order access denied", slog.String("op", op), slog.Int64("userID", userID), slog.String("orderID", orderID))
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	items, err := s.orderRepo.GetItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get order items: %w", op, err)
	}
	order.Items = items
	return order, nil
}
