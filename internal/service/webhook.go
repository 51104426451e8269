package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nautimar/nautica-shop/internal/domain/models"
	"github.com/nautimar/nautica-shop/internal/payment/mercadopago"
	"github.com/nautimar/nautica-shop/internal/storage"
)

// Результаты обработки уведомления
const (
	WebhookProcessed = "processed"
	WebhookIgnored   = "ignored"
)

// единственный тип уведомлений, который мы обрабатываем
const notificationTypePayment = "payment"

// PaymentFetcher — то, что вебхук требует от платёжного провайдера
type PaymentFetcher interface {
	GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error)
}

type WebhookService interface {
	HandleNotification(ctx context.Context, notifType, paymentID string) (string, error)
}

type paymentWebhookService struct {
	log             *slog.Logger
	orderRepo       storage.OrderStorage
	reservationRepo storage.ReservationStorage
	payments        PaymentFetcher
}

func NewWebhookService(log *slog.Logger, orderRepo storage.OrderStorage, reservationRepo storage.ReservationStorage, payments PaymentFetcher) WebhookService {
	return &paymentWebhookService{
		log:             log,
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
		payments:        payments,
	}
}

// HandleNotification сверяет уведомление провайдера с состоянием заказа.
// Содержимому вебхука не доверяем: статус платежа всегда перечитывается
// server-to-server. Обновление заказа авторитетно, обновление броней —
// best-effort: его ошибка логируется, но запрос не валит.
func (s *paymentWebhookService) HandleNotification(ctx context.Context, notifType, paymentID string) (string, error) {
	const op = "service.WebhookService.HandleNotification"
	logger := s.log.With(slog.String("op", op), slog.String("paymentID", paymentID))

	// чужие типы уведомлений подтверждаем без обработки, чтобы провайдер их не ретраил
	if notifType != notificationTypePayment {
		logger.Info("ignoring notification", slog.String("type", notifType))
		return WebhookIgnored, nil
	}

	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		logger.Error("failed to fetch payment", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to fetch payment: %w", op, err)
	}

	orderID := payment.ExternalReference
	logger = logger.With(slog.String("orderID", orderID), slog.String("paymentStatus", payment.Status))
	logger.Info("payment details fetched", slog.String("statusDetail", payment.StatusDetail))

	if orderID == "" {
		logger.Warn("payment has no external reference")
		return WebhookIgnored, nil
	}

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			// платёж ссылается на неизвестный заказ: подтверждаем, чтобы не зациклить ретраи
			logger.Warn("order not found for payment")
			return WebhookIgnored, nil
		}
		logger.Error("failed to get order", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to get order: %w", op, err)
	}

	target := orderStatusFor(payment.Status)
	if target == models.OrderStatusPending {
		// платёж ещё в процессе, ждём следующего уведомления
		logger.Info("payment still pending, nothing to update")
		return WebhookProcessed, nil
	}

	if order.Status == target {
		// повтор того же уведомления, состояние уже терминальное
		logger.Info("order already in target status, replay ignored")
		return WebhookProcessed, nil
	}

	if !models.CanTransition(order.Status, target) {
		logger.Warn("transition not allowed, notification dropped",
			slog.String("from", string(order.Status)),
			slog.String("to", string(target)),
		)
		return WebhookProcessed, nil
	}

	pid := strconv.FormatInt(payment.ID, 10)
	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, target, pid); err != nil {
		logger.Error("failed to update order", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to update order: %w", op, err)
	}

	affected, err := s.reservationRepo.UpdateStatusByOrderID(ctx, orderID, models.ReservationStatusFor(target), pid)
	if err != nil {
		// заказ — источник правды, брони догонит следующее уведомление или ручная сверка
		logger.Error("failed to update reservations", slog.Any("error", err))
	} else {
		logger.Info("order reconciled",
			slog.String("status", string(target)),
			slog.Int64("reservationsUpdated", affected),
		)
	}

	return WebhookProcessed, nil
}

// orderStatusFor переводит статус платежа провайдера в статус заказа
func orderStatusFor(paymentStatus string) models.OrderStatus {
	switch paymentStatus {
	case mercadopago.PaymentStatusApproved:
		return models.OrderStatusPaid
	case mercadopago.PaymentStatusRejected, mercadopago.PaymentStatusCancelled:
		return models.OrderStatusCancelled
	default:
		return models.OrderStatusPending
	}
}
