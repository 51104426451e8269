package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nautimar/nautica-shop/internal/domain/models"
	"github.com/nautimar/nautica-shop/internal/storage"
)

// AdminService — операции админки: управление каталогом и обзор заказов
type AdminService interface {
	SaveProduct(ctx context.Context, userID int64, product *models.Product) (*models.Product, error)
	ListOrders(ctx context.Context, userID int64) ([]*models.Order, error)
}

type adminService struct {
	log         *slog.Logger
	userRepo    storage.UserStorage
	productRepo storage.ProductStorage
	orderRepo   storage.OrderStorage
}

func NewAdminService(log *slog.Logger, userRepo storage.UserStorage, productRepo storage.ProductStorage, orderRepo storage.OrderStorage) AdminService {
	return &adminService{
		log:         log,
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// requireAdmin проверяет флаг администратора у вызывающего пользователя
func (s *adminService) requireAdmin(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *adminService) SaveProduct(ctx context.Context, userID int64, product *models.Product) (*models.Product, error) {
	const op = "service.AdminService.SaveProduct"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("failed to save product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product saved", slog.String("productID", product.ID))
	return product, nil
}

func (s *adminService) ListOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	const op = "service.AdminService.ListOrders"

	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}
