package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nautimar/nautica-shop/internal/domain/models"
	"github.com/nautimar/nautica-shop/internal/storage"
)

// FavoriteService управляет избранным пользователя
type FavoriteService interface {
	// Toggle добавляет судно в избранное или убирает его; возвращает true, если добавило
	Toggle(ctx context.Context, userID int64, productID string) (bool, error)
	List(ctx context.Context, userID int64) ([]*models.Favorite, error)
}

type favoriteService struct {
	log          *slog.Logger
	favoriteRepo storage.FavoriteStorage
	productRepo  storage.ProductStorage
}

func NewFavoriteService(log *slog.Logger, favoriteRepo storage.FavoriteStorage, productRepo storage.ProductStorage) FavoriteService {
	return &favoriteService{
		log:          log,
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

func (s *favoriteService) Toggle(ctx context.Context, userID int64, productID string) (bool, error) {
	const op = "service.FavoriteService.Toggle"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.String("productID", productID))

	// проверяем, что судно существует, прежде чем писать ссылку на него
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		logger.Error("failed to get product", slog.Any("error", err))
		return false, fmt.Errorf("%s: failed to get product: %w", op, err)
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, productID)
	if err != nil {
		logger.Error("failed to check favorite", slog.Any("error", err))
		return false, fmt.Errorf("%s: failed to check favorite: %w", op, err)
	}

	if exists {
		if err := s.favoriteRepo.Delete(ctx, userID, productID); err != nil {
			logger.Error("failed to delete favorite", slog.Any("error", err))
			return false, fmt.Errorf("%s: failed to delete favorite: %w", op, err)
		}
		return false, nil
	}

	if err := s.favoriteRepo.Create(ctx, userID, productID); err != nil {
		logger.Error("failed to create favorite", slog.Any("error", err))
		return false, fmt.Errorf("%s: failed to create favorite: %w", op, err)
	}
	return true, nil
}

func (s *favoriteService) List(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	const op = "service.FavoriteService.List"
	favorites, err := s.favoriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to list favorites", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return favorites, nil
}
