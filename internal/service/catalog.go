package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nautimar/nautica-shop/internal/domain/models"
	"github.com/nautimar/nautica-shop/internal/storage"
)

// CatalogService отдаёт каталог судов и аксессуаров
type CatalogService interface {
	ListProducts(ctx context.Context, filter storage.ProductFilter) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListAccessories(ctx context.Context) ([]*models.Accessory, error)
}

type catalogService struct {
	log           *slog.Logger
	productRepo   storage.ProductStorage
	accessoryRepo storage.AccessoryStorage
}

func NewCatalogService(log *slog.Logger, productRepo storage.ProductStorage, accessoryRepo storage.AccessoryStorage) CatalogService {
	return &catalogService{
		log:           log,
		productRepo:   productRepo,
		accessoryRepo: accessoryRepo,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, filter storage.ProductFilter) ([]*models.Product, error) {
	const op = "service.CatalogService.ListProducts"
	products, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	const op = "service.CatalogService.GetProduct"
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *catalogService) ListAccessories(ctx context.Context) ([]*models.Accessory, error) {
	const op = "service.CatalogService.ListAccessories"
	accessories, err := s.accessoryRepo.ListAccessories(ctx)
	if err != nil {
		s.log.Error("failed to list accessories", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return accessories, nil
}
