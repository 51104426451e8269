package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nautimar/nautica-shop/internal/domain/models"
)

var ErrAccessoryNotFound = errors.New("accessory not found")

// AccessoryStorage описывает методы для работы с каталогом аксессуаров.
type AccessoryStorage interface {
	ListAccessories(ctx context.Context) ([]*models.Accessory, error)
	GetAccessoryByID(ctx context.Context, id string) (*models.Accessory, error)
}

type accessoryRepository struct {
	db *sql.DB
}

func NewAccessoryRepository(db *sql.DB) AccessoryStorage {
	return &accessoryRepository{db: db}
}

func (r *accessoryRepository) ListAccessories(ctx context.Context) ([]*models.Accessory, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, price, created_at FROM accessories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accessories []*models.Accessory
	for rows.Next() {
		acc := &models.Accessory{}
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.Price, &acc.CreatedAt); err != nil {
			return nil, err
		}
		accessories = append(accessories, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accessories, nil
}

func (r *accessoryRepository) GetAccessoryByID(ctx context.Context, id string) (*models.Accessory, error) {
	acc := &models.Accessory{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, price, created_at FROM accessories WHERE id = $1", id)
	if err := row.Scan(&acc.ID, &acc.Name, &acc.Price, &acc.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccessoryNotFound
		}
		return nil, err
	}
	return acc, nil
}
