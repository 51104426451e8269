package storage

import (
	"context"
	"database/sql"

	"github.com/nautimar/nautica-shop/internal/domain/models"
)

// FavoriteStorage описывает методы для работы с избранным.
type FavoriteStorage interface {
	ListByUserID(ctx context.Context, userID int64) ([]*models.Favorite, error)
	Exists(ctx context.Context, userID int64, productID string) (bool, error)
	Create(ctx context.Context, userID int64, productID string) error
	Delete(ctx context.Context, userID int64, productID string) error
}

type favoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) FavoriteStorage {
	return &favoriteRepository{db: db}
}

// ListByUserID возвращает избранное пользователя вместе с данными судна (JOIN с products)
func (r *favoriteRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	query := `
		SELECT f.id, f.user_id, f.product_id, f.created_at,
		       p.id, p.slug, p.name, p.type, p.status, p.price, p.year, p.location,
		       p.deposit_mode, p.deposit_fixed_amount, p.deposit_percent, p.min_deposit_amount, p.featured, p.created_at
		FROM favorites f
		JOIN products p ON f.product_id = p.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []*models.Favorite
	for rows.Next() {
		fav := &models.Favorite{Product: &models.Product{}}
		p := fav.Product
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.ProductID, &fav.CreatedAt,
			&p.ID, &p.Slug, &p.Name, &p.Type, &p.Status, &p.Price, &p.Year, &p.Location,
			&p.DepositMode, &p.DepositFixedAmount, &p.DepositPercent, &p.MinDepositAmount, &p.Featured, &p.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID int64, productID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND product_id = $2)",
		userID, productID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *favoriteRepository) Create(ctx context.Context, userID int64, productID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, product_id, created_at) VALUES ($1, $2, NOW()) ON CONFLICT DO NOTHING",
		userID, productID)
	return err
}

func (r *favoriteRepository) Delete(ctx context.Context, userID int64, productID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = $1 AND product_id = $2", userID, productID)
	return err
}
