package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/nautimar/nautica-shop/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductFilter — параметры выборки каталога.
type ProductFilter struct {
	Type     string // фильтр по типу судна, пустая строка — без фильтра
	Featured *bool  // nil — без фильтра
	Search   string // поиск по подстроке в названии
}

// ProductStorage описывает методы для работы с каталогом судов.
type ProductStorage interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	// SaveProduct вставляет товар или обновляет его по id (для админки).
	SaveProduct(ctx context.Context, p *models.Product) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productColumns = `id, slug, name, type, status, price, year, location,
	deposit_mode, deposit_fixed_amount, deposit_percent, min_deposit_amount, featured, created_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Type, &p.Status, &p.Price, &p.Year, &p.Location,
		&p.DepositMode, &p.DepositFixedAmount, &p.DepositPercent, &p.MinDepositAmount, &p.Featured, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts собирает условия WHERE динамически, в зависимости от фильтра
func (r *productRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	var (
		conds []string
		args  []any
	)
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, "type = $"+strconv.Itoa(len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conds = append(conds, "featured = $"+strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, "name ILIKE $"+strconv.Itoa(len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) SaveProduct(ctx context.Context, p *models.Product) error {
	query := `INSERT INTO products (id, slug, name, type, status, price, year, location,
	              deposit_mode, deposit_fixed_amount, deposit_percent, min_deposit_amount, featured, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
	          ON CONFLICT (id) DO UPDATE SET
	              slug = EXCLUDED.slug, name = EXCLUDED.name, type = EXCLUDED.type,
	              status = EXCLUDED.status, price = EXCLUDED.price, year = EXCLUDED.year,
	              location = EXCLUDED.location, deposit_mode = EXCLUDED.deposit_mode,
	              deposit_fixed_amount = EXCLUDED.deposit_fixed_amount,
	              deposit_percent = EXCLUDED.deposit_percent,
	              min_deposit_amount = EXCLUDED.min_deposit_amount,
	              featured = EXCLUDED.featured`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Slug, p.Name, p.Type, p.Status, p.Price, p.Year,
		p.Location, p.DepositMode, p.DepositFixedAmount, p.DepositPercent, p.MinDepositAmount, p.Featured)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}
