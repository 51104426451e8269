package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nautimar/nautica-shop/internal/domain/models"
)

// ReservationStorage описывает методы для работы с бронированиями.
type ReservationStorage interface {
	// CreateReservation вставляет бронь в статусе pending с использованием транзакции.
	CreateReservation(ctx context.Context, tx *sql.Tx, res *models.Reservation) error
	// GetReservationsByOrderID возвращает брони, привязанные к заказу.
	GetReservationsByOrderID(ctx context.Context, orderID string) ([]*models.Reservation, error)
	// UpdateStatusByOrderID обновляет статус всех броней заказа и возвращает
	// количество затронутых строк.
	UpdateStatusByOrderID(ctx context.Context, orderID string, status models.ReservationStatus, paymentID string) (int64, error)
}

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) ReservationStorage {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) CreateReservation(ctx context.Context, tx *sql.Tx, res *models.Reservation) error {
	query := `INSERT INTO reservations (id, user_id, product_id, mode, amount, status, order_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`
	_, err := tx.ExecContext(ctx, query,
		res.ID, res.UserID, res.ProductID, res.Mode, res.Amount, res.Status, res.OrderID)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) GetReservationsByOrderID(ctx context.Context, orderID string) ([]*models.Reservation, error) {
	query := `SELECT id, user_id, product_id, mode, amount, status, order_id, payment_id, created_at, updated_at
	          FROM reservations WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		res := &models.Reservation{}
		if err := rows.Scan(&res.ID, &res.UserID, &res.ProductID, &res.Mode, &res.Amount,
			&res.Status, &res.OrderID, &res.PaymentID, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) UpdateStatusByOrderID(ctx context.Context, orderID string, status models.ReservationStatus, paymentID string) (int64, error) {
	query := `UPDATE reservations SET status = $1, payment_id = $2, updated_at = NOW() WHERE order_id = $3`
	res, err := r.db.ExecContext(ctx, query, status, paymentID, orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to update reservations: %w", err)
	}
	return res.RowsAffected()
}
