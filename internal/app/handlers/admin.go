package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nautimar/nautica-shop/internal/auth/jwtmiddleware"
	"github.com/nautimar/nautica-shop/internal/domain/models"
	"github.com/nautimar/nautica-shop/internal/service"
)

// ProductRequest — входной JSON создания/обновления судна в админке
type ProductRequest struct {
	ID                 string  `json:"id,omitempty"`
	Slug               string  `json:"slug" validate:"required"`
	Name               string  `json:"name" validate:"required"`
	Type               string  `json:"type" validate:"required"`
	Status             string  `json:"status" validate:"required"`
	Price              float64 `json:"price" validate:"required,gt=0"`
	Year               int     `json:"year"`
	Location           string  `json:"location"`
	DepositMode        string  `json:"deposit_mode" validate:"required,oneof=fixed percent both"`
	DepositFixedAmount float64 `json:"deposit_fixed_amount" validate:"omitempty,gte=0"`
	DepositPercent     float64 `json:"deposit_percent" validate:"omitempty,gte=0,lte=1"`
	MinDepositAmount   float64 `json:"min_deposit_amount" validate:"omitempty,gte=0"`
	Featured           bool    `json:"featured"`
}

// AdminSaveProductHandler обрабатывает запрос POST /api/admin/products
func AdminSaveProductHandler(log *slog.Logger, adminService service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminSaveProductHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "validation error")
			return
		}

		product, err := adminService.SaveProduct(r.Context(), userID, &models.Product{
			ID:                 req.ID,
			Slug:               req.Slug,
			Name:               req.Name,
			Type:               req.Type,
			Status:             req.Status,
			Price:              req.Price,
			Year:               req.Year,
			Location:           req.Location,
			DepositMode:        req.DepositMode,
			DepositFixedAmount: req.DepositFixedAmount,
			DepositPercent:     req.DepositPercent,
			MinDepositAmount:   req.MinDepositAmount,
			Featured:           req.Featured,
		})
		if err != nil {
			if errors.Is(err, service.ErrForbidden) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			logger.Error("failed to save product", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

// AdminOrdersHandler обрабатывает запрос GET /api/admin/orders
func AdminOrdersHandler(log *slog.Logger, adminService service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		orders, err := adminService.ListOrders(r.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrForbidden) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			logger.Error("failed to list orders", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, orders)
	}
}
