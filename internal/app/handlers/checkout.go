package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nautimar/nautica-shop/internal/auth/jwtmiddleware"
	"github.com/nautimar/nautica-shop/internal/domain/models"
	"github.com/nautimar/nautica-shop/internal/service"
	"github.com/nautimar/nautica-shop/internal/storage"
)

// CheckoutCustomerData — контактные данные покупателя; пустые поля
// заполняются из профиля пользователя
type CheckoutCustomerData struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// CheckoutRequest представляет входной JSON оформления заказа
type CheckoutRequest struct {
	CartItems     []models.CartEntry   `json:"cartItems" validate:"required,min=1,dive"`
	PaymentMethod string               `json:"paymentMethod" validate:"required,oneof=pix card"`
	CustomerData  CheckoutCustomerData `json:"customerData"`
}

// CheckoutResponse — идентификатор заказа и ссылки на оплату
type CheckoutResponse struct {
	OrderID     string `json:"orderId"`
	CheckoutURL string `json:"checkoutUrl"`
	SandboxURL  string `json:"sandboxUrl,omitempty"`
}

// CheckoutHandler обрабатывает запрос POST /api/checkout
func CheckoutHandler(log *slog.Logger, checkoutService service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutHandler"
		logger := log.With(slog.String("op", op))

		// userID устанавливает JWT middleware
		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req CheckoutRequest
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

		result, err := checkoutService.Checkout(r.Context(), userID, req.CartItems, req.PaymentMethod, service.CustomerData{
			Name:  req.CustomerData.Name,
			Email: req.CustomerData.Email,
			Phone: req.CustomerData.Phone,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrUnknownCartItem):
				logger.Warn("checkout rejected", slog.Any("error", err))
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, storage.ErrUserNotFound):
				logger.Warn("unknown user", slog.Int64("userID", userID))
				writeError(w, http.StatusUnauthorized, "unauthorized")
			default:
				logger.Error("checkout failed", slog.Any("error", err))
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, CheckoutResponse{
			OrderID:     result.OrderID,
			CheckoutURL: result.CheckoutURL,
			SandboxURL:  result.SandboxURL,
		})
	}
}
