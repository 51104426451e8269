package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nautimar/nautica-shop/internal/service"
)

// WebhookRequest — конверт уведомления Mercado Pago.
// id приходит то числом, то строкой, поэтому json.Number.
type WebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// WebhookResponse — подтверждение обработки для провайдера
type WebhookResponse struct {
	Status string `json:"status"`
}

// WebhookHandler обрабатывает запрос POST /api/payments/webhook.
// Эндпоинт без аутентификации: доверие устанавливается повторным
// чтением статуса платежа server-to-server внутри сервиса.
func WebhookHandler(log *slog.Logger, webhookService service.WebhookService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.WebhookHandler"
		logger := log.With(slog.String("op", op))

		var req WebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		logger.Info("webhook received", slog.String("type", req.Type), slog.String("paymentID", req.Data.ID.String()))

		status, err := webhookService.HandleNotification(r.Context(), req.Type, req.Data.ID.String())
		if err != nil {
			logger.Error("failed to process notification", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, WebhookResponse{Status: status})
	}
}
