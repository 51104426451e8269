package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL — продакшен-адрес API Mercado Pago
const DefaultBaseURL = "https://api.mercadopago.com"

var ErrTokenNotSet = errors.New("mercado pago access token is not set")

// Client — тонкий HTTP-клиент к API Mercado Pago
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создаёт клиент. Отсутствие токена — фатальная ошибка конфигурации:
// без него ни checkout, ни сверка вебхуков работать не могут.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	if token == "" {
		return nil, ErrTokenNotSet
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      token,
	}, nil
}

// CreatePreference создаёт платёжное предпочтение (hosted-checkout сессию).
// idempotencyKey сохраняется на заказе и передаётся провайдеру, чтобы повтор
// запроса не создавал дубликат предпочтения.
func (c *Client) CreatePreference(ctx context.Context, idempotencyKey string, pref *Preference) (*PreferenceResponse, error) {
	body, err := json.Marshal(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preference: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call mercado pago: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// тело ответа уходит в ошибку для диагностики
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("mercado pago error: status %d: %s", resp.StatusCode, raw)
	}

	var out PreferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode preference response: %w", err)
	}
	return &out, nil
}

// GetPayment перечитывает данные платежа server-to-server
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+id, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call mercado pago: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to fetch payment: status %d: %s", resp.StatusCode, raw)
	}

	var out Payment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}
	return &out, nil
}
