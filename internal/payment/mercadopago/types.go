package mercadopago

// Статусы платежа, которые возвращает Mercado Pago
const (
	PaymentStatusApproved  = "approved"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCancelled = "cancelled"
)

// PreferenceItem — позиция в платёжном предпочтении
type PreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type Phone struct {
	Number string `json:"number"`
}

type Payer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone Phone  `json:"phone"`
}

// BackURLs — адреса, на которые провайдер вернёт покупателя после оплаты
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type PaymentType struct {
	ID string `json:"id"`
}

type PaymentMethods struct {
	ExcludedPaymentTypes []PaymentType `json:"excluded_payment_types"`
}

// Preference — описание hosted-checkout сессии, создаётся по одному на заказ.
// ExternalReference несёт идентификатор заказа и возвращается вебхуком.
type Preference struct {
	Items             []PreferenceItem `json:"items"`
	Payer             Payer            `json:"payer"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url"`
	PaymentMethods    PaymentMethods   `json:"payment_methods"`
}

// PreferenceResponse — ответ провайдера на создание предпочтения
type PreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// Payment — авторитетные данные платежа из /v1/payments/{id}.
// Содержимому вебхука не доверяем, статус всегда перечитывается отсюда.
type Payment struct {
	ID                int64  `json:"id"`
	Status            string `json:"status"`
	StatusDetail      string `json:"status_detail"`
	ExternalReference string `json:"external_reference"`
}
