package models

import "time"

// Режимы расчёта задатка по бронированию
const (
	DepositModeFixed   = "fixed"
	DepositModePercent = "percent"
	DepositModeBoth    = "both" // клиент сам выбирает между fixed и percent
)

// Product представляет судно из каталога (лодка, катер, гидроцикл)
type Product struct {
	ID                 string    `json:"id"`
	Slug               string    `json:"slug"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	Status             string    `json:"status"`
	Price              float64   `json:"price"`
	Year               int       `json:"year,omitempty"`
	Location           string    `json:"location,omitempty"`
	DepositMode        string    `json:"deposit_mode"`
	DepositFixedAmount float64   `json:"deposit_fixed_amount"`
	DepositPercent     float64   `json:"deposit_percent"`
	MinDepositAmount   float64   `json:"min_deposit_amount"`
	Featured           bool      `json:"featured"`
	CreatedAt          time.Time `json:"created_at"`
}

// DepositAmount вычисляет сумму задатка для выбранного режима.
// Для режима percent действует нижняя граница MinDepositAmount.
func (p *Product) DepositAmount(mode string) float64 {
	if mode == DepositModePercent {
		amount := p.Price * p.DepositPercent
		if amount < p.MinDepositAmount {
			return p.MinDepositAmount
		}
		return amount
	}
	return p.DepositFixedAmount
}
