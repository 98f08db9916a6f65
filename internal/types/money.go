// README: Common money value object used across modules.
package types

import "github.com/shopspring/decimal"

// Money is an amount in a currency, kept at two decimal places.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// MoneyFromFloat rounds v to two decimal places and wraps it in Money.
func MoneyFromFloat(v float64, currency string) Money {
	return Money{Amount: decimal.NewFromFloat(v).Round(2), Currency: currency}
}
