// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import "github.com/go-playground/validator/v10"

// Constants for all supported currencies.
const (
	EUR   = "EUR"
	ETH   = "ETH"
	BNB   = "BNB"
	ADA   = "ADA"
	DOT   = "DOT"
	BTC   = "BTC"
	USDT  = "USDT"
	XRP   = "XRP"
	SOL   = "SOL"
	MATIC = "MATIC"
)

// Settlement is the currency movements are ultimately realized in.
const Settlement = EUR

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	EUR,
	ETH,
	BNB,
	ADA,
	DOT,
	BTC,
	USDT,
	XRP,
	SOL,
	MATIC,
}

// IsSupportedCurrency returns true if the currency is supported.
func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}

	return false
}

// ValidCurrency implements the "currency" binding tag for gin request structs.
var ValidCurrency validator.Func = func(fieldLevel validator.FieldLevel) bool {
	if currency, ok := fieldLevel.Field().Interface().(string); ok {
		return IsSupportedCurrency(currency)
	}

	return false
}
