// Package randompkg provides functionality for generating random application items.
package randompkg

import (
	"crypto/rand"
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// FloatBetween generates a random decimal number between min and max rounded to 4 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*10_000) / 10_000
}

// AmountBetween generates a random positive amount between min and max.
func AmountBetween(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(FloatBetween(min, max))
}

// Currency returns one of the supported currencies.
func Currency() string {
	return currencypkg.SupportedCurrencies[Intn(len(currencypkg.SupportedCurrencies))]
}
