package exchangerate

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/go-arvc/coin-ledger/internal/domain"
	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
)

// Service converts amounts between supported currencies using a rate Provider.
type Service struct {
	provider Provider
}

// New returns an exchange rate service backed by the given provider.
func New(p Provider) *Service {
	return &Service{provider: p}
}

// Convert returns the equivalent of amount in the target currency,
// amount * rate(from, to). Lookup failures propagate as RateUnavailableError.
func (s *Service) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if !currencypkg.IsSupportedCurrency(from) {
		return decimal.Zero, domain.NewCurrencyError(from)
	}

	if !currencypkg.IsSupportedCurrency(to) {
		return decimal.Zero, domain.NewCurrencyError(to)
	}

	if !amount.IsPositive() {
		return decimal.Zero, &domain.AmountError{Amount: amount}
	}

	rate, err := s.provider.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(rate), nil
}

// Table returns the rate of every other supported currency against base.
func (s *Service) Table(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	if !currencypkg.IsSupportedCurrency(base) {
		return nil, domain.NewCurrencyError(base)
	}

	rates := make(map[string]decimal.Decimal, len(currencypkg.SupportedCurrencies)-1)

	for _, currency := range currencypkg.SupportedCurrencies {
		if currency == base {
			continue
		}

		rate, err := s.provider.Rate(ctx, base, currency)
		if err != nil {
			return nil, err
		}

		rates[currency] = rate
	}

	return rates, nil
}
