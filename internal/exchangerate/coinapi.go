// Package exchangerate derives monetary amounts from live market rates.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-arvc/coin-ledger/internal/domain"
)

// DefaultCoinAPIURL is the production CoinAPI endpoint.
const DefaultCoinAPIURL = "https://rest.coinapi.io"

// Provider looks up the current market rate for a currency pair.
//
//go:generate mockgen -source coinapi.go -destination provider_mock.go -package exchangerate
type Provider interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// CoinAPI is a Provider backed by the CoinAPI REST service.
type CoinAPI struct {
	url    string
	apiKey string
	client http.Client
}

// NewCoinAPI returns a CoinAPI provider for the given base url and key.
func NewCoinAPI(url, apiKey string) *CoinAPI {
	return &CoinAPI{
		url:    url,
		apiKey: apiKey,
		client: http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Rate performs a single best-effort lookup of the from/to rate. A transport
// failure, a non-success response and a response lacking a rate all surface
// as RateUnavailableError; the rate never silently defaults.
func (p *CoinAPI) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	url := fmt.Sprintf("%s/v1/exchangerate/%s/%s", p.url, from, to)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return decimal.Zero, &domain.RateUnavailableError{From: from, To: to}
	}

	request.Header.Set("X-CoinAPI-Key", p.apiKey)

	response, err := p.client.Do(request)
	if err != nil {
		l.Error().Err(err).Str("url", url).Send()
		return decimal.Zero, &domain.RateUnavailableError{From: from, To: to}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		l.Warn().Int("status_code", response.StatusCode).Str("url", url).Msg("rate lookup refused")
		return decimal.Zero, &domain.RateUnavailableError{From: from, To: to}
	}

	var body struct {
		Rate *decimal.Decimal `json:"rate"`
	}

	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		l.Error().Err(err).Send()
		return decimal.Zero, &domain.RateUnavailableError{From: from, To: to}
	}

	if body.Rate == nil {
		return decimal.Zero, &domain.RateUnavailableError{From: from, To: to}
	}

	return *body.Rate, nil
}
