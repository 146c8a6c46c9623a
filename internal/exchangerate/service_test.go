package exchangerate

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-arvc/coin-ledger/internal/domain"
	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
)

func TestConvert(t *testing.T) {
	testCases := []struct {
		name          string
		amount        string
		from          string
		to            string
		buildStubs    func(provider *MockProvider)
		checkResponse func(t *testing.T, got decimal.Decimal, err error)
	}{
		{
			name:   "OK",
			amount: "100",
			from:   currencypkg.EUR,
			to:     currencypkg.BTC,
			buildStubs: func(provider *MockProvider) {
				provider.EXPECT().
					Rate(gomock.Any(), gomock.Eq(currencypkg.EUR), gomock.Eq(currencypkg.BTC)).
					Times(1).
					Return(decimal.RequireFromString("0.00002"), nil)
			},
			checkResponse: func(t *testing.T, got decimal.Decimal, err error) {
				require.NoError(t, err)
				require.True(t, got.Equal(decimal.RequireFromString("0.002")))
			},
		},
		{
			name:   "UnsupportedFromCurrency",
			amount: "100",
			from:   "USD",
			to:     currencypkg.BTC,
			buildStubs: func(provider *MockProvider) {
				provider.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got decimal.Decimal, err error) {
				var currencyErr *domain.CurrencyError
				require.ErrorAs(t, err, &currencyErr)
				require.Equal(t, "USD", currencyErr.Code)
			},
		},
		{
			name:   "UnsupportedToCurrency",
			amount: "100",
			from:   currencypkg.EUR,
			to:     "USD",
			buildStubs: func(provider *MockProvider) {
				provider.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got decimal.Decimal, err error) {
				var currencyErr *domain.CurrencyError
				require.ErrorAs(t, err, &currencyErr)
				require.Equal(t, "USD", currencyErr.Code)
			},
		},
		{
			name:   "NonPositiveAmount",
			amount: "0",
			from:   currencypkg.EUR,
			to:     currencypkg.BTC,
			buildStubs: func(provider *MockProvider) {
				provider.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, got decimal.Decimal, err error) {
				var amountErr *domain.AmountError
				require.ErrorAs(t, err, &amountErr)
			},
		},
		{
			name:   "RateUnavailable",
			amount: "3",
			from:   currencypkg.ETH,
			to:     currencypkg.SOL,
			buildStubs: func(provider *MockProvider) {
				provider.EXPECT().
					Rate(gomock.Any(), gomock.Eq(currencypkg.ETH), gomock.Eq(currencypkg.SOL)).
					Times(1).
					Return(decimal.Zero, &domain.RateUnavailableError{From: currencypkg.ETH, To: currencypkg.SOL})
			},
			checkResponse: func(t *testing.T, got decimal.Decimal, err error) {
				var rateErr *domain.RateUnavailableError
				require.ErrorAs(t, err, &rateErr)
				require.Equal(t, currencypkg.ETH, rateErr.From)
				require.Equal(t, currencypkg.SOL, rateErr.To)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			provider := NewMockProvider(ctrl)
			tc.buildStubs(provider)

			service := New(provider)

			got, err := service.Convert(context.Background(), decimal.RequireFromString(tc.amount), tc.from, tc.to)
			tc.checkResponse(t, got, err)
		})
	}
}

func TestTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := NewMockProvider(ctrl)

	for _, currency := range currencypkg.SupportedCurrencies {
		if currency == currencypkg.EUR {
			continue
		}

		provider.EXPECT().
			Rate(gomock.Any(), gomock.Eq(currencypkg.EUR), gomock.Eq(currency)).
			Times(1).
			Return(decimal.NewFromInt(2), nil)
	}

	service := New(provider)

	rates, err := service.Table(context.Background(), currencypkg.EUR)
	require.NoError(t, err)
	require.Len(t, rates, len(currencypkg.SupportedCurrencies)-1)

	for currency, rate := range rates {
		require.NotEqual(t, currencypkg.EUR, currency)
		require.True(t, rate.Equal(decimal.NewFromInt(2)))
	}
}

func TestTableUnsupportedBase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := NewMockProvider(ctrl)
	provider.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	service := New(provider)

	_, err := service.Table(context.Background(), "GBP")

	var currencyErr *domain.CurrencyError
	require.ErrorAs(t, err, &currencyErr)
}
