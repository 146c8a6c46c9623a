package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
)

func TestNewMovement(t *testing.T) {
	amountFrom := decimal.NewFromInt(100)
	amountTo := decimal.RequireFromString("0.002")

	testCases := []struct {
		name         string
		date         string
		time         string
		currencyFrom string
		amountFrom   decimal.Decimal
		currencyTo   string
		amountTo     decimal.Decimal
		checkErr     func(t *testing.T, err error)
	}{
		{
			name:         "OK",
			date:         "2023-05-01",
			time:         "10:30:00",
			currencyFrom: currencypkg.EUR,
			amountFrom:   amountFrom,
			currencyTo:   currencypkg.BTC,
			amountTo:     amountTo,
		},
		{
			name:         "UnsupportedCurrencyFrom",
			date:         "2023-05-01",
			time:         "10:30:00",
			currencyFrom: "USD",
			amountFrom:   amountFrom,
			currencyTo:   currencypkg.BTC,
			amountTo:     amountTo,
			checkErr: func(t *testing.T, err error) {
				var currencyErr *CurrencyError
				require.ErrorAs(t, err, &currencyErr)
				require.Equal(t, "USD", currencyErr.Code)
				require.Equal(t, currencypkg.SupportedCurrencies, currencyErr.Supported)
			},
		},
		{
			name:         "UnsupportedCurrencyTo",
			date:         "2023-05-01",
			time:         "10:30:00",
			currencyFrom: currencypkg.EUR,
			amountFrom:   amountFrom,
			currencyTo:   "DOGE",
			amountTo:     amountTo,
			checkErr: func(t *testing.T, err error) {
				var currencyErr *CurrencyError
				require.ErrorAs(t, err, &currencyErr)
				require.Equal(t, "DOGE", currencyErr.Code)
			},
		},
		{
			name:         "ZeroAmountFrom",
			date:         "2023-05-01",
			time:         "10:30:00",
			currencyFrom: currencypkg.EUR,
			amountFrom:   decimal.Zero,
			currencyTo:   currencypkg.BTC,
			amountTo:     amountTo,
			checkErr: func(t *testing.T, err error) {
				var amountErr *AmountError
				require.ErrorAs(t, err, &amountErr)
				require.True(t, amountErr.Amount.IsZero())
			},
		},
		{
			name:         "NegativeAmountTo",
			date:         "2023-05-01",
			time:         "10:30:00",
			currencyFrom: currencypkg.EUR,
			amountFrom:   amountFrom,
			currencyTo:   currencypkg.BTC,
			amountTo:     decimal.NewFromInt(-5),
			checkErr: func(t *testing.T, err error) {
				var amountErr *AmountError
				require.ErrorAs(t, err, &amountErr)
				require.Equal(t, "-5", amountErr.Amount.String())
			},
		},
		{
			name:         "BadDate",
			date:         "01/05/2023",
			time:         "10:30:00",
			currencyFrom: currencypkg.EUR,
			amountFrom:   amountFrom,
			currencyTo:   currencypkg.BTC,
			amountTo:     amountTo,
			checkErr: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrInvalidDate)
			},
		},
		{
			name:         "BadTime",
			date:         "2023-05-01",
			time:         "10am",
			currencyFrom: currencypkg.EUR,
			amountFrom:   amountFrom,
			currencyTo:   currencypkg.BTC,
			amountTo:     amountTo,
			checkErr: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrInvalidTime)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMovement(tc.date, tc.time, tc.currencyFrom, tc.amountFrom, tc.currencyTo, tc.amountTo)

			if tc.checkErr != nil {
				tc.checkErr(t, err)
				require.Empty(t, m)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.date, m.Date)
			require.Equal(t, tc.time, m.Time)
			require.Equal(t, tc.currencyFrom, m.CurrencyFrom)
			require.True(t, m.AmountFrom.Equal(tc.amountFrom))
			require.Equal(t, tc.currencyTo, m.CurrencyTo)
			require.True(t, m.AmountTo.Equal(tc.amountTo))
		})
	}
}

func TestNewMovementDefaultsTimestampToNow(t *testing.T) {
	m, err := NewMovement("", "", currencypkg.EUR, decimal.NewFromInt(10), currencypkg.ETH, decimal.NewFromInt(1))
	require.NoError(t, err)

	date, err := time.Parse(DateLayout, m.Date)
	require.NoError(t, err)
	require.False(t, date.After(time.Now()))

	_, err = time.Parse(TimeLayout, m.Time)
	require.NoError(t, err)
}

func TestMovementEqual(t *testing.T) {
	m, err := NewMovement("2023-05-01", "10:30:00", currencypkg.EUR, decimal.NewFromInt(100), currencypkg.BTC, decimal.RequireFromString("0.002"))
	require.NoError(t, err)

	same := m
	same.ID = 42
	same.AmountFrom = decimal.RequireFromString("100.00") // equal value, different exponent
	require.True(t, m.Equal(same))

	different := m
	different.AmountTo = decimal.RequireFromString("0.003")
	require.False(t, m.Equal(different))

	different = m
	different.Time = "10:30:01"
	require.False(t, m.Equal(different))
}

func TestRejectionIsIdempotent(t *testing.T) {
	_, firstErr := NewMovement("2023-05-01", "10:30:00", "USD", decimal.NewFromInt(1), currencypkg.BTC, decimal.NewFromInt(1))
	_, secondErr := NewMovement("2023-05-01", "10:30:00", "USD", decimal.NewFromInt(1), currencypkg.BTC, decimal.NewFromInt(1))

	var first, second *CurrencyError
	require.True(t, errors.As(firstErr, &first))
	require.True(t, errors.As(secondErr, &second))
	require.Equal(t, first.Code, second.Code)
}
