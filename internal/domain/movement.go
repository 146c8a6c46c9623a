// Package domain provides definitions of all entities.
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
)

// Layouts for the calendar date and time-of-day fields of a movement.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Movement holds one recorded currency conversion: an amount of one currency
// given up for an amount of another at a given date and time.
type Movement struct {
	ID           int64           `json:"id"`
	Date         string          `json:"date"`
	Time         string          `json:"time"`
	CurrencyFrom string          `json:"currency_from"`
	AmountFrom   decimal.Decimal `json:"amount_from"`
	CurrencyTo   string          `json:"currency_to"`
	AmountTo     decimal.Decimal `json:"amount_to"`
}

// NewMovement validates all fields atomically and returns the movement.
// An invalid movement is never constructed: both currencies must belong to
// the supported set and both amounts must be strictly positive. Empty date
// and time default to now. The factory does not reject future timestamps;
// that check belongs to Ledger.Check, which validates proposals.
func NewMovement(date, timeOfDay, currencyFrom string, amountFrom decimal.Decimal, currencyTo string, amountTo decimal.Decimal) (Movement, error) {
	now := time.Now()

	if date == "" {
		date = now.Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return Movement{}, ErrInvalidDate
	}

	if timeOfDay == "" {
		timeOfDay = now.Format(TimeLayout)
	} else if _, err := time.Parse(TimeLayout, timeOfDay); err != nil {
		return Movement{}, ErrInvalidTime
	}

	if !currencypkg.IsSupportedCurrency(currencyFrom) {
		return Movement{}, NewCurrencyError(currencyFrom)
	}

	if !currencypkg.IsSupportedCurrency(currencyTo) {
		return Movement{}, NewCurrencyError(currencyTo)
	}

	if !amountFrom.IsPositive() {
		return Movement{}, &AmountError{Amount: amountFrom}
	}

	if !amountTo.IsPositive() {
		return Movement{}, &AmountError{Amount: amountTo}
	}

	return Movement{
		Date:         date,
		Time:         timeOfDay,
		CurrencyFrom: currencyFrom,
		AmountFrom:   amountFrom,
		CurrencyTo:   currencyTo,
		AmountTo:     amountTo,
	}, nil
}

// CreateMovementParams is the input data for committing a movement.
// Amounts travel as strings and are parsed by the service layer.
type CreateMovementParams struct {
	Kind         Kind   `json:"kind"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	CurrencyFrom string `json:"currency_from"`
	AmountFrom   string `json:"amount_from"`
	CurrencyTo   string `json:"currency_to"`
	AmountTo     string `json:"amount_to"`
}

// Equal reports whether two movements describe the same conversion.
// The surrogate ID is not part of the identity contract.
func (m Movement) Equal(o Movement) bool {
	return m.Date == o.Date &&
		m.Time == o.Time &&
		m.CurrencyFrom == o.CurrencyFrom &&
		m.AmountFrom.Equal(o.AmountFrom) &&
		m.CurrencyTo == o.CurrencyTo &&
		m.AmountTo.Equal(o.AmountTo)
}
