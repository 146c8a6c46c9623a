package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
)

var (
	// ErrInvalidAmount indicates an amount that could not be parsed.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidDate indicates a date that is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidTime indicates a time that is not in HH:MM:SS form.
	ErrInvalidTime = errors.New("invalid time")
	// ErrInvalidKind indicates an unrecognized movement kind.
	ErrInvalidKind = errors.New("invalid movement kind")
)

// CurrencyError indicates a currency code outside the supported set.
type CurrencyError struct {
	Code      string
	Supported []string
}

// NewCurrencyError returns a CurrencyError for the given code carrying
// the full supported set.
func NewCurrencyError(code string) *CurrencyError {
	return &CurrencyError{Code: code, Supported: currencypkg.SupportedCurrencies}
}

func (e *CurrencyError) Error() string {
	return fmt.Sprintf("currency %q is not supported, choose one of %s", e.Code, strings.Join(e.Supported, ", "))
}

// AmountError indicates an amount that is zero or negative.
type AmountError struct {
	Amount decimal.Decimal
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("amount must be greater than 0, got %s", e.Amount)
}

// FutureTimestampError indicates a movement dated after the current time.
type FutureTimestampError struct {
	Date string
	Time string
}

func (e *FutureTimestampError) Error() string {
	return fmt.Sprintf("movement timestamp %s %s is in the future", e.Date, e.Time)
}

// InsufficientBalanceError indicates that the ledger does not hold enough of
// the currency being spent.
type InsufficientBalanceError struct {
	Currency  string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: have %s, need %s", e.Currency, e.Available, e.Requested)
}

// RateUnavailableError indicates that the external rate lookup failed or
// returned no usable rate for the pair.
type RateUnavailableError struct {
	From string
	To   string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("no exchange rate available for %s/%s", e.From, e.To)
}
