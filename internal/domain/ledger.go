package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
)

// Kind tags the recognized movement kinds, which differ in the validation
// rules that apply to them.
type Kind string

// Recognized movement kinds.
const (
	// KindPurchase acquires a position with currency assumed on hand;
	// the ledger is not consulted.
	KindPurchase Kind = "purchase"
	// KindTrade converts one held currency into another and must be
	// covered by the ledger balance of the currency given up.
	KindTrade Kind = "trade"
	// KindSale trades back into the settlement currency; on top of the
	// trade rules it produces an advisory profitability signal.
	KindSale Kind = "sale"
)

// SaleSignal is the advisory profitability signal attached to sales.
// It never blocks a movement.
type SaleSignal int

// Sale signal values.
const (
	SignalNone SaleSignal = iota
	SignalFavorable
	SignalUnfavorable
)

func (s SaleSignal) String() string {
	switch s {
	case SignalFavorable:
		return "favorable"
	case SignalUnfavorable:
		return "unfavorable"
	}

	return ""
}

// Ledger is a read-only snapshot of all committed movements for the owner,
// ordered by date. Every derivation over it is a fold, so it is well-defined
// regardless of ordering.
type Ledger []Movement

// Balance returns the net quantity of currency the ledger implies the owner
// holds: amounts received as currency_to minus amounts spent as
// currency_from. An empty ledger yields zero.
func (l Ledger) Balance(currency string) decimal.Decimal {
	total := decimal.Zero

	for _, m := range l {
		if m.CurrencyTo == currency {
			total = total.Add(m.AmountTo)
		}

		if m.CurrencyFrom == currency {
			total = total.Sub(m.AmountFrom)
		}
	}

	return total
}

// invested returns the net amount of the settlement currency the ledger
// shows flowing out: spent minus received back.
func (l Ledger) invested() decimal.Decimal {
	total := decimal.Zero

	for _, m := range l {
		if m.CurrencyFrom == currencypkg.Settlement {
			total = total.Add(m.AmountFrom)
		}

		if m.CurrencyTo == currencypkg.Settlement {
			total = total.Sub(m.AmountTo)
		}
	}

	return total
}

// Proposal is a candidate movement awaiting validation against the ledger.
type Proposal struct {
	Kind         Kind
	Date         string
	Time         string
	CurrencyFrom string
	AmountFrom   decimal.Decimal
	CurrencyTo   string
	AmountTo     decimal.Decimal
}

// Check decides whether the proposed movement may be committed given the
// full ledger. Checks run fail-fast: timestamp, currency legality of both
// sides, positivity of both amounts, then balance sufficiency for trades and
// sales. Purchases skip the balance check entirely. The returned SaleSignal
// is advisory and only ever set for sales into the settlement currency.
func (l Ledger) Check(p Proposal) (SaleSignal, error) {
	if err := checkTimestamp(p.Date, p.Time); err != nil {
		return SignalNone, err
	}

	if !currencypkg.IsSupportedCurrency(p.CurrencyFrom) {
		return SignalNone, NewCurrencyError(p.CurrencyFrom)
	}

	if !currencypkg.IsSupportedCurrency(p.CurrencyTo) {
		return SignalNone, NewCurrencyError(p.CurrencyTo)
	}

	if !p.AmountFrom.IsPositive() {
		return SignalNone, &AmountError{Amount: p.AmountFrom}
	}

	if !p.AmountTo.IsPositive() {
		return SignalNone, &AmountError{Amount: p.AmountTo}
	}

	switch p.Kind {
	case KindPurchase:
		// Purchases are assumed fundable.
		return SignalNone, nil
	case KindTrade, KindSale:
		available := l.Balance(p.CurrencyFrom)
		if available.LessThan(p.AmountFrom) {
			return SignalNone, &InsufficientBalanceError{
				Currency:  p.CurrencyFrom,
				Available: available,
				Requested: p.AmountFrom,
			}
		}

		if p.Kind == KindSale {
			return l.saleSignal(p), nil
		}

		return SignalNone, nil
	}

	return SignalNone, ErrInvalidKind
}

// saleSignal flags a sale favorable when the settlement currency it realizes
// exceeds the net amount invested so far.
func (l Ledger) saleSignal(p Proposal) SaleSignal {
	if p.CurrencyTo != currencypkg.Settlement {
		return SignalNone
	}

	if p.AmountTo.GreaterThan(l.invested()) {
		return SignalFavorable
	}

	return SignalUnfavorable
}

func checkTimestamp(date, timeOfDay string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}

	if _, err := time.Parse(TimeLayout, timeOfDay); err != nil {
		return ErrInvalidTime
	}

	// Both layouts sort lexicographically.
	now := time.Now()
	today := now.Format(DateLayout)

	if date > today || (date == today && timeOfDay > now.Format(TimeLayout)) {
		return &FutureTimestampError{Date: date, Time: timeOfDay}
	}

	return nil
}
