// Package movementservice manages business logic layer of movements.
package movementservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-arvc/coin-ledger/internal/domain"
	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
)

// Repo provides data access layer interface needed by movement service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package movementservice
type Repo interface {
	Append(ctx context.Context, arg domain.Movement) (domain.Movement, error)
	List(ctx context.Context) (domain.Ledger, error)
}

// Service facilitates movement service layer logic.
type Service struct {
	repo Repo
}

// New returns movement service struct to manage movement business logic.
func New(mr Repo) *Service {
	return &Service{repo: mr}
}

// Create validates the proposed movement against the full ledger and, only
// if every check passes, appends it. The first violation is terminal; a
// movement is either fully validated and stored or not stored at all. The
// returned signal is the advisory sale profitability signal, SignalNone for
// other kinds.
func (s *Service) Create(ctx context.Context, arg domain.CreateMovementParams) (domain.Movement, domain.SaleSignal, error) {
	l := zerolog.Ctx(ctx)

	amountFrom, err := decimal.NewFromString(arg.AmountFrom)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Movement{}, domain.SignalNone, domain.ErrInvalidAmount
	}

	amountTo, err := decimal.NewFromString(arg.AmountTo)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Movement{}, domain.SignalNone, domain.ErrInvalidAmount
	}

	proposed, err := domain.NewMovement(arg.Date, arg.Time, arg.CurrencyFrom, amountFrom, arg.CurrencyTo, amountTo)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Movement{}, domain.SignalNone, err
	}

	ledger, err := s.repo.List(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Movement{}, domain.SignalNone, err
	}

	signal, err := ledger.Check(domain.Proposal{
		Kind:         arg.Kind,
		Date:         proposed.Date,
		Time:         proposed.Time,
		CurrencyFrom: proposed.CurrencyFrom,
		AmountFrom:   proposed.AmountFrom,
		CurrencyTo:   proposed.CurrencyTo,
		AmountTo:     proposed.AmountTo,
	})
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Movement{}, domain.SignalNone, err
	}

	stored, err := s.repo.Append(ctx, proposed)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Movement{}, domain.SignalNone, err
	}

	if signal != domain.SignalNone {
		l.Info().
			Str("currency", proposed.CurrencyFrom).
			Str("signal", signal.String()).
			Msg("sale profitability signal")
	}

	return stored, signal, nil
}

// List returns the full ledger of committed movements, date-ascending.
func (s *Service) List(ctx context.Context) (domain.Ledger, error) {
	ledger, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return ledger, nil
}

// Balance returns the ledger-derived balance of the given currency.
func (s *Service) Balance(ctx context.Context, currency string) (decimal.Decimal, error) {
	if !currencypkg.IsSupportedCurrency(currency) {
		return decimal.Zero, domain.NewCurrencyError(currency)
	}

	ledger, err := s.repo.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return ledger.Balance(currency), nil
}
