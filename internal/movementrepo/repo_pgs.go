// Package movementrepo manages repository layer of movements.
package movementrepo

import (
	"context"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-arvc/coin-ledger/internal/domain"
	"github.com/go-arvc/coin-ledger/pkg/dbpkg"
	"github.com/go-arvc/coin-ledger/pkg/errorspkg"
)

// RepoPGS facilitates movement repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns movement RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const appendQuery = `
INSERT INTO
    movements (date, time, currency_from, amount_from, currency_to, amount_to)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, date, time, currency_from, amount_from, currency_to, amount_to
`

// Append durably stores one validated movement and returns the stored row.
func (r *RepoPGS) Append(ctx context.Context, arg domain.Movement) (domain.Movement, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, appendQuery,
		arg.Date, arg.Time,
		arg.CurrencyFrom, arg.AmountFrom,
		arg.CurrencyTo, arg.AmountTo,
	)

	var m domain.Movement

	err := row.Scan(
		&m.ID,
		&m.Date,
		&m.Time,
		&m.CurrencyFrom,
		&m.AmountFrom,
		&m.CurrencyTo,
		&m.AmountTo,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "movements_amount_from_check":
				return m, &domain.AmountError{Amount: arg.AmountFrom}
			case "movements_amount_to_check":
				return m, &domain.AmountError{Amount: arg.AmountTo}
			}
		}

		return m, errorspkg.ErrInternal
	}

	return m, nil
}

const listQuery = `
SELECT
	id, date, time, currency_from, amount_from, currency_to, amount_to
FROM movements
ORDER BY date, time, id
`

// List returns every committed movement in chronological order.
func (r *RepoPGS) List(ctx context.Context) (domain.Ledger, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	ledger := domain.Ledger{}

	for rows.Next() {
		var m domain.Movement
		if err := rows.Scan(&m.ID, &m.Date, &m.Time, &m.CurrencyFrom, &m.AmountFrom, &m.CurrencyTo, &m.AmountTo); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		ledger = append(ledger, m)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return ledger, nil
}
