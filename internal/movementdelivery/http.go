// Package movementdelivery manages delivery layer of movements.
package movementdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-arvc/coin-ledger/internal/domain"
	"github.com/go-arvc/coin-ledger/pkg/errorspkg"
	"github.com/go-arvc/coin-ledger/pkg/web"
)

// Service provides service layer interface needed by movement delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package movementdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateMovementParams) (domain.Movement, domain.SaleSignal, error)
	List(ctx context.Context) (domain.Ledger, error)
	Balance(ctx context.Context, currency string) (decimal.Decimal, error)
}

// Handler facilitates movement delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns movement handler.
func NewHandler(ms Service) Handler {
	return Handler{service: ms}
}

type createRequest struct {
	Kind         string `json:"kind" binding:"required,oneof=purchase trade sale"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	CurrencyFrom string `json:"currency_from" binding:"required,currency"`
	AmountFrom   string `json:"amount_from" binding:"required"`
	CurrencyTo   string `json:"currency_to" binding:"required,currency"`
	AmountTo     string `json:"amount_to" binding:"required"`
}

type createData struct {
	Movement   domain.Movement `json:"movement"`
	SaleSignal string          `json:"sale_signal,omitempty"`
}

// Create handles http request to commit a movement.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	movement, signal, err := h.service.Create(ctx, domain.CreateMovementParams{
		Kind:         domain.Kind(req.Kind),
		Date:         req.Date,
		Time:         req.Time,
		CurrencyFrom: req.CurrencyFrom,
		AmountFrom:   req.AmountFrom,
		CurrencyTo:   req.CurrencyTo,
		AmountTo:     req.AmountTo,
	})
	if err != nil {
		gctx.JSON(statusFromError(err), web.Error(maskInternal(err)))

		return
	}

	res := web.Response{
		Data: createData{
			Movement:   movement,
			SaleSignal: signal.String(),
		},
	}

	gctx.JSON(http.StatusCreated, res)
}

type dataMovements struct {
	Movements domain.Ledger `json:"movements"`
}

// List handles http request to list all committed movements.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	ledger, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataMovements{Movements: ledger}})
}

type balanceRequest struct {
	Currency string `uri:"currency" binding:"required,currency"`
}

type balanceData struct {
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

// Balance handles http request to get the ledger-derived balance of a currency.
func (h *Handler) Balance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req balanceRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	balance, err := h.service.Balance(ctx, req.Currency)
	if err != nil {
		gctx.JSON(statusFromError(err), web.Error(maskInternal(err)))

		return
	}

	res := web.Response{
		Data: balanceData{
			Currency: req.Currency,
			Balance:  balance,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

func statusFromError(err error) int {
	var (
		currencyErr *domain.CurrencyError
		amountErr   *domain.AmountError
		futureErr   *domain.FutureTimestampError
		balanceErr  *domain.InsufficientBalanceError
	)

	switch {
	case errors.As(err, &currencyErr),
		errors.As(err, &amountErr),
		errors.As(err, &futureErr),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, domain.ErrInvalidKind):
		return http.StatusBadRequest
	case errors.As(err, &balanceErr):
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

func maskInternal(err error) error {
	if statusFromError(err) == http.StatusInternalServerError {
		return errorspkg.ErrInternal
	}

	return err
}
