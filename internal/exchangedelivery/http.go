// Package exchangedelivery manages delivery layer of exchange rate lookups.
package exchangedelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-arvc/coin-ledger/internal/domain"
	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
	"github.com/go-arvc/coin-ledger/pkg/errorspkg"
	"github.com/go-arvc/coin-ledger/pkg/web"
)

// Service provides service layer interface needed by exchange delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package exchangedelivery
type Service interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
	Table(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// Handler facilitates exchange delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns exchange handler.
func NewHandler(es Service) Handler {
	return Handler{service: es}
}

type convertRequest struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,currency"`
	To     string `form:"to" binding:"required,currency"`
}

type convertData struct {
	CurrencyFrom string          `json:"currency_from"`
	AmountFrom   decimal.Decimal `json:"amount_from"`
	CurrencyTo   string          `json:"currency_to"`
	AmountTo     decimal.Decimal `json:"amount_to"`
}

// Convert handles http request to convert an amount between currencies at
// the live market rate.
func (h *Handler) Convert(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req convertRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
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

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	converted, err := h.service.Convert(ctx, amount, req.From, req.To)
	if err != nil {
		gctx.JSON(statusFromError(err), web.Error(maskInternal(err)))

		return
	}

	res := web.Response{
		Data: convertData{
			CurrencyFrom: req.From,
			AmountFrom:   amount,
			CurrencyTo:   req.To,
			AmountTo:     converted,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type tableRequest struct {
	Base string `form:"base" binding:"omitempty,currency"`
}

type tableData struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Table handles http request to list rates of all supported currencies
// against a base, defaulting to the settlement currency.
func (h *Handler) Table(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req tableRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
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

	if req.Base == "" {
		req.Base = currencypkg.Settlement
	}

	rates, err := h.service.Table(ctx, req.Base)
	if err != nil {
		gctx.JSON(statusFromError(err), web.Error(maskInternal(err)))

		return
	}

	res := web.Response{
		Data: tableData{
			Base:  req.Base,
			Rates: rates,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

func statusFromError(err error) int {
	var (
		currencyErr *domain.CurrencyError
		amountErr   *domain.AmountError
		rateErr     *domain.RateUnavailableError
	)

	switch {
	case errors.As(err, &currencyErr), errors.As(err, &amountErr):
		return http.StatusBadRequest
	case errors.As(err, &rateErr):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func maskInternal(err error) error {
	if statusFromError(err) == http.StatusInternalServerError {
		return errorspkg.ErrInternal
	}

	return err
}
