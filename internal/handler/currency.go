package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wartimekillers/snapxchange/internal/format"
	"github.com/wartimekillers/snapxchange/internal/model"
	"github.com/wartimekillers/snapxchange/internal/service"
)

type CurrencyHandler struct {
	exchangeService service.ExchangeServiceInterface
}

func NewCurrencyHandler(exchangeService service.ExchangeServiceInterface) *CurrencyHandler {
	return &CurrencyHandler{
		exchangeService: exchangeService,
	}
}

// abort переводит ошибки сервиса в HTTP статусы
func abort(c *gin.Context, err error) {
	switch {
	case errors.Is(err, format.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidDirection),
		errors.Is(err, service.ErrEmptyAmount):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error:   "Invalid request",
			Details: err.Error(),
		})
	case errors.Is(err, service.ErrRatesUnavailable):
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "Rates unavailable",
			Details: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "Conversion failed",
			Details: err.Error(),
		})
	}
}

func bindConvert(c *gin.Context) (model.Direction, string, error) {
	var req model.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return model.VNDToIDR, "", err
	}
	d, err := model.ParseDirection(req.Direction)
	if err != nil {
		return model.VNDToIDR, "", err
	}
	return d, req.Amount, nil
}

func (h *CurrencyHandler) Rates(c *gin.Context) {
	raw, err := format.Accept(c.Query("amount"))
	if err != nil {
		abort(c, err)
		return
	}
	amount := decimal.Zero
	if raw != "" {
		amount = decimal.RequireFromString(raw)
	}
	quote, err := h.exchangeService.Rates(c.Request.Context(), amount)
	if err != nil {
		abort(c, err)
		return
	}
	margin, _ := quote.Margin.Float64()
	c.JSON(http.StatusOK, model.RatesResponse{
		Margin:   margin,
		VNDToIDR: band(quote.VNDToIDR.Buy, quote.VNDToIDR.Sell),
		IDRToVND: band(quote.IDRToVND.Buy, quote.IDRToVND.Sell),
		Stale:    quote.Stale,
	})
}

func band(buy, sell decimal.Decimal) model.BandResponse {
	b, _ := buy.Float64()
	s, _ := sell.Float64()
	return model.BandResponse{Buy: b, Sell: s}
}

func (h *CurrencyHandler) Convert(c *gin.Context) {
	d, input, err := bindConvert(c)
	if err != nil {
		abort(c, err)
		return
	}
	conv, err := h.exchangeService.Convert(c.Request.Context(), d, input)
	if err != nil {
		abort(c, err)
		return
	}
	rate, _ := conv.Rate.Float64()
	c.JSON(http.StatusOK, model.ConvertResponse{
		Direction: d.Slug(),
		From:      d.From(),
		To:        d.To(),
		Raw:       conv.Raw,
		Amount:    conv.Amount,
		Rate:      rate,
		Converted: conv.Converted,
		Stale:     conv.Stale,
	})
}

func (h *CurrencyHandler) Order(c *gin.Context) {
	d, input, err := bindConvert(c)
	if err != nil {
		abort(c, err)
		return
	}
	link, err := h.exchangeService.Order(c.Request.Context(), d, input)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, model.OrderResponse{
		Message: link.Message,
		URL:     link.URL,
	})
}

// OrderRedirect отправляет браузер сразу в чат
func (h *CurrencyHandler) OrderRedirect(c *gin.Context) {
	d, input, err := bindConvert(c)
	if err != nil {
		abort(c, err)
		return
	}
	link, err := h.exchangeService.Order(c.Request.Context(), d, input)
	if err != nil {
		abort(c, err)
		return
	}
	c.Redirect(http.StatusFound, link.URL)
}
