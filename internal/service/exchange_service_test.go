package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wartimekillers/snapxchange/internal/config"
	"github.com/wartimekillers/snapxchange/internal/format"
	"github.com/wartimekillers/snapxchange/internal/model"
	"github.com/wartimekillers/snapxchange/internal/order"
	"github.com/wartimekillers/snapxchange/internal/pricing"
)

type mockSource struct {
	rates pricing.BaseRates
	err   error
	calls int
}

func (m *mockSource) Fetch(ctx context.Context) (pricing.BaseRates, error) {
	m.calls++
	if m.err != nil {
		return pricing.BaseRates{}, m.err
	}
	return m.rates, nil
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(src *mockSource) *ExchangeService {
	return NewExchangeService(
		src,
		pricing.NewPricer(config.PricingConfig{
			Threshold:   d("20200000"),
			MarginLow:   d("0.0235"),
			MarginLarge: d("0.015"),
		}),
		order.NewBuilder(config.OrderConfig{Service: "wa.me", Phone: "628111532118"}),
		nil,
		zap.NewNop(),
	)
}

func TestExchangeService_Convert_LargeAmount(t *testing.T) {
	src := &mockSource{rates: pricing.BaseRates{VNDToIDR: d("1630.2"), IDRToVND: d("0.00061")}}
	svc := newTestService(src)

	conv, err := svc.Convert(context.Background(), model.VNDToIDR, "25,000,000")

	require.NoError(t, err)
	assert.Equal(t, "25000000", conv.Raw)
	assert.Equal(t, "25,000,000", conv.Amount)
	assert.Equal(t, "1605.747", conv.Rate.String())
	assert.Equal(t, "40,143,675,000", conv.Converted)
	assert.False(t, conv.Stale)
}

func TestExchangeService_Convert_SmallAmountUsesHigherMargin(t *testing.T) {
	src := &mockSource{rates: pricing.BaseRates{VNDToIDR: d("0.62"), IDRToVND: d("1.6")}}
	svc := newTestService(src)

	conv, err := svc.Convert(context.Background(), model.IDRToVND, "1,000")

	require.NoError(t, err)
	assert.True(t, d("1.5624").Equal(conv.Rate))
	assert.Equal(t, "1,562", conv.Converted)
}

func TestExchangeService_Convert_InvalidInput(t *testing.T) {
	src := &mockSource{rates: pricing.BaseRates{VNDToIDR: d("1"), IDRToVND: d("1")}}
	svc := newTestService(src)

	_, err := svc.Convert(context.Background(), model.VNDToIDR, "1000a")

	assert.ErrorIs(t, err, format.ErrInvalidAmount)
	assert.Equal(t, 0, src.calls, "rates must not be fetched for rejected input")
}

func TestExchangeService_Convert_EmptyInput(t *testing.T) {
	src := &mockSource{rates: pricing.BaseRates{VNDToIDR: d("0.62"), IDRToVND: d("1.6")}}
	svc := newTestService(src)

	conv, err := svc.Convert(context.Background(), model.VNDToIDR, "")

	require.NoError(t, err)
	assert.Equal(t, "", conv.Converted)
	assert.True(t, d("0.60543").Equal(conv.Rate))
}

func TestExchangeService_StaleRatesAfterFailure(t *testing.T) {
	src := &mockSource{rates: pricing.BaseRates{VNDToIDR: d("0.62"), IDRToVND: d("1.6")}}
	svc := newTestService(src)

	_, err := svc.Rates(context.Background(), decimal.Zero)
	require.NoError(t, err)

	src.err = errors.New("network down")
	src.rates = pricing.BaseRates{VNDToIDR: d("99"), IDRToVND: d("99")}

	quote, err := svc.Rates(context.Background(), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, quote.Stale)
	assert.True(t, d("0.60543").Equal(quote.VNDToIDR.Buy), "prior rates must be kept")
}

func TestExchangeService_NoRatesEver(t *testing.T) {
	svc := newTestService(&mockSource{err: errors.New("network down")})

	_, err := svc.Rates(context.Background(), decimal.Zero)

	assert.ErrorIs(t, err, ErrRatesUnavailable)
}

func TestExchangeService_Order(t *testing.T) {
	src := &mockSource{rates: pricing.BaseRates{VNDToIDR: d("1630.2"), IDRToVND: d("0.00061")}}
	svc := newTestService(src)

	link, err := svc.Order(context.Background(), model.VNDToIDR, "25000000")

	require.NoError(t, err)
	assert.Equal(t, "Hi, I want to exchange 25,000,000 VND to IDR. Estimated: 40,143,675,000 IDR", link.Message)
	assert.Contains(t, link.URL, "https://wa.me/628111532118?text=Hi%2C%20I%20want")
}

func TestExchangeService_Order_EmptyAmount(t *testing.T) {
	src := &mockSource{rates: pricing.BaseRates{VNDToIDR: d("1"), IDRToVND: d("1")}}
	svc := newTestService(src)

	_, err := svc.Order(context.Background(), model.VNDToIDR, "")

	assert.ErrorIs(t, err, ErrEmptyAmount)
}
