package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wartimekillers/snapxchange/internal/convert"
	"github.com/wartimekillers/snapxchange/internal/format"
	"github.com/wartimekillers/snapxchange/internal/metrics"
	"github.com/wartimekillers/snapxchange/internal/model"
	"github.com/wartimekillers/snapxchange/internal/order"
	"github.com/wartimekillers/snapxchange/internal/pricing"
	"github.com/wartimekillers/snapxchange/internal/rates"
)

var (
	ErrRatesUnavailable = errors.New("exchange rates unavailable")
	ErrEmptyAmount      = errors.New("amount is required")
)

// ExchangeServiceInterface - интерфейс для тестирования хендлеров
type ExchangeServiceInterface interface {
	Rates(ctx context.Context, amount decimal.Decimal) (Quote, error)
	Convert(ctx context.Context, d model.Direction, input string) (Conversion, error)
	Order(ctx context.Context, d model.Direction, input string) (OrderLink, error)
}

// Quote - котировка и признак того, что курсы взяты из прошлого успешного запроса
type Quote struct {
	pricing.Quote
	Stale bool
}

type Conversion struct {
	Direction model.Direction
	Raw       string
	Amount    string // Raw с разделителями
	Rate      decimal.Decimal
	Converted string
	Stale     bool
}

type OrderLink struct {
	Message string
	URL     string
}

type ExchangeService struct {
	source  rates.Source
	pricer  *pricing.Pricer
	orders  *order.Builder
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu   sync.RWMutex
	last *pricing.BaseRates
}

func NewExchangeService(source rates.Source, pricer *pricing.Pricer, orders *order.Builder, m *metrics.Metrics, logger *zap.Logger) *ExchangeService {
	return &ExchangeService{
		source:  source,
		pricer:  pricer,
		orders:  orders,
		metrics: m,
		logger:  logger,
	}
}

// baseRates запрашивает свежие курсы. При ошибке курсы не меняются,
// отдаются последние известные.
func (s *ExchangeService) baseRates(ctx context.Context) (pricing.BaseRates, bool, error) {
	fresh, err := s.source.Fetch(ctx)
	if err == nil {
		s.mu.Lock()
		s.last = &fresh
		s.mu.Unlock()
		return fresh, false, nil
	}

	s.logger.Error("Error fetching rates", zap.Error(err))

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return pricing.BaseRates{}, false, fmt.Errorf("%w: %v", ErrRatesUnavailable, err)
	}
	s.metrics.StaleQuote()
	return *s.last, true, nil
}

func (s *ExchangeService) Rates(ctx context.Context, amount decimal.Decimal) (Quote, error) {
	base, stale, err := s.baseRates(ctx)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Quote: s.pricer.Quote(base, amount), Stale: stale}, nil
}

func (s *ExchangeService) Convert(ctx context.Context, d model.Direction, input string) (Conversion, error) {
	raw, err := format.Accept(input)
	if err != nil {
		return Conversion{}, err
	}
	amount := decimal.Zero
	if raw != "" {
		amount = decimal.RequireFromString(raw)
	}

	quote, err := s.Rates(ctx, amount)
	if err != nil {
		return Conversion{}, err
	}
	rate := quote.For(d).Buy
	result := Conversion{
		Direction: d,
		Raw:       raw,
		Amount:    format.Group(raw),
		Rate:      rate,
		Converted: convert.Convert(raw, rate),
		Stale:     quote.Stale,
	}

	s.logger.Info("Currency conversion completed",
		zap.String("direction", d.String()),
		zap.String("amount", raw),
		zap.String("margin", quote.Margin.String()),
		zap.String("rate", rate.String()),
		zap.String("converted", result.Converted),
		zap.Bool("stale", quote.Stale),
	)
	return result, nil
}

func (s *ExchangeService) Order(ctx context.Context, d model.Direction, input string) (OrderLink, error) {
	conv, err := s.Convert(ctx, d, input)
	if err != nil {
		return OrderLink{}, err
	}
	if conv.Raw == "" {
		return OrderLink{}, ErrEmptyAmount
	}
	msg := order.Message(conv.Amount, d, conv.Converted)
	return OrderLink{Message: msg, URL: s.orders.Link(msg)}, nil
}

var _ ExchangeServiceInterface = (*ExchangeService)(nil)
