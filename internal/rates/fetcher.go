package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wartimekillers/snapxchange/internal/config"
	"github.com/wartimekillers/snapxchange/internal/metrics"
	"github.com/wartimekillers/snapxchange/internal/model"
	"github.com/wartimekillers/snapxchange/internal/pricing"
)

// RateCache - кеш базовых курсов (pkg/cache.RedisClient)
type RateCache interface {
	GetBaseRate(ctx context.Context, from, to string) (decimal.Decimal, error)
	SetBaseRate(ctx context.Context, from, to string, rate decimal.Decimal) error
}

// Source отдает базовые кросс-курсы VND/IDR.
type Source interface {
	Fetch(ctx context.Context) (pricing.BaseRates, error)
}

type Fetcher struct {
	baseURL    string
	httpClient *http.Client
	cache      RateCache
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

type Option func(*Fetcher)

// WithCache включает кеш. nil игнорируется.
func WithCache(c RateCache) Option {
	return func(f *Fetcher) { f.cache = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Fetcher) { f.metrics = m }
}

func NewFetcher(cfg config.APIConfig, logger *zap.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:    strings.TrimRight(cfg.RatesAPIURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// latestResponse - ответ open.er-api.com /v6/latest/{base}
type latestResponse struct {
	Result   string                     `json:"result"`
	BaseCode string                     `json:"base_code"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

// Fetch запрашивает оба курса параллельно и ждет оба результата.
func (f *Fetcher) Fetch(ctx context.Context) (pricing.BaseRates, error) {
	var out pricing.BaseRates
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rate, err := f.crossRate(gctx, model.VND, model.IDR)
		out.VNDToIDR = rate
		return err
	})
	g.Go(func() error {
		rate, err := f.crossRate(gctx, model.IDR, model.VND)
		out.IDRToVND = rate
		return err
	})
	if err := g.Wait(); err != nil {
		return pricing.BaseRates{}, err
	}
	return out, nil
}

func (f *Fetcher) crossRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if f.cache != nil {
		rate, err := f.cache.GetBaseRate(ctx, from, to)
		if err == nil {
			f.metrics.Fetch("cache", "ok")
			f.logger.Debug("Cache hit",
				zap.String("from", from),
				zap.String("to", to),
				zap.String("rate", rate.String()),
			)
			return rate, nil
		}
		f.metrics.Fetch("cache", "miss")
		f.logger.Debug("Cache miss",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err),
		)
	}

	rate, err := f.FetchRateFromAPI(ctx, from, to)
	if err != nil {
		f.metrics.Fetch("api", "error")
		return decimal.Zero, err
	}
	f.metrics.Fetch("api", "ok")

	if f.cache != nil {
		if err := f.cache.SetBaseRate(ctx, from, to, rate); err != nil {
			f.logger.Warn("Failed to cache rate (non-critical)",
				zap.String("from", from),
				zap.String("to", to),
				zap.Error(err),
			)
		}
	}
	return rate, nil
}

// FetchRateFromAPI берет курс from->to из ответа для базы from.
func (f *Fetcher) FetchRateFromAPI(ctx context.Context, from, to string) (decimal.Decimal, error) {
	apiURL := fmt.Sprintf("%s/v6/latest/%s", f.baseURL, from)

	f.logger.Debug("Fetching rate from rates API",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("url", apiURL),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			f.logger.Warn("API request canceled",
				zap.String("from", from),
				zap.String("to", to),
			)
			return decimal.Zero, fmt.Errorf("API request canceled: %w", ctx.Err())
		}
		f.logger.Error("API request failed",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err),
		)
		return decimal.Zero, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		f.logger.Error("API returned error status",
			zap.String("from", from),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(data)),
		)
		return decimal.Zero, fmt.Errorf("API returned status %d: %s", resp.StatusCode, resp.Status)
	}

	var apiResponse latestResponse
	if err := json.Unmarshal(data, &apiResponse); err != nil {
		f.logger.Error("Invalid JSON from rates API",
			zap.String("from", from),
			zap.String("response", string(data)),
			zap.Error(err),
		)
		return decimal.Zero, fmt.Errorf("invalid JSON response: %w", err)
	}

	if apiResponse.Result != "success" {
		return decimal.Zero, fmt.Errorf("rates API error for %s: %q", from, apiResponse.Result)
	}

	rate, exists := apiResponse.Rates[to]
	if !exists {
		return decimal.Zero, fmt.Errorf("currency %s not found in API response", to)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive rate %s for %s to %s", rate, from, to)
	}

	f.logger.Debug("Rate successfully fetched",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("rate", rate.String()),
	)
	return rate, nil
}

var _ Source = (*Fetcher)(nil)
