package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "HOST", "REDIS_ENABLED", "RATES_API_URL",
		"MARGIN_THRESHOLD", "MARGIN_LOW", "MARGIN_HIGH", "ORDER_SERVICE", "ORDER_PHONE"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "https://open.er-api.com", cfg.API.RatesAPIURL)
	assert.Equal(t, "20200000", cfg.Pricing.Threshold.String())
	assert.Equal(t, "0.0235", cfg.Pricing.MarginLow.String())
	assert.Equal(t, "0.015", cfg.Pricing.MarginLarge.String())
	assert.Equal(t, "wa.me", cfg.Order.Service)
	assert.Equal(t, "628111532118", cfg.Order.Phone)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_TTL", "5m")
	t.Setenv("MARGIN_HIGH", "0.01")
	t.Setenv("MARGIN_LOW", "not-a-number")
	t.Setenv("REDIS_DB", "x")

	cfg := FromEnv()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "0.01", cfg.Pricing.MarginLarge.String())
	assert.Equal(t, "0.0235", cfg.Pricing.MarginLow.String(), "invalid value falls back to default")
	assert.Equal(t, 0, cfg.Redis.DB)
}
