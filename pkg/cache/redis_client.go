package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wartimekillers/snapxchange/internal/config"
)

var ErrNotFound = errors.New("rate not found in cache")

type RedisClient struct {
	client *redis.Client
	config config.RedisConfig
	logger *zap.Logger
}

// NewRedisClient создает новый Redis клиент
func NewRedisClient(cfg config.RedisConfig, logger *zap.Logger) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ Connected to Redis",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
	)

	return &RedisClient{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

func rateKey(from, to string) string {
	return fmt.Sprintf("rate:%s:%s", from, to)
}

// GetBaseRate получает базовый курс из Redis
func (r *RedisClient) GetBaseRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := rateKey(from, to)
	valueStr, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, fmt.Errorf("%w: %s to %s", ErrNotFound, from, to)
		}
		r.logger.Error("Redis GET error",
			zap.String("key", key),
			zap.Error(err))
		return decimal.Zero, err
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		r.logger.Error("Redis GET error",
			zap.String("key", key),
			zap.Error(err))
		return decimal.Zero, fmt.Errorf("invalid exchange rate format: %w", err)
	}
	return value, nil
}

// SetBaseRate сохраняет базовый курс с TTL из конфигурации
func (r *RedisClient) SetBaseRate(ctx context.Context, from, to string, rate decimal.Decimal) error {
	key := rateKey(from, to)
	err := r.client.Set(ctx, key, rate.String(), r.config.TTL).Err()
	if err != nil {
		r.logger.Error("Redis SET error",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("caching error: %w", err)
	}
	r.logger.Debug("Exchange rate saved to Redis",
		zap.String("key", key),
		zap.String("rate", rate.String()),
		zap.Duration("ttl", r.config.TTL),
	)
	return nil
}

// DeleteBaseRate удаляет курс из Redis
func (r *RedisClient) DeleteBaseRate(ctx context.Context, from, to string) error {
	key := rateKey(from, to)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete exchange rate",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete rate: %w", err)
	}
	return nil
}

// HealthCheck проверяет доступность Redis
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	err := r.client.Ping(ctx).Err()
	if err != nil {
		r.logger.Warn("Redis health check failed",
			zap.Error(err),
		)
		return fmt.Errorf("redis health check failed: %w", err)
	}

	return nil
}

// Close закрывает подключение к Redis
func (r *RedisClient) Close() {
	if r == nil || r.client == nil {
		return
	}
	r.client.Close()
}
