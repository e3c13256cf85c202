package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	API     APIConfig
	Pricing PricingConfig
	Order   OrderConfig
	Logging LoggingConfig
}
type ServerConfig struct {
	Port         string
	Host         string
	Mode         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}
type APIConfig struct {
	RatesAPIURL string
	Timeout     time.Duration
}

// PricingConfig - ступени маржи. Сумма строго больше Threshold получает MarginHigh.
type PricingConfig struct {
	Threshold   decimal.Decimal
	MarginLow   decimal.Decimal // для сумм <= Threshold
	MarginLarge decimal.Decimal // для сумм > Threshold
}
type OrderConfig struct {
	Service string // хост мессенджера, например wa.me
	Phone   string
}
type LoggingConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json" или "text"
}

// Метод для получения адреса сервера
func (s *ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
func getEnvAsDecimal(key string, defaultValue string) decimal.Decimal {
	fallback := decimal.RequireFromString(defaultValue)
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return fallback
	}
	return value
}

// Load читает .env (если есть) и переменные окружения.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️ .env not loaded (%v), using environment and defaults\n", err)
	}
	return FromEnv()
}

// FromEnv собирает конфигурацию только из окружения, без .env.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Host:         getEnv("HOST", "0.0.0.0"),
			Mode:         getEnv("GIN_MODE", "debug"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("REDIS_TTL", time.Minute),
		},
		API: APIConfig{
			RatesAPIURL: getEnv("RATES_API_URL", "https://open.er-api.com"),
			Timeout:     getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		},
		Pricing: PricingConfig{
			Threshold:   getEnvAsDecimal("MARGIN_THRESHOLD", "20200000"),
			MarginLow:   getEnvAsDecimal("MARGIN_LOW", "0.0235"),
			MarginLarge: getEnvAsDecimal("MARGIN_HIGH", "0.015"),
		},
		Order: OrderConfig{
			Service: getEnv("ORDER_SERVICE", "wa.me"),
			Phone:   getEnv("ORDER_PHONE", "628111532118"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}
