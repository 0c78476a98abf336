package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию приложения
type Config struct {
	Server   ServerConfig
	External ExternalConfig
	Gateway  GatewayConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
	App      AppConfig
}

// ServerConfig содержит настройки сервера
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ExternalConfig содержит настройки источника курсов ЦБ Турции
type ExternalConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// GatewayConfig описывает заголовок, которым шлюз помечает свои запросы
type GatewayConfig struct {
	Header string
	Host   string
}

// LoggingConfig содержит настройки логирования
type LoggingConfig struct {
	Level  string
	Format string
}

// MetricsConfig содержит настройки сервера метрик. Пустой адрес отключает его.
type MetricsConfig struct {
	Addr string
}

// AppConfig содержит общие настройки приложения
type AppConfig struct {
	ShutdownTimeout  time.Duration
	Timezone         string
	Location         *time.Location
	DomesticCurrency string
	Watchlist        []string
	HistoryExtraDays int
}

// Валюты, по которым считается /top-changes
var DefaultWatchlist = []string{
	"USD", "EUR", "GBP", "CHF", "CAD", "SEK", "NOK", "JPY", "KWD", "SAR",
	"DKK", "AUD", "CNY", "BHD", "AZN", "RUB",
}

// Load загружает конфигурацию из переменных окружения
// Сначала пытается загрузить .env файл, затем использует системные env vars
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файл не найден)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		External: ExternalConfig{
			BaseURL:   strings.TrimRight(getEnv("TCMB_BASE_URL", "https://www.tcmb.gov.tr/kurlar"), "/"),
			Timeout:   getDurationEnv("TCMB_TIMEOUT", 10*time.Second),
			UserAgent: getEnv("TCMB_USER_AGENT", "TCMB-Rates-Proxy/1.0"),
		},
		Gateway: GatewayConfig{
			Header: getEnv("GATEWAY_HEADER", "X-RapidAPI-Host"),
			Host:   getEnv("GATEWAY_HOST", "tcmb-exchange-rates-api-tcmb-kuru.p.rapidapi.com"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Addr: os.Getenv("METRICS_ADDR"),
		},
		App: AppConfig{
			ShutdownTimeout:  getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second),
			Timezone:         getEnv("APP_TIMEZONE", "Local"),
			DomesticCurrency: strings.ToUpper(getEnv("DOMESTIC_CURRENCY", "TRY")),
			Watchlist:        getStringSliceEnv("TOP_CHANGES_WATCHLIST", DefaultWatchlist),
			HistoryExtraDays: getIntEnv("HISTORY_EXTRA_DAYS", 10),
		},
	}
	if _, set := os.LookupEnv("METRICS_ADDR"); !set {
		cfg.Metrics.Addr = ":9090"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.App.Timezone, err)
	}
	cfg.App.Location = loc

	return cfg, nil
}

// Addr возвращает адрес, на котором слушает API
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv получает значение переменной окружения как duration или возвращает значение по умолчанию
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv получает значение переменной окружения как int или возвращает значение по умолчанию
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getStringSliceEnv получает значение переменной окружения как slice строк или возвращает значение по умолчанию
func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.ToUpper(strings.TrimSpace(item)); item != "" {
				result = append(result, item)
			}
		}
		return result
	}
	return defaultValue
}
