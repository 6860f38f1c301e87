package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/marche-portal/internal/domain"
	"github.com/m04kA/marche-portal/internal/slotengine"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается, если значения конфигурации некорректны
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Переменные окружения, перекрывающие секреты из файла
const (
	EnvDBPassword          = "DB_PASSWORD"
	EnvStripeSecretKey     = "STRIPE_SECRET_KEY"
	EnvStripeWebhookSecret = "STRIPE_WEBHOOK_SECRET"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Business  BusinessConfig  `toml:"business"`
	Stripe    StripeConfig    `toml:"stripe"`
	Sheets    SheetsConfig    `toml:"sheets"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig правила расписания
type BusinessConfig struct {
	OpenHour    int    `toml:"open_hour"`
	CloseHour   int    `toml:"close_hour"`
	StepMinutes int    `toml:"step_minutes"`
	Timezone    string `toml:"timezone"`
}

// StripeConfig настройки оплаты картой
type StripeConfig struct {
	Enabled       bool   `toml:"enabled"`
	SecretKey     string `toml:"secret_key"`
	WebhookSecret string `toml:"webhook_secret"`
	SuccessURL    string `toml:"success_url"`
	CancelURL     string `toml:"cancel_url"`
	Currency      string `toml:"currency"`
}

// SheetsConfig настройки выгрузки в Google Sheets
type SheetsConfig struct {
	Enabled         bool   `toml:"enabled"`
	CredentialsFile string `toml:"credentials_file"`
	SpreadsheetID   string `toml:"spreadsheet_id"`
	BookingsRange   string `toml:"bookings_range"`
	ExhibitorsRange string `toml:"exhibitors_range"`
	Timeout         int    `toml:"timeout"` // секунды
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "marche_portal",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "marche_portal",
		},
		Business: BusinessConfig{
			OpenHour:    domain.DefaultOpenHour,
			CloseHour:   domain.DefaultCloseHour,
			StepMinutes: domain.DefaultStepMinutes,
			Timezone:    domain.DefaultTimezone,
		},
		Stripe: StripeConfig{
			Currency: "jpy",
		},
		Sheets: SheetsConfig{
			BookingsRange:   "Bookings!A1",
			ExhibitorsRange: "Exhibitors!A1",
			Timeout:         10,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvStripeSecretKey); v != "" {
		c.Stripe.SecretKey = v
	}
	if v := os.Getenv(EnvStripeWebhookSecret); v != "" {
		c.Stripe.WebhookSecret = v
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if _, err := c.Business.Rules(); err != nil {
		return fmt.Errorf("%w: business: %v", ErrInvalidConfig, err)
	}

	if c.Stripe.Enabled {
		if c.Stripe.SecretKey == "" || c.Stripe.WebhookSecret == "" {
			return fmt.Errorf("%w: stripe.secret_key and stripe.webhook_secret are required", ErrInvalidConfig)
		}
		if c.Stripe.SuccessURL == "" || c.Stripe.CancelURL == "" {
			return fmt.Errorf("%w: stripe.success_url and stripe.cancel_url are required", ErrInvalidConfig)
		}
	}

	if c.Sheets.Enabled && (c.Sheets.CredentialsFile == "" || c.Sheets.SpreadsheetID == "") {
		return fmt.Errorf("%w: sheets.credentials_file and sheets.spreadsheet_id are required", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}

	return nil
}

// Rules собирает правила расписания для slotengine
func (b BusinessConfig) Rules() (slotengine.Rules, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return slotengine.Rules{}, fmt.Errorf("timezone %q: %v", b.Timezone, err)
	}

	rules := slotengine.Rules{
		Location:  loc,
		OpenHour:  b.OpenHour,
		CloseHour: b.CloseHour,
		Step:      time.Duration(b.StepMinutes) * time.Minute,
	}
	if err := rules.Validate(); err != nil {
		return slotengine.Rules{}, err
	}

	return rules, nil
}
