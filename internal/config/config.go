package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Broker   BrokerConfig   `toml:"broker"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres | sqlite3
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"` // файл БД для sqlite3
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite3" {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", d.Path)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	Timezone              string  `toml:"timezone"`
	WorkStartHour         int     `toml:"work_start_hour"`
	WorkEndHour           int     `toml:"work_end_hour"`
	SlotDurationMinutes   int     `toml:"slot_duration_minutes"`
	PaymentTimeoutMinutes int     `toml:"payment_timeout_minutes"`
	SweepIntervalSeconds  int     `toml:"sweep_interval_seconds"`
	SweepInitialDelaySecs int     `toml:"sweep_initial_delay_seconds"`
	ReminderLeadMinutes   int     `toml:"reminder_lead_minutes"`
	HorizonDays           int     `toml:"horizon_days"`
	DefaultPrice          float64 `toml:"default_price"`
}

// Schedule сетка слотов
func (b BookingConfig) Schedule() domain.Schedule {
	return domain.Schedule{
		StartHour:   b.WorkStartHour,
		EndHour:     b.WorkEndHour,
		SlotMinutes: b.SlotDurationMinutes,
	}
}

// Location часовой пояс школы
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(b.Timezone)
}

func (b BookingConfig) PaymentTimeout() time.Duration {
	return time.Duration(b.PaymentTimeoutMinutes) * time.Minute
}

func (b BookingConfig) SweepInterval() time.Duration {
	return time.Duration(b.SweepIntervalSeconds) * time.Second
}

func (b BookingConfig) SweepInitialDelay() time.Duration {
	return time.Duration(b.SweepInitialDelaySecs) * time.Second
}

func (b BookingConfig) ReminderLead() time.Duration {
	return time.Duration(b.ReminderLeadMinutes) * time.Minute
}

type BrokerConfig struct {
	Enabled         bool   `toml:"enabled"`
	URL             string `toml:"url"`
	EventsExchange  string `toml:"events_exchange"`
	ReminderRouting string `toml:"reminder_routing_key"`
}

// Load читает .env (если есть), TOML-файл и переменные окружения
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default значения по умолчанию; TOML перекрывает только заданные поля
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			Path:            "booking.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "music-booking-service",
		},
		Booking: BookingConfig{
			WorkStartHour:         domain.DefaultWorkStartHour,
			WorkEndHour:           domain.DefaultWorkEndHour,
			SlotDurationMinutes:   domain.DefaultSlotDurationMinutes,
			PaymentTimeoutMinutes: int(domain.DefaultPaymentTimeout / time.Minute),
			SweepIntervalSeconds:  int(domain.DefaultSweepInterval / time.Second),
			SweepInitialDelaySecs: int(domain.DefaultSweepInitialDelay / time.Second),
			ReminderLeadMinutes:   int(domain.DefaultReminderLead / time.Minute),
			HorizonDays:           domain.DefaultHorizonDays,
			DefaultPrice:          domain.FallbackPrice,
		},
		Broker: BrokerConfig{
			EventsExchange:  "booking.events",
			ReminderRouting: "notification.reminder",
		},
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite3" {
		return fmt.Errorf("database.driver must be postgres or sqlite3, got %q", c.Database.Driver)
	}
	if err := c.Booking.Schedule().Validate(); err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	if c.Booking.PaymentTimeoutMinutes <= 0 {
		return errors.New("booking.payment_timeout_minutes must be positive")
	}
	if c.Booking.SweepIntervalSeconds <= 0 {
		return errors.New("booking.sweep_interval_seconds must be positive")
	}
	if c.Booking.HorizonDays <= 0 {
		return errors.New("booking.horizon_days must be positive")
	}
	if c.Booking.DefaultPrice < 0 {
		return errors.New("booking.default_price must not be negative")
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("booking.timezone: %w", err)
	}
	if c.Broker.Enabled && c.Broker.URL == "" {
		return errors.New("broker.url is required when broker is enabled")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DB_PORT: %w", err)
		}
		cfg.Database.Port = port
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.Broker.URL = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		cfg.Server.HTTPPort = port
	}
	return nil
}
