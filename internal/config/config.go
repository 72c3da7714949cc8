package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Драйверы хранилища
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Storage       StorageConfig       `toml:"storage"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	BusinessHours BusinessHoursConfig `toml:"business_hours"`
	Booking       BookingConfig       `toml:"booking"`
	Availability  AvailabilityConfig  `toml:"availability"`
	Events        EventsConfig        `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	User              string `toml:"user"`
	Password          string `toml:"password"`
	DBName            string `toml:"dbname"`
	SSLMode           string `toml:"sslmode"`
	MaxOpenConns      int    `toml:"max_open_conns"`
	MaxIdleConns      int    `toml:"max_idle_conns"`
	ConnMaxLifetime   int    `toml:"conn_max_lifetime"` // секунды
	LockTimeoutMs     int    `toml:"lock_timeout_ms"`
	TxMaxRetries      uint64 `toml:"tx_max_retries"`
	TxRetryBaseMs     int    `toml:"tx_retry_base_ms"`
	MigrationsEnabled bool   `toml:"migrations_enabled"`
}

// StorageConfig выбор хранилища
type StorageConfig struct {
	Driver   string `toml:"driver"`    // postgres | memory
	SeedDays int    `toml:"seed_days"` // демо-данные для memory
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessHoursConfig часы работы спа
type BusinessHoursConfig struct {
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	InitialStatus          string `toml:"initial_status"`
	AdvanceBookingDays     int    `toml:"advance_booking_days"`
	MinNoticeMinutes       int    `toml:"min_notice_minutes"`
	DefaultDurationMinutes int    `toml:"default_duration_minutes"`
}

// AvailabilityConfig настройки расчета доступности
type AvailabilityConfig struct {
	SlotStepMinutes        int `toml:"slot_step_minutes"`
	SummaryTTLSeconds      int `toml:"summary_ttl_seconds"`
	SlotsTTLSeconds        int `toml:"slots_ttl_seconds"`
	MaxRangeDays           int `toml:"max_range_days"`
	FixedSlotsPerStaff     int `toml:"fixed_slots_per_staff"`
	CleanupIntervalSeconds int `toml:"cleanup_interval_seconds"`
}

// EventsConfig публикация событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	AMQPURL  string `toml:"amqp_url"`
	Exchange string `toml:"exchange"`
}

// Load читает конфигурацию из TOML файла и переменных окружения
// .env загружается, если существует. Переменные окружения имеют приоритет над файлом
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию
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
			Host:              "localhost",
			Port:              5432,
			User:              "postgres",
			DBName:            "spa_booking",
			SSLMode:           "disable",
			MaxOpenConns:      25,
			MaxIdleConns:      5,
			ConnMaxLifetime:   300,
			LockTimeoutMs:     3000,
			TxMaxRetries:      3,
			TxRetryBaseMs:     20,
			MigrationsEnabled: true,
		},
		Storage: StorageConfig{
			Driver:   StorageDriverPostgres,
			SeedDays: 14,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "spa_booking_service",
		},
		BusinessHours: BusinessHoursConfig{
			Open:  domain.DefaultOpenTime,
			Close: domain.DefaultCloseTime,
		},
		Booking: BookingConfig{
			InitialStatus:          string(domain.DefaultInitialStatus),
			AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
			MinNoticeMinutes:       domain.DefaultMinNoticeMinutes,
			DefaultDurationMinutes: domain.DefaultServiceDurationMinutes,
		},
		Availability: AvailabilityConfig{
			SlotStepMinutes:        domain.DefaultSlotStepMinutes,
			SummaryTTLSeconds:      300,
			SlotsTTLSeconds:        60,
			MaxRangeDays:           domain.DefaultMaxRangeDays,
			CleanupIntervalSeconds: 120,
		},
		Events: EventsConfig{
			Exchange: "spa.bookings",
		},
	}
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Events.AMQPURL, "AMQP_URL")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	return setInt(&c.Server.HTTPPort, "HTTP_PORT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver=%q", ErrInvalidConfig, c.Storage.Driver)
	}

	open, err := c.BusinessHours.OpenTime()
	if err != nil {
		return fmt.Errorf("%w: business_hours.open: %v", ErrInvalidConfig, err)
	}
	closeTime, err := c.BusinessHours.CloseTime()
	if err != nil {
		return fmt.Errorf("%w: business_hours.close: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(closeTime) {
		return fmt.Errorf("%w: business_hours.open must be before close", ErrInvalidConfig)
	}

	if !domain.BookingStatus(c.Booking.InitialStatus).IsValid() {
		return fmt.Errorf("%w: booking.initial_status=%q", ErrInvalidConfig, c.Booking.InitialStatus)
	}
	if c.Booking.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("%w: booking.default_duration_minutes must be positive", ErrInvalidConfig)
	}
	if c.Availability.SlotStepMinutes <= 0 {
		return fmt.Errorf("%w: availability.slot_step_minutes must be positive", ErrInvalidConfig)
	}
	if c.Availability.MaxRangeDays <= 0 {
		return fmt.Errorf("%w: availability.max_range_days must be positive", ErrInvalidConfig)
	}

	if c.Events.Enabled {
		if _, err := url.Parse(c.Events.AMQPURL); err != nil || c.Events.AMQPURL == "" {
			return fmt.Errorf("%w: events.amqp_url is required when events are enabled", ErrInvalidConfig)
		}
		if c.Events.Exchange == "" {
			return fmt.Errorf("%w: events.exchange is required when events are enabled", ErrInvalidConfig)
		}
	}
	return nil
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// LockTimeout таймаут ожидания блокировки строк
func (d DatabaseConfig) LockTimeout() time.Duration {
	return time.Duration(d.LockTimeoutMs) * time.Millisecond
}

// RetryBase начальная задержка повтора сериализуемой транзакции
func (d DatabaseConfig) RetryBase() time.Duration {
	return time.Duration(d.TxRetryBaseMs) * time.Millisecond
}

// OpenTime время открытия
func (b BusinessHoursConfig) OpenTime() (types.TimeString, error) {
	return types.NewTimeStringFromString(b.Open)
}

// CloseTime время закрытия
func (b BusinessHoursConfig) CloseTime() (types.TimeString, error) {
	return types.NewTimeStringFromString(b.Close)
}

// SummaryTTL время жизни сводки в кэше
func (a AvailabilityConfig) SummaryTTL() time.Duration {
	return time.Duration(a.SummaryTTLSeconds) * time.Second
}

// SlotsTTL время жизни слотов в кэше
func (a AvailabilityConfig) SlotsTTL() time.Duration {
	return time.Duration(a.SlotsTTLSeconds) * time.Second
}

// CleanupInterval период очистки просроченных записей кэша
func (a AvailabilityConfig) CleanupInterval() time.Duration {
	return time.Duration(a.CleanupIntervalSeconds) * time.Second
}
