package config

import (
	"errors"
	"fmt"
	"time"

	// tzdata встраивается, чтобы schedule.timezone работал в контейнерах без zoneinfo
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig уровень логирования и файл (пустой путь - только stdout)
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig параметры расписания по умолчанию.
// Все бизнесы работают в одном часовом поясе.
type ScheduleConfig struct {
	Timezone                  string `toml:"timezone"`
	DefaultSlotMinutes        int    `toml:"default_slot_minutes"`
	DefaultMinNoticeMinutes   int    `toml:"default_min_notice_minutes"`
	DefaultAdvanceBookingDays int    `toml:"default_advance_booking_days"`

	location *time.Location
}

// Location часовой пояс бизнеса, доступен после Load
func (s ScheduleConfig) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// Load читает TOML файл, проставляет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return prepare(cfg)
}

// Parse как Load, но из строки
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return prepare(cfg)
}

func prepare(cfg *Config) (*Config, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule.timezone %q: %v", ErrInvalidConfig, cfg.Schedule.Timezone, err)
	}
	cfg.Schedule.location = loc

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "schedule_service"
	}

	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "UTC"
	}
	if c.Schedule.DefaultSlotMinutes == 0 {
		c.Schedule.DefaultSlotMinutes = 30
	}
	if c.Schedule.DefaultAdvanceBookingDays == 0 {
		c.Schedule.DefaultAdvanceBookingDays = 60
	}
}

// Validate проверяет значения после применения значений по умолчанию
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("%w: database.max_idle_conns exceeds max_open_conns", ErrInvalidConfig)
	}
	switch c.Logs.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logs.level %q", ErrInvalidConfig, c.Logs.Level)
	}
	if c.Schedule.DefaultSlotMinutes < 5 || c.Schedule.DefaultSlotMinutes > 480 {
		return fmt.Errorf("%w: schedule.default_slot_minutes %d", ErrInvalidConfig, c.Schedule.DefaultSlotMinutes)
	}
	if c.Schedule.DefaultMinNoticeMinutes < 0 {
		return fmt.Errorf("%w: schedule.default_min_notice_minutes %d", ErrInvalidConfig, c.Schedule.DefaultMinNoticeMinutes)
	}
	if c.Schedule.DefaultAdvanceBookingDays < 0 || c.Schedule.DefaultAdvanceBookingDays > 365 {
		return fmt.Errorf("%w: schedule.default_advance_booking_days %d", ErrInvalidConfig, c.Schedule.DefaultAdvanceBookingDays)
	}
	return nil
}
