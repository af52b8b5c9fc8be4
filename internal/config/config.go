package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// EnvPrefix namespaces every environment variable the gateway reads.
// PAYMENTS_BANK__ADDRESS maps to bank.address.
const EnvPrefix = "PAYMENTS_"

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Bank      BankConfig      `koanf:"bank"`
	Retry     RetryConfig     `koanf:"retry"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Logger    LoggerConfig    `koanf:"logger"`
	Worker    WorkerConfig    `koanf:"worker"`
	Health    HealthConfig    `koanf:"health"`
}

type WorkerConfig struct {
	Enabled   bool          `koanf:"enabled"`
	Interval  time.Duration `koanf:"interval" validate:"required"`
	BatchSize int           `koanf:"batch_size" validate:"required,min=1"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
}

type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=memory postgres redis"`
	// PersistTimeout bounds the save that follows an authorization, which is
	// detached from the caller's cancellation.
	PersistTimeout time.Duration `koanf:"persist_timeout" validate:"required"`
}

// DatabaseConfig is checked in Validate, only when the postgres store is selected.
type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	// TTL of zero keeps payments forever.
	TTL time.Duration `koanf:"ttl"`
}

type BankConfig struct {
	Address     string        `koanf:"address" validate:"required,url"`
	ConnTimeout time.Duration `koanf:"conn_timeout" validate:"required"`
}

// RetryConfig governs authorize retries. MaxRetries defaults to zero because
// a repeated authorize can double charge.
type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxDelay   time.Duration `koanf:"max_delay"`
	MaxRetries int           `koanf:"max_retries" validate:"min=0"`
}

// KafkaConfig is optional. Without brokers no orphan events are published.
type KafkaConfig struct {
	Brokers      []string      `koanf:"brokers"`
	OrphanTopic  string        `koanf:"orphan_topic"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type TelemetryConfig struct {
	ServiceName  string `koanf:"service_name" validate:"required"`
	OTLPEndpoint string `koanf:"otlp_endpoint" validate:"omitempty,url"`
}

type HealthConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "development",
		"server.port":                 "8080",
		"server.read_timeout":         "10s",
		"server.write_timeout":        "30s",
		"server.idle_timeout":         "60s",
		"server.request_timeout":      "25s",
		"store.driver":                StoreMemory,
		"store.persist_timeout":       "5s",
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"redis.addr":                  "localhost:6379",
		"bank.conn_timeout":           "10s",
		"retry.base_delay":            "200ms",
		"retry.max_delay":             "2s",
		"retry.max_retries":           0,
		"kafka.orphan_topic":          "payments.orphaned-authorizations",
		"kafka.write_timeout":         "5s",
		"telemetry.service_name":      "PaymentsGateway",
		"logger.level":                "info",
		"logger.format":               "json",
		"worker.enabled":              false,
		"worker.interval":             "30s",
		"worker.batch_size":           50,
		"health.cache_ttl":            "5s",
	}
}

// LoadConfig layers defaults, an optional YAML file and PAYMENTS_ environment
// variables, then validates the result. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load default config", "error", err)
		return nil, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			logger.Error("failed to load config file", "path", path, "error", err)
			return nil, err
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs the struct tags and the checks that depend on the selected store.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Store.Driver {
	case StorePostgres:
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			return errors.New("database host, user and name are required for the postgres store")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis addr is required for the redis store")
		}
	}

	if len(c.Kafka.Brokers) > 0 && c.Kafka.OrphanTopic == "" {
		return errors.New("kafka orphan_topic is required when brokers are set")
	}

	// A request that times out while its save is still running reports a
	// failure for a payment that may end up recorded as authorized.
	if budget := c.authorizeBudget(); c.Server.RequestTimeout <= budget {
		return fmt.Errorf("server request_timeout %s must exceed %s: bank conn_timeout x (retry max_retries+1) + retry max_delay x max_retries + store persist_timeout",
			c.Server.RequestTimeout, budget)
	}

	return nil
}

// authorizeBudget is the longest an authorization can run: every bank attempt
// at its connection timeout, the backoff between attempts, then the save.
func (c *Config) authorizeBudget() time.Duration {
	retries := time.Duration(c.Retry.MaxRetries)
	return c.Bank.ConnTimeout*(retries+1) + c.Retry.MaxDelay*retries + c.Store.PersistTimeout
}
