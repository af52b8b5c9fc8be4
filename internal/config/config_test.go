package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults when only the bank address is set", func(t *testing.T) {
		t.Setenv("PAYMENTS_BANK__ADDRESS", "http://localhost:8080")

		cfg, err := config.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.Bank.Address)
		assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
		assert.Equal(t, 0, cfg.Retry.MaxRetries)
		assert.Equal(t, 10*time.Second, cfg.Bank.ConnTimeout)
		assert.Equal(t, "PaymentsGateway", cfg.Telemetry.ServiceName)
		assert.Empty(t, cfg.Kafka.Brokers)
	})

	t.Run("fails without a bank address", func(t *testing.T) {
		_, err := config.LoadConfig("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Address")
	})

	t.Run("fails when the bank address is not a uri", func(t *testing.T) {
		t.Setenv("PAYMENTS_BANK__ADDRESS", "not a uri")

		_, err := config.LoadConfig("")

		require.Error(t, err)
	})

	t.Run("reads nested values from the environment", func(t *testing.T) {
		t.Setenv("PAYMENTS_BANK__ADDRESS", "https://bank.example.com")
		t.Setenv("PAYMENTS_RETRY__MAX_RETRIES", "2")
		t.Setenv("PAYMENTS_BANK__CONN_TIMEOUT", "5s")
		t.Setenv("PAYMENTS_SERVER__READ_TIMEOUT", "3s")
		t.Setenv("PAYMENTS_KAFKA__BROKERS", "kafka-1:9092,kafka-2:9092")

		cfg, err := config.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Retry.MaxRetries)
		assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	})

	t.Run("environment overrides the config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gateway.yaml")
		content := []byte(`
bank:
  address: http://file-bank:8080
store:
  driver: redis
redis:
  addr: redis:6379
logger:
  level: debug
`)
		require.NoError(t, os.WriteFile(path, content, 0o600))
		t.Setenv("PAYMENTS_BANK__ADDRESS", "http://env-bank:8080")

		cfg, err := config.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "http://env-bank:8080", cfg.Bank.Address)
		assert.Equal(t, config.StoreRedis, cfg.Store.Driver)
		assert.Equal(t, "redis:6379", cfg.Redis.Addr)
		assert.Equal(t, "debug", cfg.Logger.Level)
	})

	t.Run("fails for a missing config file", func(t *testing.T) {
		t.Setenv("PAYMENTS_BANK__ADDRESS", "http://localhost:8080")

		_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func(t *testing.T) *config.Config {
		t.Helper()
		t.Setenv("PAYMENTS_BANK__ADDRESS", "http://localhost:8080")
		cfg, err := config.LoadConfig("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("rejects an unknown store driver", func(t *testing.T) {
		cfg := valid(t)
		cfg.Store.Driver = "sqlite"

		assert.Error(t, cfg.Validate())
	})

	t.Run("postgres store needs database settings", func(t *testing.T) {
		cfg := valid(t)
		cfg.Store.Driver = config.StorePostgres

		assert.Error(t, cfg.Validate())

		cfg.Database.Host = "localhost"
		cfg.Database.User = "gateway"
		cfg.Database.Name = "payments"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects a malformed otlp endpoint", func(t *testing.T) {
		cfg := valid(t)
		cfg.Telemetry.OTLPEndpoint = "collector without scheme"

		assert.Error(t, cfg.Validate())
	})

	t.Run("request timeout must outlast bank attempts and the save", func(t *testing.T) {
		cfg := valid(t)
		cfg.Bank.ConnTimeout = 10 * time.Second
		cfg.Store.PersistTimeout = 5 * time.Second
		cfg.Retry.MaxDelay = 2 * time.Second

		cfg.Retry.MaxRetries = 0
		cfg.Server.RequestTimeout = 15 * time.Second
		require.Error(t, cfg.Validate())

		cfg.Server.RequestTimeout = 16 * time.Second
		require.NoError(t, cfg.Validate())

		cfg.Retry.MaxRetries = 2
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "39s")

		cfg.Server.RequestTimeout = 40 * time.Second
		assert.NoError(t, cfg.Validate())
	})

	t.Run("retries without a longer request timeout fail at load", func(t *testing.T) {
		t.Setenv("PAYMENTS_BANK__ADDRESS", "http://localhost:8080")
		t.Setenv("PAYMENTS_RETRY__MAX_RETRIES", "3")

		_, err := config.LoadConfig("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "request_timeout")
	})

	t.Run("kafka brokers need a topic", func(t *testing.T) {
		cfg := valid(t)
		cfg.Kafka.Brokers = []string{"kafka:9092"}
		cfg.Kafka.OrphanTopic = ""

		assert.Error(t, cfg.Validate())
	})
}

func TestDatabaseConfig_ConnString(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "gateway",
		Password: "p@ss",
		Name:     "payments",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://gateway:p%40ss@db:5432/payments?sslmode=disable", cfg.ConnString())
}

func TestLoggerConfig_NewLogger(t *testing.T) {
	logger := config.LoggerConfig{Level: "debug", Format: "text"}.NewLogger()

	assert.NotNil(t, logger)
}
