package testhelpers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/config"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/persistence"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

type TestDatabase struct {
	Container *tcpostgres.PostgresContainer
	DB        *persistence.DB
	Config    *config.DatabaseConfig
}

// SetupTestDatabase starts a throwaway postgres container, connects to it and applies migrations.
// The container is terminated when the test finishes.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dbConfig := &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Name:            "testdb",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := persistence.Connect(ctx, dbConfig, logger)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgres.Migrate(ctx, db.Pool))

	return &TestDatabase{
		Container: container,
		DB:        db,
		Config:    dbConfig,
	}
}

func (td *TestDatabase) CleanTables(t *testing.T) {
	t.Helper()
	_, err := td.DB.Pool.Exec(context.Background(), "TRUNCATE TABLE payments;")
	require.NoError(t, err)
}
