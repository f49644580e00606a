// Package testutil provides shared test helpers, including throwaway
// PostgreSQL containers for repository tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ethereal-veil/mud/internal/config"
	"github.com/ethereal-veil/mud/internal/storage/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance with a
// connected pool and the config used to reach it.
type PostgresContainer struct {
	container testcontainers.Container
	Pool      *postgres.Pool
	RawPool   *pgxpool.Pool
	Config    config.DatabaseConfig
}

// NewPostgresContainer starts a PostgreSQL test container.
//
// Precondition: Docker must be available; the test is skipped in short mode.
// Postcondition: Returns a running container with a connected pool, or fails
// the test. Cleanup is registered automatically.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	if os.Getenv("VEIL_SKIP_CONTAINER_TESTS") != "" {
		t.Skip("container tests disabled by VEIL_SKIP_CONTAINER_TESTS")
	}

	ctx := context.Background()
	start := time.Now()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v [%s]", err, time.Since(start))
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	dbCfg := config.DatabaseConfig{
		Host:            host,
		Port:            mappedPort.Int(),
		User:            "test",
		Password:        "test",
		Name:            "test",
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		t.Fatalf("connecting to test postgres: %v [%s]", err, time.Since(start))
	}

	t.Logf("postgres container started [%s]", time.Since(start))

	pc := &PostgresContainer{
		container: container,
		Pool:      pool,
		RawPool:   pool.DB(),
		Config:    dbCfg,
	}

	t.Cleanup(func() {
		pool.Close()
		_ = container.Terminate(ctx)
	})

	return pc
}

// ApplyMigrations creates the schema directly so tests do not depend on the
// migrate binary.
//
// Postcondition: The entities table exists in the test database.
func (pc *PostgresContainer) ApplyMigrations(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	schema := `
		CREATE TABLE IF NOT EXISTS entities (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			kind             TEXT NOT NULL DEFAULT 'player',
			hp               INTEGER NOT NULL DEFAULT 100,
			max_hp           INTEGER NOT NULL DEFAULT 100,
			gp               INTEGER NOT NULL DEFAULT 100,
			max_gp           INTEGER NOT NULL DEFAULT 100,
			str              INTEGER NOT NULL DEFAULT 10,
			dex              INTEGER NOT NULL DEFAULT 10,
			height           INTEGER NOT NULL DEFAULT 170,
			burden           INTEGER NOT NULL DEFAULT 0,
			location         TEXT NOT NULL DEFAULT '',
			respawn_location TEXT NOT NULL DEFAULT '',
			attitude         TEXT NOT NULL DEFAULT 'neutral',
			response         TEXT NOT NULL DEFAULT 'neutral',
			parry_hand       TEXT NOT NULL DEFAULT 'both',
			attack_hand      TEXT NOT NULL DEFAULT 'both',
			parry_unarmed    BOOLEAN NOT NULL DEFAULT FALSE,
			mercy            TEXT NOT NULL DEFAULT 'ask',
			focus_zone       TEXT NOT NULL DEFAULT '',
			ideal_distance   INTEGER NOT NULL DEFAULT 0,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_entities_location ON entities (location);
	`

	if _, err := pc.RawPool.Exec(ctx, schema); err != nil {
		t.Fatalf("applying migrations: %v", err)
	}
	t.Logf("migrations applied [%s]", time.Since(start))
}

// DSN returns the connection string for the test database.
func (pc *PostgresContainer) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.Config.User, pc.Config.Password,
		pc.Config.Host, pc.Config.Port,
		pc.Config.Name, pc.Config.SSLMode,
	)
}
