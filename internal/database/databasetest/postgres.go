// Package databasetest starts a throwaway PostgreSQL for integration tests.
package databasetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Tomlord1122/todo-tracker/internal/config"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbName     = "todo"
	dbUser     = "user"
	dbPassword = "password"
)

// Container lazily starts one postgres container per test binary.
type Container struct {
	once sync.Once
	pg   *postgres.PostgresContainer
	cfg  config.DBConfig
	err  error
}

// Config starts the container on first use and returns a config pointing at
// it. The test is skipped when no Docker provider is reachable.
func (c *Container) Config(t *testing.T) config.DBConfig {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	c.once.Do(func() {
		c.cfg, c.err = c.start(context.Background())
	})
	if c.err != nil {
		t.Fatalf("could not start postgres container: %v", c.err)
	}
	return c.cfg
}

func (c *Container) start(ctx context.Context) (config.DBConfig, error) {
	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return config.DBConfig{}, err
	}
	c.pg = pg

	host, err := pg.Host(ctx)
	if err != nil {
		return config.DBConfig{}, fmt.Errorf("container host: %w", err)
	}
	port, err := pg.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return config.DBConfig{}, fmt.Errorf("container port: %w", err)
	}

	return config.DBConfig{
		Host:            host,
		Port:            port.Port(),
		Database:        dbName,
		Username:        dbUser,
		Password:        dbPassword,
		Schema:          "public",
		SSLMode:         "disable",
		MaxIdleConns:    2,
		MaxOpenConns:    5,
		ConnMaxLifetime: time.Minute,
		RunMigrations:   true,
	}, nil
}

// Terminate stops the container if it was started. Call it from TestMain.
func (c *Container) Terminate() {
	if c.pg != nil {
		_ = c.pg.Terminate(context.Background())
	}
}
