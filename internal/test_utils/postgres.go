package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/artihcus/portal/internal/config"
	"github.com/artihcus/portal/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "portal"
	dbUser     = "test_portal"
	dbPassword = "test_portal"
)

var (
	pgOnce      sync.Once
	pgContainer *postgres.PostgresContainer
	pgConfig    config.Database
	pgErr       error
)

func preparePostgresContainer(ctx context.Context) (*postgres.PostgresContainer, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %v", err)
	}

	container, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return nil, err
	}
	return container, nil
}

func startPostgres() {
	ctx := context.Background()

	pgContainer, pgErr = preparePostgresContainer(ctx)
	if pgErr != nil {
		return
	}

	host, _ := pgContainer.Host(ctx)
	port, _ := pgContainer.MappedPort(ctx, "5432/tcp")
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	pgConfig = config.Database{
		Driver: config.DriverPostgres,
		Host:   host,
		Port:   port.Int(),
		User:   dbUser,
		Pass:   dbPassword,
		Name:   dbName,
		Schema: "portal",
	}

	if pgErr = database.Migrate(pgConfig); pgErr != nil {
		return
	}
	pgErr = pgContainer.Snapshot(ctx, postgres.WithSnapshotName("postgres-test-snapshot"))
}

// PostgresPool returns a pool to a migrated Postgres container shared by the
// test binary. The database is restored to its migrated snapshot after each
// test. Tests are skipped when no container runtime is available.
func PostgresPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	pgOnce.Do(startPostgres)
	if pgErr != nil {
		t.Skipf("postgres container unavailable: %v", pgErr)
	}

	pool, err := database.Open(pgConfig)
	if err != nil {
		t.Fatalf("Failed to open database connection: %v", err)
	}
	t.Cleanup(func() {
		pool.Close()
		if err := pgContainer.Restore(context.Background()); err != nil {
			t.Errorf("failed to restore snapshot: %v", err)
		}
	})
	return pool
}

// TerminatePostgres stops the shared container, if one was started. Call it from TestMain.
func TerminatePostgres() {
	if pgContainer == nil {
		return
	}
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
}

// findProjectRoot walks up from the working directory to the directory holding go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if fileExists(filepath.Join(dir, ".git")) || fileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root")
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
