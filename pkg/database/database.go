package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Println("Database connected successfully")
	return pool, nil
}

// Schema is one service's migration directory and the table golang-migrate records it in.
// Each service migrates only its own schema.
type Schema struct {
	Dir   string
	Table string
}

var (
	ProductSchema = Schema{Dir: "products", Table: "product_schema_migrations"}
	OrderSchema   = Schema{Dir: "orders", Table: "order_schema_migrations"}
)

// MigrationDatabaseURL points golang-migrate at table instead of the shared schema_migrations.
func MigrationDatabaseURL(dsn, table string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}
	q := u.Query()
	q.Set("x-migrations-table", table)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// MigrationSourceURL turns a directory into a golang-migrate file source URL.
func MigrationSourceURL(dir string) string {
	if strings.HasPrefix(dir, "file://") {
		return dir
	}
	return "file://" + dir
}

// RunMigrations applies every pending up migration of schema found under root. An up to date
// schema is not an error.
func RunMigrations(root string, schema Schema, dsn string) error {
	databaseURL, err := MigrationDatabaseURL(dsn, schema.Table)
	if err != nil {
		return err
	}
	m, err := migrate.New(MigrationSourceURL(strings.TrimRight(root, "/")+"/"+schema.Dir), databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open %s migrations: %w", schema.Dir, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	log.Printf("INFO: %s schema at version %d (dirty=%t)", schema.Dir, version, dirty)
	return nil
}
