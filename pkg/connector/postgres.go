// pkg/connector/postgres.go
package connector

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/David-Botos/movie-ingress/pkg/config"
)

// PostgresConnector publishes cleaned movies to PostgreSQL
type PostgresConnector struct {
	*sqlPublisher
	cfg *config.PostgresConfig
}

// NewPostgresConnector creates and initializes a new PostgreSQL connector
func NewPostgresConnector(
	ctx context.Context,
	cfg *config.PostgresConfig,
	batchSize int,
	timeout time.Duration,
) (*PostgresConnector, error) {
	logger := zap.L().Named("postgres-connector")

	// Log connection attempt
	logger.Info("Connecting to PostgreSQL",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	// Open database connection
	db, err := sqlx.Open(cfg.Driver, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL connection: %w", err)
	}

	// Configure connection pool
	ApplyConnectionSettings(
		db.DB,
		cfg.MaxOpenConns,
		cfg.MaxIdleConns,
		cfg.ConnMaxLifetime,
		cfg.ConnMaxIdleTime,
	)

	// Verify connection
	if err := PingWithTimeout(ctx, db.DB, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	connector := &PostgresConnector{
		sqlPublisher: newSQLPublisher(db, postgresDialect, cfg.Schema, batchSize, timeout, logger),
		cfg:          cfg,
	}

	LogConnectionStats(logger, cfg.Database, db.DB)
	return connector, nil
}

// EnsureTables creates the schema and the destination tables if they don't exist
func (c *PostgresConnector) EnsureTables(ctx context.Context) error {
	schemaCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.db.ExecContext(schemaCtx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(c.schema)); err != nil {
		return fmt.Errorf("failed to create/verify schema %s: %w", c.schema, err)
	}

	return c.sqlPublisher.EnsureTables(ctx)
}
