// pkg/connector/publisher.go
package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/David-Botos/movie-ingress/pkg/model"
)

const (
	moviesTable = "cleaned_movies"
	auditTable  = "cleaned_on_ingress"
)

// dialect holds the DDL that differs between destinations
type dialect struct {
	name         string
	serialColumn string
	timestampTZ  string
}

var (
	postgresDialect  = dialect{name: "postgres", serialColumn: "id SERIAL PRIMARY KEY", timestampTZ: "TIMESTAMP WITH TIME ZONE"}
	snowflakeDialect = dialect{name: "snowflake", serialColumn: "id INTEGER AUTOINCREMENT PRIMARY KEY", timestampTZ: "TIMESTAMP_TZ"}
)

// publishedMovie is a kept record stamped with the run that produced it
type publishedMovie struct {
	RunID string `db:"run_id"`
	model.MovieRecord
}

// sqlPublisher implements Publisher over any sqlx-supported driver
type sqlPublisher struct {
	db        *sqlx.DB
	logger    *zap.Logger
	dialect   dialect
	schema    string
	batchSize int
	timeout   time.Duration
}

func newSQLPublisher(db *sqlx.DB, d dialect, schema string, batchSize int, timeout time.Duration, logger *zap.Logger) *sqlPublisher {
	if batchSize <= 0 {
		batchSize = 1000
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &sqlPublisher{
		db:        db,
		logger:    logger,
		dialect:   d,
		schema:    schema,
		batchSize: batchSize,
		timeout:   timeout,
	}
}

// qualified returns the quoted schema.table name
func (p *sqlPublisher) qualified(table string) string {
	return pq.QuoteIdentifier(p.schema) + "." + pq.QuoteIdentifier(table)
}

// EnsureTables creates the movie and audit tables if they don't exist
func (p *sqlPublisher) EnsureTables(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	createMovies := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s,
			run_id TEXT NOT NULL,
			title TEXT NOT NULL,
			genre TEXT NOT NULL,
			year INTEGER NOT NULL,
			rating DOUBLE PRECISION NOT NULL,
			votes BIGINT NOT NULL,
			director TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL,
			country TEXT NOT NULL,
			box_office_million DOUBLE PRECISION NOT NULL
		)
	`, p.qualified(moviesTable), p.dialect.serialColumn)
	if _, err := p.db.ExecContext(ctx, createMovies); err != nil {
		return fmt.Errorf("failed to create %s table: %w", moviesTable, err)
	}

	createAudit := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s,
			run_id TEXT NOT NULL,
			source_row INTEGER NOT NULL,
			title TEXT NOT NULL,
			column_name TEXT NOT NULL,
			original_value TEXT,
			new_value TEXT NOT NULL,
			cleaning_operation TEXT NOT NULL,
			cleaning_reason TEXT NOT NULL,
			cleaned_at %s NOT NULL
		)
	`, p.qualified(auditTable), p.dialect.serialColumn, p.dialect.timestampTZ)
	if _, err := p.db.ExecContext(ctx, createAudit); err != nil {
		return fmt.Errorf("failed to create %s table: %w", auditTable, err)
	}

	p.logger.Info("Ensured destination tables exist",
		zap.String("dialect", p.dialect.name),
		zap.String("schema", p.schema))
	return nil
}

// Publish batch inserts the run's kept records and correction audit.
// Both tables are written in a single transaction that is rolled back on any failure.
func (p *sqlPublisher) Publish(
	ctx context.Context,
	runID string,
	records []model.MovieRecord,
	operations []model.CleaningOperation,
) (inserted int64, err error) {
	if len(records) == 0 && len(operations) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				p.logger.Error("Failed to rollback transaction",
					zap.NamedError("rollbackError", rbErr),
					zap.Error(err))
			}
		}
	}()

	inserted, err = p.insertMovies(ctx, tx, runID, records)
	if err != nil {
		return 0, fmt.Errorf("failed to publish movies: %w", err)
	}
	if err = p.insertOperations(ctx, tx, operations); err != nil {
		return 0, fmt.Errorf("failed to record cleaning operations: %w", err)
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("failed to commit transaction: %w", err)
		return 0, err
	}

	p.logger.Info("Published cleaned movies",
		zap.String("runID", runID),
		zap.Int64("rows", inserted),
		zap.Int("corrections", len(operations)))
	return inserted, nil
}

// insertMovies stamps the records with runID and inserts them
func (p *sqlPublisher) insertMovies(ctx context.Context, tx *sqlx.Tx, runID string, records []model.MovieRecord) (int64, error) {
	rows := make([]publishedMovie, len(records))
	for i, rec := range records {
		rows[i] = publishedMovie{RunID: runID, MovieRecord: rec}
	}

	query := fmt.Sprintf(`INSERT INTO %s
		(run_id, title, genre, year, rating, votes, director, duration_minutes, country, box_office_million)
		VALUES (:run_id, :title, :genre, :year, :rating, :votes, :director, :duration_minutes, :country, :box_office_million)`,
		p.qualified(moviesTable))

	return p.insertBatches(ctx, tx, query, len(rows), func(start, end int) interface{} {
		return rows[start:end]
	})
}

// insertOperations inserts cleaning operations into the audit table
func (p *sqlPublisher) insertOperations(ctx context.Context, tx *sqlx.Tx, operations []model.CleaningOperation) error {
	query := fmt.Sprintf(`INSERT INTO %s
		(run_id, source_row, title, column_name, original_value, new_value, cleaning_operation, cleaning_reason, cleaned_at)
		VALUES (:run_id, :source_row, :title, :column_name, :original_value, :new_value, :cleaning_operation, :cleaning_reason, :cleaned_at)`,
		p.qualified(auditTable))

	_, err := p.insertBatches(ctx, tx, query, len(operations), func(start, end int) interface{} {
		return operations[start:end]
	})
	return err
}

// insertBatches runs a named batch insert over [0,total) in batchSize slices on tx
func (p *sqlPublisher) insertBatches(
	ctx context.Context,
	tx *sqlx.Tx,
	query string,
	total int,
	slice func(start, end int) interface{},
) (int64, error) {
	var inserted int64
	for start := 0; start < total; start += p.batchSize {
		end := start + p.batchSize
		if end > total {
			end = total
		}

		result, err := tx.NamedExecContext(ctx, query, slice(start, end))
		if err != nil {
			return 0, fmt.Errorf("batch insert failed at row %d: %w", start, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			p.logger.Warn("Couldn't get rows affected", zap.Error(err))
			continue
		}
		inserted += affected
	}

	return inserted, nil
}

// Close closes the database connection
func (p *sqlPublisher) Close() error {
	p.logger.Info("Closing publisher connection", zap.String("dialect", p.dialect.name))
	LogConnectionStats(p.logger, p.schema, p.db.DB)
	return p.db.Close()
}
