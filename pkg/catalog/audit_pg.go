package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/graphcore/corestore/pkg/logging"
)

// PostgresAuditSink appends a row per catalog mutation to an audit
// table. It is a side channel only: the catalog itself stays in-memory
// and non-durable, and an unreachable database never fails the catalog
// operation that triggered the write — failures are logged and dropped,
// per the listener contract.
type PostgresAuditSink struct {
	pool *pgxpool.Pool
	log  logging.Log

	// writeTimeout bounds each insert so a stalled database can't hold a
	// catalog operation open (listeners run synchronously).
	writeTimeout time.Duration
}

// NewPostgresAuditSink connects to databaseURL, creates the audit table
// if missing, and returns a sink ready to register with AddListener.
func NewPostgresAuditSink(ctx context.Context, databaseURL string, log logging.Log) (*PostgresAuditSink, error) {
	if log == nil {
		log = logging.NewNopLog()
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pooling configuration
	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PostgresAuditSink{pool: pool, log: log, writeTimeout: 2 * time.Second}

	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

func (s *PostgresAuditSink) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS catalog_audit (
			id BIGSERIAL PRIMARY KEY,
			correlation_id TEXT NOT NULL,
			operation TEXT NOT NULL,
			username TEXT NOT NULL,
			database_name TEXT NOT NULL,
			graph_name TEXT NOT NULL,
			memory_bytes BIGINT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	_, err := s.pool.Exec(ctx, query)
	return err
}

func (s *PostgresAuditSink) OnGraphStoreAdded(event GraphStoreAddedEvent) {
	s.record("set", event.CorrelationID, event.User, event.DatabaseName, event.GraphName, event.MemoryBytes)
}

func (s *PostgresAuditSink) OnGraphStoreRemoved(event GraphStoreRemovedEvent) {
	s.record("remove", event.CorrelationID, event.User, event.DatabaseName, event.GraphName, event.MemoryBytes)
}

func (s *PostgresAuditSink) record(operation, correlationID, username, databaseName, graphName string, memoryBytes int64) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	query := `
		INSERT INTO catalog_audit (correlation_id, operation, username, database_name, graph_name, memory_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.pool.Exec(ctx, query, correlationID, operation, username, databaseName, graphName, memoryBytes)
	if err != nil {
		s.log.Warn("catalog audit write failed",
			logging.String("operation", operation),
			logging.String("graph", graphName),
			logging.Err(err),
		)
	}
}

// Ping checks database connectivity
func (s *PostgresAuditSink) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool
func (s *PostgresAuditSink) Close() error {
	s.pool.Close()
	return nil
}
