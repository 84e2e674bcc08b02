package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridwanfathin/invoice-purchase-service/internal/logger"
)

// DBTX is the query surface shared by the pool and a transaction
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Transactor runs a function inside a single all-or-nothing transaction
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Options configures the connection pool
type Options struct {
	URL               string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	HealthCheckPeriod time.Duration
}

// PostgresDB manages the database connection to PostgreSQL
type PostgresDB struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

type txKey struct{}

type txState struct {
	tx pgx.Tx
	id string
}

// NewPostgresDB creates a new connection pool to PostgreSQL
func NewPostgresDB(ctx context.Context, opts Options, log *logger.Logger) (*PostgresDB, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("database URL is not set")
	}

	config, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		config.MinConns = opts.MinConns
	}
	if opts.MaxConnLifetime > 0 {
		config.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.HealthCheckPeriod > 0 {
		config.HealthCheckPeriod = opts.HealthCheckPeriod
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{pool: pool, logger: log}, nil
}

// Close closes the database connection pool
func (db *PostgresDB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// GetPool returns the connection pool for direct use
func (db *PostgresDB) GetPool() *pgxpool.Pool {
	return db.pool
}

// Ping checks that the database is reachable
func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Querier returns the transaction bound to ctx, or the pool outside a transaction
func (db *PostgresDB) Querier(ctx context.Context) DBTX {
	if st, ok := ctx.Value(txKey{}).(*txState); ok {
		return st.tx
	}
	return db.pool
}

// WithTx executes fn within a transaction. The transaction travels in the
// context handed to fn, so repositories join it through Querier. A nested call
// joins the outer transaction. Any error or panic from fn rolls back.
func (db *PostgresDB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	st := &txState{tx: tx, id: uuid.NewString()}
	txCtx := context.WithValue(ctx, txKey{}, st)
	db.logger.Debugw("starting transaction", "tx_id", st.id)

	defer func() {
		if r := recover(); r != nil {
			db.logger.Errorw("panic in transaction", "tx_id", st.id, "panic", r)
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(r)
		}
	}()

	if err := fn(txCtx); err != nil {
		db.logger.Warnw("rolling back transaction", "tx_id", st.id, "error", err)
		// rollback must run even when the request context is already cancelled
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return errors.WithSecondaryError(err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	db.logger.Debugw("committed transaction", "tx_id", st.id)

	return nil
}
