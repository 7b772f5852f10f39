package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"github.com/willfong/newsdb/internal/config"
)

// Pool wraps a sql.DB restricted to one connection, with query statistics
// and lifecycle logging. Statements run serially on that connection.
type Pool struct {
	db     *sql.DB
	config config.DatabaseConfig
	log    *zerolog.Logger

	// Metrics
	totalQueries   int64
	failedQueries  int64
	totalLatencyNs int64
}

// Connect opens the database described by cfg and verifies it is reachable.
// On failure the error is logged and a nil Pool is returned together with a
// *Error of KindConnection; callers must check before proceeding.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log *zerolog.Logger) (*Pool, error) {
	if log == nil {
		log = nopLogger()
	}

	pool, err := NewPool(cfg, log)
	if err != nil {
		log.Error().Err(err).Str("addr", cfg.Addr()).Msg("database connection failed")
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		log.Error().Err(err).Str("addr", cfg.Addr()).Msg("database connection failed")
		_ = pool.Close()
		return nil, err
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Str("database", cfg.Name).
		Msg("database connection successful")
	return pool, nil
}

// NewPool creates the handle without contacting the server
func NewPool(cfg config.DatabaseConfig, log *zerolog.Logger) (*Pool, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DBDriver
	}

	db, err := sql.Open(driver, cfg.DSN())
	if err != nil {
		return nil, &Error{Kind: KindConnection, Op: "connect", Err: err}
	}

	// One connection, reused serially for every statement
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pool := NewPoolFromDB(db, log)
	pool.config = cfg
	return pool, nil
}

// NewPoolFromDB wraps an already opened handle
func NewPoolFromDB(db *sql.DB, log *zerolog.Logger) *Pool {
	if log == nil {
		log = nopLogger()
	}
	return &Pool{db: db, log: log}
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// Ping verifies the database connection is working, bounded by the
// configured timeout when ctx has no deadline of its own
func (p *Pool) Ping(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok && p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	if err := p.db.PingContext(ctx); err != nil {
		return &Error{Kind: KindConnection, Op: "connect", Err: err}
	}
	return nil
}

// Close releases the connection
func (p *Pool) Close() error {
	return p.db.Close()
}

// DB returns the underlying sql.DB for direct access when needed
func (p *Pool) DB() *sql.DB {
	return p.db
}

// QueryRowContext executes a query expected to return at most one row
func (p *Pool) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := p.db.QueryRowContext(ctx, query, args...)
	p.recordQuery(time.Since(start), row.Err())
	return row
}

// recordQuery updates internal metrics
func (p *Pool) recordQuery(duration time.Duration, err error) {
	p.totalQueries++
	p.totalLatencyNs += duration.Nanoseconds()
	if err != nil {
		p.failedQueries++
	}
}

// Stats returns current query statistics
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		TotalQueries:  p.totalQueries,
		FailedQueries: p.failedQueries,
		AvgLatency:    p.averageLatency(),
	}
}

func (p *Pool) averageLatency() time.Duration {
	if p.totalQueries == 0 {
		return 0
	}
	return time.Duration(p.totalLatencyNs / p.totalQueries)
}

// PoolStats contains query statistics
type PoolStats struct {
	TotalQueries  int64
	FailedQueries int64
	AvgLatency    time.Duration
}
