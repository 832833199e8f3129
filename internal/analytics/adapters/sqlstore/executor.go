package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"attribution-analytics-service/internal/analytics/core/domain"
	"attribution-analytics-service/internal/logging"
	"attribution-analytics-service/internal/metrics"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver          string
	Path            string // sqlite file
	DSN             string // postgres connection string
	ReadOnly        bool
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Executor owns the store handle. Every call borrows one pooled connection,
// prepares its statement on it and releases both before returning, so no
// statement or cursor outlives a call.
type Executor struct {
	mu sync.RWMutex
	db *sqlx.DB
}

// Open connects to the store and verifies it answers. Failures wrap
// domain.ErrConnection; the caller is expected to refuse to serve.
func Open(ctx context.Context, opts Options) (*Executor, error) {
	dsn, err := dataSource(opts)
	if err != nil {
		return nil, &domain.QueryError{Kind: domain.ErrConnection, Query: "open", Err: err}
	}

	db, err := sqlx.Open(opts.Driver, dsn)
	if err != nil {
		return nil, &domain.QueryError{Kind: domain.ErrConnection, Query: "open", Err: err}
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &domain.QueryError{Kind: domain.ErrConnection, Query: "open", Err: err}
	}

	logging.Info().
		Str("driver", opts.Driver).
		Bool("read_only", opts.ReadOnly).
		Int("max_open_conns", maxOpen).
		Msg("analytics store opened")

	return NewExecutor(db), nil
}

// NewExecutor wraps an already opened handle.
func NewExecutor(db *sqlx.DB) *Executor {
	return &Executor{db: db}
}

func dataSource(opts Options) (string, error) {
	switch opts.Driver {
	case DriverSQLite:
		if opts.Path == "" {
			return "", errors.New("sqlite path is empty")
		}
		if opts.ReadOnly {
			if _, err := os.Stat(opts.Path); err != nil {
				return "", fmt.Errorf("database file not found at %s: %w", opts.Path, err)
			}
		}
		return sqliteDSN(opts.Path, opts.ReadOnly), nil
	case DriverPostgres:
		if opts.DSN == "" {
			return "", errors.New("postgres dsn is empty")
		}
		return opts.DSN, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", opts.Driver)
	}
}

func sqliteDSN(path string, readOnly bool) string {
	params := []string{"_pragma=busy_timeout(5000)"}
	if readOnly {
		params = append(params, "mode=ro", "_pragma=query_only(1)")
	}
	return "file:" + path + "?" + strings.Join(params, "&")
}

// Query runs a read statement and returns its rows as text.
func (e *Executor) Query(ctx context.Context, q Query) ([]RawRow, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.db == nil {
		return nil, e.fail(q, domain.ErrConnection, nil)
	}

	start := time.Now()
	defer metrics.ObserveQuery(q.Name, start)

	conn, release, err := e.borrow(ctx)
	if err != nil {
		return nil, e.fail(q, domain.ErrConnection, err)
	}
	defer release()

	stmt, err := conn.PrepareContext(ctx, e.db.Rebind(q.SQL))
	if err != nil {
		return nil, e.fail(q, domain.ErrPrepare, err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, q.Args...)
	if err != nil {
		return nil, e.fail(q, domain.ErrExecution, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, e.fail(q, domain.ErrExecution, err)
	}

	var out []RawRow
	for rows.Next() {
		cells := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, e.fail(q, domain.ErrExecution, err)
		}

		values := make([]string, len(columns))
		for i, c := range cells {
			values[i] = cellText(c)
		}
		out = append(out, NewRawRow(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, e.fail(q, domain.ErrExecution, err)
	}

	return out, nil
}

// Exec runs a statement that changes the store and reports affected rows.
// The read path never calls it; fixtures and maintenance tooling do.
func (e *Executor) Exec(ctx context.Context, q Query) (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.db == nil {
		return 0, e.fail(q, domain.ErrConnection, nil)
	}

	start := time.Now()
	defer metrics.ObserveQuery(q.Name, start)

	conn, release, err := e.borrow(ctx)
	if err != nil {
		return 0, e.fail(q, domain.ErrConnection, err)
	}
	defer release()

	stmt, err := conn.PrepareContext(ctx, e.db.Rebind(q.SQL))
	if err != nil {
		return 0, e.fail(q, domain.ErrPrepare, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, q.Args...)
	if err != nil {
		return 0, e.fail(q, domain.ErrExecution, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, e.fail(q, domain.ErrExecution, err)
	}
	return n, nil
}

// borrow takes one pooled connection and tracks it in the open-connections
// gauge until release is called. Callers must hold e.mu.
func (e *Executor) borrow(ctx context.Context) (*sqlx.Conn, func(), error) {
	conn, err := e.db.Connx(ctx)
	if err != nil {
		return nil, nil, err
	}
	metrics.OpenConnections.Inc()
	return conn, func() {
		conn.Close()
		metrics.OpenConnections.Dec()
	}, nil
}

// Ping reports whether the store is still reachable.
func (e *Executor) Ping(ctx context.Context) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.db == nil {
		return &domain.QueryError{Kind: domain.ErrConnection, Query: "ping"}
	}
	if err := e.db.PingContext(ctx); err != nil {
		return &domain.QueryError{Kind: domain.ErrConnection, Query: "ping", Err: err}
	}
	return nil
}

// Close waits for in-flight calls and releases the handle. Later calls fail
// with domain.ErrConnection.
func (e *Executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

func (e *Executor) fail(q Query, kind, cause error) error {
	metrics.QueryErrors.WithLabelValues(q.Name, errorKind(kind)).Inc()

	logging.Error().
		Err(cause).
		Str("query", q.Name).
		Str("kind", errorKind(kind)).
		Str("statement", q.SQL).
		Int("params", len(q.Args)).
		Msg("analytics query failed")

	return &domain.QueryError{Kind: kind, Query: q.Name, Statement: q.SQL, Err: cause}
}

func errorKind(kind error) string {
	switch {
	case errors.Is(kind, domain.ErrConnection):
		return "connection"
	case errors.Is(kind, domain.ErrPrepare):
		return "prepare"
	default:
		return "execution"
	}
}
