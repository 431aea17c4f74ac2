package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/codexs/hirebot/core/logger"
)

const (
	readyTimeout = 30 * time.Second
	readyBackoff = 2 * time.Second
	pingTimeout  = 5 * time.Second
)

// sqlitePragmas make concurrent readers wait for the single writer instead
// of failing with SQLITE_BUSY.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

// DSN renders the driver specific connection string.
func (c Config) DSN() string {
	if c.DriverName() == DriverSQLite {
		if c.Path == ":memory:" {
			return c.Path
		}
		return "file:" + c.Path + "?" + sqlitePragmas
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.Name,
	}
	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// label names the database in logs without credentials.
func (c Config) label() string {
	if c.DriverName() == DriverSQLite {
		return c.Path
	}
	return c.Host + ":" + c.Port + "/" + c.Name
}

// Connect opens the pool, waiting up to 30s for Postgres to accept
// connections.
func Connect(cfg Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	defer cancel()
	return ConnectContext(ctx, cfg)
}

// ConnectContext opens and pings the database, retrying until ctx is done.
// SQLite databases get their directory created and a single connection.
func ConnectContext(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	driver := cfg.DriverName()
	if driver == DriverSQLite && cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("database: create dir for %s: %w", cfg.Path, err)
		}
	}

	start := time.Now()
	db, attempts, err := dial(ctx, driver, cfg.DSN())
	took := logger.RoundMS(time.Since(start))
	if err != nil {
		logger.DB.Error("db.connect",
			slog.String("status", "fail"),
			slog.String("driver", driver),
			slog.String("db", cfg.label()),
			slog.Int("attempts", attempts),
			slog.Duration("duration", took),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("database: connect %s: %w", driver, err)
	}

	pool := cfg.MaxConnections
	if driver == DriverSQLite {
		pool = 1
	}
	if pool > 0 {
		db.SetMaxOpenConns(pool)
		db.SetMaxIdleConns(pool)
	}

	logger.DB.Info("db.connect",
		slog.String("status", "ok"),
		slog.String("driver", driver),
		slog.String("db", cfg.label()),
		slog.Int("pool_open", pool),
		slog.Int("attempts", attempts),
		slog.Duration("duration", took),
	)
	return db, nil
}

func dial(ctx context.Context, driver, dsn string) (*sqlx.DB, int, error) {
	for attempt := 1; ; attempt++ {
		db, err := sqlx.Open(driver, dsn)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err = db.PingContext(pingCtx)
			cancel()
			if err == nil {
				return db, attempt, nil
			}
			_ = db.Close()
		}
		// SQLite either opens at once or never will.
		if driver == DriverSQLite {
			return nil, attempt, err
		}
		logger.DB.Debug("db.wait",
			slog.Int("attempt", attempt),
			slog.String("err", err.Error()),
		)
		select {
		case <-ctx.Done():
			return nil, attempt, fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-time.After(readyBackoff):
		}
	}
}
