package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/codexs/hirebot/core/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

// migration is one "<version>_<name>.up.sql" file.
type migration struct {
	version uint64
	name    string
}

// RunMigrations applies the up migrations stored under the driver's
// directory of fsys, e.g. "sqlite/000001_init.up.sql". db stays open.
func RunMigrations(db *sqlx.DB, cfg Config, fsys fs.FS) error {
	driver := cfg.DriverName()
	files := upMigrations(fsys, driver)
	logFiles(slog.LevelDebug, "migrate.resolve", driver, files)

	m, closeSource, err := open(db, driver, fsys)
	if err != nil {
		logger.MIG.Error("migrate.init", slog.String("driver", driver), slog.String("err", err.Error()))
		return err
	}
	defer closeSource()

	from, _, _ := m.Version()
	start := time.Now()
	err = m.Up()
	took := logger.RoundMS(time.Since(start))
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.MIG.Error("migrate.apply",
			slog.String("driver", driver),
			slog.Uint64("from_ver", uint64(from)),
			slog.String("err", err.Error()),
			slog.Duration("duration", took),
		)
		return fmt.Errorf("database: apply migrations: %w", err)
	}

	to, _, _ := m.Version()
	applied := between(files, uint64(from), uint64(to))
	if len(applied) > 0 {
		logFiles(slog.LevelDebug, "migrate.applied", driver, applied)
	}
	logger.MIG.Info("migrate.summary",
		slog.String("driver", driver),
		slog.Uint64("from_ver", uint64(from)),
		slog.Uint64("to_ver", uint64(to)),
		slog.Int("files", len(applied)),
		slog.Duration("duration", took),
	)
	return nil
}

// open builds a migrator over the shared connection. Only the source is
// closed afterwards since migrate.Close would also close db.
func open(db *sqlx.DB, driver string, fsys fs.FS) (*migrate.Migrate, func(), error) {
	src, err := iofs.New(fsys, driver)
	if err != nil {
		return nil, nil, fmt.Errorf("database: migrations source %q: %w", driver, err)
	}
	var target database.Driver
	if driver == DriverSQLite {
		target, err = sqlite.WithInstance(db.DB, &sqlite.Config{})
	} else {
		target, err = postgres.WithInstance(db.DB, &postgres.Config{})
	}
	if err != nil {
		src.Close()
		return nil, nil, fmt.Errorf("database: migrations driver %s: %w", driver, err)
	}
	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		src.Close()
		return nil, nil, fmt.Errorf("database: migrator: %w", err)
	}
	return m, func() { src.Close() }, nil
}

func upMigrations(fsys fs.FS, dir string) []migration {
	names, err := fs.Glob(fsys, path.Join(dir, "*.up.sql"))
	if err != nil {
		return nil
	}
	out := make([]migration, 0, len(names))
	for _, name := range names {
		base := path.Base(name)
		prefix, _, _ := strings.Cut(base, "_")
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, migration{version: v, name: base})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out
}

// between returns the migrations in (from, to].
func between(files []migration, from, to uint64) []migration {
	var out []migration
	for _, f := range files {
		if f.version > from && f.version <= to {
			out = append(out, f)
		}
	}
	return out
}

func logFiles(level slog.Level, event, driver string, files []migration) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.name
	}
	attrs := []slog.Attr{
		slog.String("driver", driver),
		slog.Int("files_total", len(names)),
	}
	if preview, truncated := logger.SummarizeStrings(names, 6); preview != "" {
		attrs = append(attrs, slog.String("files_preview", preview))
		if truncated {
			attrs = append(attrs, slog.Bool("files_truncated", true))
		}
	}
	logger.MIG.LogAttrs(logger.Background(), level, event, attrs...)
}
