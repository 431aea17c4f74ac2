package bootstrap

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/codexs/hirebot/core/config"
	coredatabase "github.com/codexs/hirebot/core/database"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunWithoutDatabase(t *testing.T) {
	connected := false
	res, err := Run(Options{
		Config:     &coreconfig.Config{},
		LoggerInit: noLogger,
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			connected = true
			return nil, nil
		},
	})
	require.NoError(t, err)
	assert.Nil(t, res.DB)
	assert.False(t, connected)
	assert.NoError(t, res.Close())
}

func TestRunSQLiteWithMigrations(t *testing.T) {
	migrations := fstest.MapFS{
		"sqlite/000001_init.up.sql":   {Data: []byte("CREATE TABLE t (id INTEGER PRIMARY KEY);")},
		"sqlite/000001_init.down.sql": {Data: []byte("DROP TABLE t;")},
	}
	dbCfg := &coredatabase.Config{Driver: coredatabase.DriverSQLite, Path: ":memory:"}

	res, err := Run(Options{Config: &coreconfig.Config{}, Database: dbCfg, Migrations: migrations, LoggerInit: noLogger})
	require.NoError(t, err)
	defer res.Close()

	var n int
	require.NoError(t, res.DB.Get(&n, "SELECT COUNT(*) FROM t"))
	assert.Zero(t, n)
}

func TestRunPropagatesFailures(t *testing.T) {
	_, err := Run(Options{})
	require.Error(t, err)

	_, err = Run(Options{Config: &coreconfig.Config{}, LoggerInit: func(*coreconfig.Config) error { return errors.New("no tty") }})
	assert.ErrorContains(t, err, "logger init failed")

	_, err = Run(Options{
		Config:     &coreconfig.Config{},
		Database:   &coredatabase.Config{Driver: coredatabase.DriverSQLite, Path: ":memory:"},
		Migrations: fstest.MapFS{},
		LoggerInit: noLogger,
		Migrate: func(*sqlx.DB, coredatabase.Config, fs.FS) error {
			return errors.New("dirty")
		},
	})
	assert.ErrorContains(t, err, "migrations failed")
}
