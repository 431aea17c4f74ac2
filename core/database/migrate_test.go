package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestUpMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"sqlite/000002_contacts.up.sql":   {Data: []byte("SELECT 1;")},
		"sqlite/000001_init.up.sql":       {Data: []byte("SELECT 1;")},
		"sqlite/000001_init.down.sql":     {Data: []byte("SELECT 1;")},
		"sqlite/notes.up.sql":             {Data: []byte("SELECT 1;")},
		"postgres/000001_init.up.sql":     {Data: []byte("SELECT 1;")},
		"postgres/000003_indexes.up.sql":  {Data: []byte("SELECT 1;")},
		"postgres/000002_contacts.up.sql": {Data: []byte("SELECT 1;")},
	}

	got := upMigrations(fsys, DriverSQLite)
	assert.Equal(t, []migration{
		{version: 1, name: "000001_init.up.sql"},
		{version: 2, name: "000002_contacts.up.sql"},
	}, got)

	pg := upMigrations(fsys, DriverPostgres)
	assert.Len(t, pg, 3)
	assert.Equal(t, []migration{{version: 2, name: "000002_contacts.up.sql"}, {version: 3, name: "000003_indexes.up.sql"}}, between(pg, 1, 3))
	assert.Empty(t, between(pg, 3, 3))
	assert.Empty(t, upMigrations(fsys, "mysql"))
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, DriverSQLite, Config{Driver: "sqlite"}.DriverName())
	assert.Equal(t, DriverPostgres, Config{}.DriverName())
}

func TestDSN(t *testing.T) {
	mem := Config{Driver: DriverSQLite, Path: ":memory:"}
	assert.Equal(t, ":memory:", mem.DSN())

	file := Config{Driver: DriverSQLite, Path: "data/hirebot.db"}
	assert.Equal(t, "file:data/hirebot.db?"+sqlitePragmas, file.DSN())
	assert.Equal(t, "data/hirebot.db", file.label())

	pg := Config{Host: "db", Port: "5432", User: "bot", Password: "p@ss", Name: "hire", SSLMode: "disable"}
	assert.Equal(t, "postgres://bot:p%40ss@db:5432/hire?sslmode=disable", pg.DSN())
	assert.Equal(t, "db:5432/hire", pg.label())
}
