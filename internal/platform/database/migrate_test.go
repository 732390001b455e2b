package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/00001_create_users.sql",
		"migrations/00002_create_teachers.sql",
		"migrations/00003_create_auth_events.sql",
	}, names)

	users, err := fs.ReadFile(migrationsFS, "migrations/00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(users), "UNIQUE (username)")
}

func TestMigrateUp(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUp
	defer func() { gooseUp = orig }()

	var gotDir string
	gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, MigrateUp(context.Background(), db))
	assert.Equal(t, "migrations", gotDir)
}

func TestMigrateDown_WrapsError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseDown
	defer func() { gooseDown = orig }()

	gooseDown = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	err = MigrateDown(context.Background(), db)
	assert.ErrorContains(t, err, "migrate down: boom")
}
