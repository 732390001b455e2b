package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"faculty_api/internal/common"
	"faculty_api/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

const (
	insertUserQuery = `(?s)^INSERT INTO users \(username, name, password, location\)\s+VALUES \(\$1, \$2, \$3, \$4\)\s+RETURNING id, created_at$`
	selectUserQuery = `(?s)^SELECT id, username, name, password, location, created_at\s+FROM users WHERE username = \$1$`
)

func TestPgUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(insertUserQuery).
		WithArgs("bob", "Bob", "$2a$hash", "Oslo").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	u := &model.User{Username: "bob", Name: "Bob", HashedPassword: "$2a$hash", Location: "Oslo"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("bob", "Bob", "$2a$hash", "Oslo").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := repo.Create(context.Background(), &model.User{Username: "bob", Name: "Bob", HashedPassword: "$2a$hash", Location: "Oslo"})
	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_Create_StoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(insertUserQuery).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &model.User{Username: "bob"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrUserAlreadyExists)
	assert.Contains(t, err.Error(), "db down")
}

func TestPgUserRepository_FindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(selectUserQuery).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "password", "location", "created_at"}).
			AddRow(int64(1), "bob", "Bob", "$2a$hash", "Oslo", now))

	u, err := repo.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, &model.User{ID: 1, Username: "bob", Name: "Bob", HashedPassword: "$2a$hash", Location: "Oslo", CreatedAt: now}, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(selectUserQuery).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryUserRepository_Unique(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	first := &model.User{Username: "bob"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	err := repo.Create(ctx, &model.User{Username: "bob"})
	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)

	_, err = repo.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
