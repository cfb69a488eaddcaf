// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

var userRowColumns = []string{
	"id", "email", "password_hash", "username", "phone", "role",
	"created_at", "updated_at",
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+users.*RETURNING\s+created_at,\s*updated_at`).
		WithArgs("u-1", "a@b.com", "hash", "alice", "0901", "standard").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(now, now))

	u := &User{
		ID:           "u-1",
		Email:        "a@b.com",
		PasswordHash: "hash",
		Username:     "alice",
		Phone:        "0901",
		Role:         core.RoleStandard,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, now, u.CreatedAt)
}

func TestRepository_CreateDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{ID: "u-1", Email: "a@b.com"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestRepository_GetByEmailParsesLegacyRole(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM\s+users\s+WHERE\s+LOWER\(email\)\s*=\s*LOWER\(\$1\)`).
		WithArgs("root@b.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "root@b.com", "hash", "root", "", "1", now, now))

	u, err := repo.GetByEmail(context.Background(), "root@b.com")
	require.NoError(t, err)
	assert.Equal(t, core.RoleAdmin, u.Role)
	assert.True(t, u.IsAdmin())
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`(?s)FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)UPDATE\s+users.*RETURNING\s+updated_at`).
		WithArgs("u-1", "a@b.com", "hash", "alice", "0901", "admin").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	u := &User{
		ID:           "u-1",
		Email:        "a@b.com",
		PasswordHash: "hash",
		Username:     "alice",
		Phone:        "0901",
		Role:         core.RoleAdmin,
	}
	require.NoError(t, repo.Update(context.Background(), u))
	assert.Equal(t, now, u.UpdatedAt)
}

func TestRepository_UpdateErrors(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE\s+users`).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`UPDATE\s+users`).WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectQuery(`UPDATE\s+users`).WillReturnError(errors.New("conn reset"))

	u := &User{ID: "u-1", Role: core.RoleStandard}

	assert.ErrorIs(t, repo.Update(context.Background(), u), core.ErrNotFound)
	assert.ErrorIs(t, repo.Update(context.Background(), u), core.ErrDuplicateKey)

	err := repo.Update(context.Background(), u)
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_UpdatePasswordNoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+password_hash`).
		WithArgs("u-1", "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), "u-1", "newhash")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_ExistsAndCount(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT\s+EXISTS`).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	exists, err := repo.ExistsByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.True(t, exists)

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
