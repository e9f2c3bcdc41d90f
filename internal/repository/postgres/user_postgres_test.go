package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/model"
	"pressroom/internal/repository"
)

var userCols = []string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestUserPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	u := &model.User{
		ID:           "u-1",
		Name:         "Ines",
		Email:        "ines@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, "admin", now, now).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(u.ID, u.Name, u.Email, u.PasswordHash, "admin", now, now))

		got, err := repo.Create(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, got.Role)
		assert.Equal(t, "ines@example.com", got.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		got, err := repo.Create(ctx, u)
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, repository.ErrDuplicate))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("case insensitive", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE lower\(email\) = lower\(\$1\)`).
			WithArgs("INES@example.com").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow("u-1", "Ines", "ines@example.com", "h", "user", time.Now(), time.Now()))

		u, err := repo.FindByEmail(ctx, "INES@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, model.RoleUser, u.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE").
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.Nil(t, u)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY").
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-2", "B", "b@example.com", "h", "user", time.Now(), time.Now()).
			AddRow("u-1", "A", "a@example.com", "h", "admin", time.Now(), time.Now()))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
