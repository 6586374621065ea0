package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/repository"
	"github.com/lefi/digital-brain/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepo(mock)
	user := entity.User{
		Name:         "test_name",
		PasswordHash: "test_hash",
	}
	query := regexp.QuoteMeta(`INSERT INTO users (name, password_hash) VALUES ($1, $2);`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(user.Name, user.PasswordHash).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		assert.NoError(t, repo.Create(ctx, &user))
	})
	t.Run("name taken", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(user.Name, user.PasswordHash).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		assert.ErrorIs(t, repo.Create(ctx, &user), errorvalues.ErrUserExists)
	})
	t.Run("nil user", func(t *testing.T) {
		assert.Error(t, repo.Create(ctx, nil))
	})
}

func TestFindUserByName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepo(mock)
	user := entity.User{
		ID:           uuid.New(),
		Name:         "test_name",
		PasswordHash: "test_hash",
	}
	query := regexp.QuoteMeta(`SELECT id, name, password_hash FROM users WHERE name = $1;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(user.Name).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "password_hash"}).
				AddRow(user.ID, user.Name, user.PasswordHash))
		result, err := repo.FindByName(ctx, user.Name)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(user.Name).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByName(ctx, user.Name)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(user.Name).
			WillReturnError(errors.New("db error"))
		_, err := repo.FindByName(ctx, user.Name)
		assert.Error(t, err)
	})
}

func TestFindUserByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepo(mock)
	user := entity.User{
		ID:           uuid.New(),
		Name:         "test_name",
		PasswordHash: "test_hash",
	}
	query := regexp.QuoteMeta(`SELECT id, name, password_hash FROM users WHERE id = $1;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "password_hash"}).
				AddRow(user.ID, user.Name, user.PasswordHash))
		result, err := repo.FindByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(user.ID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewUsersRepo(mock)
	query := regexp.QuoteMeta(`DELETE FROM users WHERE id = $1;`)
	ctx := context.Background()
	id := uuid.New()
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, repo.Delete(ctx, id))
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.ErrorIs(t, repo.Delete(ctx, id), errorvalues.ErrUserNotFound)
	})
}
