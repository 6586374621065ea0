package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/service"
	"github.com/lefi/digital-brain/pkg/entity"
	"github.com/stretchr/testify/assert"
)

type usersRepoMock struct {
	state mockState
	users map[string]*entity.User
}

func newUsersRepoMock() *usersRepoMock {
	return &usersRepoMock{users: make(map[string]*entity.User)}
}

func (urm *usersRepoMock) Create(ctx context.Context, user *entity.User) error {
	if urm.state == stateDBError {
		return errors.New("db error")
	}
	if _, ok := urm.users[user.Name]; ok {
		return errorvalues.ErrUserExists
	}
	stored := *user
	stored.ID = uuid.New()
	urm.users[user.Name] = &stored
	return nil
}

func (urm *usersRepoMock) FindByName(ctx context.Context, name string) (*entity.User, error) {
	if urm.state == stateDBError {
		return nil, errors.New("db error")
	}
	user, ok := urm.users[name]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	return user, nil
}

func (urm *usersRepoMock) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	if urm.state == stateDBError {
		return nil, errors.New("db error")
	}
	for _, user := range urm.users {
		if user.ID == uid {
			return user, nil
		}
	}
	return nil, errorvalues.ErrUserNotFound
}

func (urm *usersRepoMock) Delete(ctx context.Context, uid uuid.UUID) error {
	if urm.state == stateDBError {
		return errors.New("db error")
	}
	for name, user := range urm.users {
		if user.ID == uid {
			delete(urm.users, name)
			return nil
		}
	}
	return errorvalues.ErrUserNotFound
}

func TestRegister(t *testing.T) {
	repoMock := newUsersRepoMock()
	s := service.NewUserService(repoMock)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		user, err := s.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Password: "password123",
		})
		assert.NoError(t, err)
		assert.Equal(t, "test_user", user.Name)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "password123", user.PasswordHash)
	})
	t.Run("duplicate name", func(t *testing.T) {
		_, err := s.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Password: "password123",
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("invalid name", func(t *testing.T) {
		_, err := s.Register(ctx, &service.RegisterRequest{
			Name:     "bad name!",
			Password: "password123",
		})
		var vErr service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
	t.Run("short password", func(t *testing.T) {
		_, err := s.Register(ctx, &service.RegisterRequest{
			Name:     "another_user",
			Password: "short",
		})
		var vErr service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
	t.Run("db error", func(t *testing.T) {
		repoMock.state = stateDBError
		_, err := s.Register(ctx, &service.RegisterRequest{
			Name:     "another_user",
			Password: "password123",
		})
		assert.Error(t, err)
		repoMock.state = stateSuccess
	})
}

func TestLogin(t *testing.T) {
	repoMock := newUsersRepoMock()
	s := service.NewUserService(repoMock)
	ctx := context.Background()
	_, err := s.Register(ctx, &service.RegisterRequest{
		Name:     "test_user",
		Password: "password123",
	})
	assert.NoError(t, err)
	t.Run("success", func(t *testing.T) {
		user, err := s.Login(ctx, "test_user", "password123")
		assert.NoError(t, err)
		assert.Equal(t, "test_user", user.Name)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(ctx, "test_user", "password321")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Login(ctx, "nobody", "password123")
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		repoMock.state = stateDBError
		_, err := s.Login(ctx, "test_user", "password123")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, errorvalues.ErrWrongCredentials)
		repoMock.state = stateSuccess
	})
}

func TestGetUserByID(t *testing.T) {
	repoMock := newUsersRepoMock()
	s := service.NewUserService(repoMock)
	ctx := context.Background()
	registered, err := s.Register(ctx, &service.RegisterRequest{
		Name:     "test_user",
		Password: "password123",
	})
	assert.NoError(t, err)
	t.Run("success", func(t *testing.T) {
		user, err := s.GetByID(ctx, registered.ID)
		assert.NoError(t, err)
		assert.Equal(t, registered.Name, user.Name)
	})
	t.Run("not found", func(t *testing.T) {
		_, err := s.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}
