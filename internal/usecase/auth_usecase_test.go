package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foundly/internal/domain/entity"
	"foundly/internal/usecase"
	"foundly/pkg/errors"
)

func TestRegisterReturnsTransientPlaceholder(t *testing.T) {
	users := newStubUserRepo()
	auth := newStubAuth()
	uc := usecase.NewAuthUseCase(users, auth)

	result, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.False(t, result.User.ProfileComplete)
	// Registration writes nothing to the profile store.
	assert.Empty(t, users.users)
}

func TestLoginWithoutProfileYieldsPlaceholder(t *testing.T) {
	users := newStubUserRepo()
	auth := newStubAuth()
	uc := usecase.NewAuthUseCase(users, auth)

	reg, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	result, err := uc.Login(context.Background(), "alice@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, result.User.ID)
	assert.False(t, result.User.ProfileComplete)
}

func TestLoginWithCompletedProfile(t *testing.T) {
	users := newStubUserRepo()
	auth := newStubAuth()
	uc := usecase.NewAuthUseCase(users, auth)

	reg, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	users.users[reg.User.ID] = &entity.User{ID: reg.User.ID, DisplayName: "Alice", ProfileComplete: true}

	result, err := uc.Login(context.Background(), "alice@example.com", "secret-password")
	require.NoError(t, err)
	assert.True(t, result.User.ProfileComplete)
	assert.Equal(t, "Alice", result.User.DisplayName)
}

func TestLoginBadCredentials(t *testing.T) {
	uc := usecase.NewAuthUseCase(newStubUserRepo(), newStubAuth())

	_, err := uc.Login(context.Background(), "nobody@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", errors.Code(err))
}
