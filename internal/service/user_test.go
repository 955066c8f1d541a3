package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/newsdesk/internal/domain"
)

func TestUserService_List(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.register(t, "alice")
	b := e.register(t, "bob")

	users, err := e.users.List(ctx, domain.Page{Limit: 100})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, a.ID, users[0].ID)
	assert.Equal(t, b.ID, users[1].ID)

	for _, page := range []domain.Page{{Skip: -1, Limit: 10}, {Limit: 0}, {Limit: 101}} {
		_, err := e.users.List(ctx, page)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "page %+v", page)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ivan")
	middle := "Sergeevich"

	updated, err := e.users.UpdateProfile(ctx, u.ID, domain.UserUpdate{
		MiddleName: domain.Set(&middle),
		Photo:      domain.Set(pngBytes(t)),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.MiddleName)
	assert.Equal(t, "Sergeevich", *updated.MiddleName)
	assert.Equal(t, "Ivan", updated.FirstName)
	assert.NotEmpty(t, updated.Photo)
	assert.Equal(t, u.PasswordHash, updated.PasswordHash)
}

func TestUserService_EmptyUpdateOnlyTouchesUpdatedAt(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ivan")

	time.Sleep(2 * time.Millisecond)
	updated, err := e.users.UpdateProfile(ctx, u.ID, domain.UserUpdate{})
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(u.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(u.CreatedAt))
	assert.Equal(t, u.FirstName, updated.FirstName)
	assert.Equal(t, u.Email, updated.Email)
	assert.Equal(t, u.Login, updated.Login)
	assert.Equal(t, u.GenderID, updated.GenderID)
}

func TestUserService_UpdateProfileInvalid(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "ivan")
	e.register(t, "petr")

	_, err := e.users.UpdateProfile(ctx, u.ID, domain.UserUpdate{FirstName: domain.Set("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.users.UpdateProfile(ctx, u.ID, domain.UserUpdate{Photo: domain.Set([]byte("GIF89a"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.users.UpdateProfile(ctx, u.ID, domain.UserUpdate{Login: domain.Set("petr")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.users.UpdateProfile(ctx, 999, domain.UserUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
