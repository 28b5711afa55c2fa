package admins_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/weblurk/go/internal/admins"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var epoch = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

func newApp(t *testing.T) (*admins.App, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(epoch)
	return admins.NewApp(memory.New(), clock, admins.WithHashCost(bcrypt.MinCost)), clock
}

func TestBootstrapIsIdempotent(t *testing.T) {
	app, _ := newApp(t)
	ctx := context.Background()

	creator, err := app.Bootstrap(ctx, "", "123")
	require.NoError(t, err)
	assert.Equal(t, admins.DefaultLogin, creator.Login)
	assert.True(t, creator.Creator)
	assert.NotEqual(t, "123", creator.PasswordHash)

	again, err := app.Bootstrap(ctx, admins.DefaultLogin, "other")
	require.NoError(t, err)
	assert.Equal(t, creator.ID, again.ID)

	_, err = app.Authenticate(ctx, admins.DefaultLogin, "123")
	require.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	app, _ := newApp(t)
	ctx := context.Background()
	_, err := app.CreateAdmin(ctx, "mod", "secret")
	require.NoError(t, err)

	got, err := app.Authenticate(ctx, "mod", "secret")
	require.NoError(t, err)
	assert.Equal(t, "mod", got.Login)

	_, err = app.Authenticate(ctx, "mod", "wrong")
	require.ErrorIs(t, err, admins.ErrInvalidCredentials)
	require.ErrorIs(t, err, models.ErrUnauthenticated)

	_, err = app.Authenticate(ctx, "nobody", "secret")
	require.ErrorIs(t, err, admins.ErrInvalidCredentials)
}

func TestCreateAdminValidation(t *testing.T) {
	app, _ := newApp(t)
	ctx := context.Background()

	_, err := app.CreateAdmin(ctx, " ", "secret")
	require.ErrorIs(t, err, admins.ErrInvalidAdmin)

	_, err = app.CreateAdmin(ctx, "mod", "")
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = app.CreateAdmin(ctx, "mod", strings.Repeat("p", 73))
	require.ErrorIs(t, err, admins.ErrInvalidAdmin)

	first, err := app.CreateAdmin(ctx, "mod", "secret")
	require.NoError(t, err)
	assert.False(t, first.Creator)
	assert.Equal(t, epoch, first.CreatedAt)

	_, err = app.CreateAdmin(ctx, "mod", "secret")
	require.ErrorIs(t, err, models.ErrAlreadyExists)
}

func TestDeleteAdminRules(t *testing.T) {
	app, clock := newApp(t)
	ctx := context.Background()

	creator, err := app.Bootstrap(ctx, "", "123")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	alice, err := app.CreateAdmin(ctx, "alice", "pw")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	bob, err := app.CreateAdmin(ctx, "bob", "pw")
	require.NoError(t, err)

	require.ErrorIs(t, app.DeleteAdmin(ctx, creator, creator.ID), admins.ErrCreatorProtected)
	require.ErrorIs(t, app.DeleteAdmin(ctx, alice, creator.ID), admins.ErrCreatorProtected)
	require.ErrorIs(t, app.DeleteAdmin(ctx, alice, bob.ID), admins.ErrForbidden)
	require.ErrorIs(t, app.DeleteAdmin(ctx, alice, uuid.New()), models.ErrNotFound)

	require.NoError(t, app.DeleteAdmin(ctx, alice, alice.ID), "anyone may delete themselves")
	require.NoError(t, app.DeleteAdmin(ctx, creator, bob.ID), "the creator may delete others")

	list, err := app.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, creator.ID, list[0].ID)
}

func TestChangePassword(t *testing.T) {
	app, _ := newApp(t)
	ctx := context.Background()
	mod, err := app.CreateAdmin(ctx, "mod", "secret")
	require.NoError(t, err)

	err = app.ChangePassword(ctx, mod, "  ")
	require.ErrorIs(t, err, admins.ErrInvalidAdmin)

	err = app.ChangePassword(ctx, mod, strings.Repeat("p", 73))
	require.ErrorIs(t, err, admins.ErrInvalidAdmin)

	_, err = app.Authenticate(ctx, "mod", "secret")
	require.NoError(t, err, "rejected change must keep the old password")

	require.NoError(t, app.ChangePassword(ctx, mod, " fresh "))

	got, err := app.Authenticate(ctx, "mod", "fresh")
	require.NoError(t, err)
	assert.Equal(t, mod.ID, got.ID)

	_, err = app.Authenticate(ctx, "mod", "secret")
	require.ErrorIs(t, err, admins.ErrInvalidCredentials)

	gone := &models.Administrator{ID: uuid.New(), Login: "gone"}
	err = app.ChangePassword(ctx, gone, "whatever")
	require.ErrorIs(t, err, models.ErrNotFound)
}
