package services

import (
	"testing"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedAdmin(t *testing.T, env *testEnv, username, password string, perms []string) *models.Admin {
	t.Helper()

	var roleID *uint
	if perms != nil {
		role := &models.Role{Name: "staff-" + username}
		for _, p := range perms {
			role.Permissions = append(role.Permissions, models.RolePermission{Permission: p})
		}
		require.NoError(t, env.store.Admins().CreateRole(role))
		roleID = &role.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &models.Admin{Username: username, Password: string(hash), RoleID: roleID}
	require.NoError(t, env.store.Admins().Create(admin))
	return admin
}

func TestLoginAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	seedAdmin(t, env, "manager", "hunter2", nil)

	token, admin, err := env.auth.Login("manager", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "manager", admin.Username)

	resolved, err := env.auth.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, resolved.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	seedAdmin(t, env, "manager", "hunter2", nil)

	_, _, err := env.auth.Login("manager", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = env.auth.Login("nobody", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = env.auth.Login("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	seedAdmin(t, env, "manager", "hunter2", nil)

	token, _, err := env.auth.Login("manager", "hunter2")
	require.NoError(t, err)
	require.NoError(t, env.auth.Logout(token))

	_, err = env.auth.Authenticate(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestHasPermission(t *testing.T) {
	env := newTestEnv(t)
	admin := seedAdmin(t, env, "clerk", "pw", []string{"bookings.view", "payments.view"})
	noRole := seedAdmin(t, env, "temp", "pw", nil)

	ok, err := env.auth.HasPermission(admin.ID, "bookings.view")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.auth.HasPermission(admin.ID, "settings.edit")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.auth.HasPermission(noRole.ID, "bookings.view")
	require.NoError(t, err)
	assert.False(t, ok)
}
