package service

import (
	"testing"

	"sportsfest/auth"
	"sportsfest/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapLogin(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	result, err := service.Login("root", "root-password")
	require.NoError(t, err)
	assert.Equal(t, repository.RoleSuperAdmin, result.Role)
	assert.Equal(t, "/admin", result.LandingPath)
	assert.NotEmpty(t, result.Token)

	// The bootstrap admin is mirrored into admin_users with a real hash.
	user, err := repository.NewUserRepository(db).GetUserByUsername("root")
	require.NoError(t, err)
	assert.True(t, auth.IsHashed(user.PasswordHash))

	session, err := service.ResolveSession(result.Token)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "root", session.Username)
	assert.Equal(t, repository.RoleSuperAdmin, session.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	_, err := service.Login("nobody", "whatever")
	assert.ErrorContains(t, err, "Invalid username or password")

	_, err = service.CreateUser("finance", "ledger-pass", repository.RoleFinanceAdmin)
	require.NoError(t, err)

	_, err = service.Login("finance", "wrong-pass")
	assert.ErrorContains(t, err, "Invalid username or password")
}

func TestCreatedUserCanLogIn(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	_, err := service.CreateUser("finance", "ledger-pass", repository.RoleFinanceAdmin)
	require.NoError(t, err)

	result, err := service.Login("finance", "ledger-pass")
	require.NoError(t, err)
	assert.Equal(t, repository.RoleFinanceAdmin, result.Role)
	assert.Equal(t, "/admin/finance", result.LandingPath)
}

func TestLegacyPlaintextPasswordIsUpgradedOnLogin(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)
	userRepository := repository.NewUserRepository(db)

	_, err := userRepository.SaveUser(&repository.AdminUser{
		Username:     "legacy",
		PasswordHash: "oldplaintext",
		Role:         repository.RoleInventoryAdmin,
	})
	require.NoError(t, err)

	result, err := service.Login("legacy", "oldplaintext")
	require.NoError(t, err)
	assert.Equal(t, "/admin/inventory", result.LandingPath)

	user, err := userRepository.GetUserByUsername("legacy")
	require.NoError(t, err)
	assert.True(t, auth.IsHashed(user.PasswordHash))

	_, err = service.Login("legacy", "oldplaintext")
	require.NoError(t, err)
}

func TestResolveSessionNeverErrorsOnBadTokens(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	session, err := service.ResolveSession("not-a-jwt")
	require.NoError(t, err)
	assert.Nil(t, session)

	session, err = service.ResolveSession("")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestLogoutRevokesTheSession(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	result, err := service.Login("root", "root-password")
	require.NoError(t, err)

	require.NoError(t, service.Logout(result.Token))

	session, err := service.ResolveSession(result.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestUserManagement(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db)

	_, err := service.CreateUser("finance", "ledger-pass", "accountant")
	assert.ErrorContains(t, err, "Invalid role")

	user, err := service.CreateUser("finance", "ledger-pass", repository.RoleFinanceAdmin)
	require.NoError(t, err)

	_, err = service.CreateUser("finance", "other-pass", repository.RoleAdmin)
	assert.ErrorContains(t, err, "already taken")

	updated, err := service.UpdateUser(user.Id, "", repository.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, repository.RoleAdmin, updated.Role)

	err = service.DeleteUser(user.Id, "finance")
	assert.ErrorContains(t, err, "your own account")

	require.NoError(t, service.DeleteUser(user.Id, "root"))

	users, err := service.GetUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
}
