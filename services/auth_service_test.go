package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rleomotos-api/config"
	"rleomotos-api/models"
)

func newAuthFixture(t *testing.T) (*gorm.DB, *AuthService, *TokenService) {
	t.Helper()
	db := newTestDB(t)
	tokens := NewTokenService(&config.Config{
		JWTAccessSecret:  "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		AccessTTL:        time.Minute,
		RefreshTTL:       time.Hour,
	})
	auth := NewAuthService(db, NewUserService(db), tokens)
	return db, auth, tokens
}

func TestLoginIssuesTokenPair(t *testing.T) {
	db, auth, tokens := newAuthFixture(t)

	result, err := auth.Login("admin@rleomotos.com", "admin123", RequestMeta{UserAgent: "test", IP: "127.0.0.1"})
	require.NoError(t, err)
	require.NotNil(t, result.Tokens)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	require.NotNil(t, result.User.LastLoginAt)

	claims, err := tokens.VerifyAccess(result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@rleomotos.com", claims.Email)
	assert.Contains(t, claims.Roles, "admin")

	var stored int64
	require.NoError(t, db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", result.User.ID).
		Count(&stored).Error)
	assert.Equal(t, int64(1), stored)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	_, auth, _ := newAuthFixture(t)

	_, err := auth.Login("admin@rleomotos.com", "not-the-password", RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	_, err = auth.Login("nobody@rleomotos.com", "admin123", RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	db, auth, _ := newAuthFixture(t)

	viewer := userByEmail(t, db, "viewer@rleomotos.com")
	require.NoError(t, db.Model(&viewer).Update("status", models.UserStatusInactive).Error)

	_, err := auth.Login("viewer@rleomotos.com", "viewer123", RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestRefreshRejectedAfterDeactivation(t *testing.T) {
	db, auth, _ := newAuthFixture(t)

	login, err := auth.Login("admin@rleomotos.com", "admin123", RequestMeta{})
	require.NoError(t, err)

	admin := userByEmail(t, db, "admin@rleomotos.com")
	require.NoError(t, db.Model(&admin).Update("status", models.UserStatusInactive).Error)

	_, err = auth.Refresh(login.Tokens.RefreshToken, RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestRefreshRotatesToken(t *testing.T) {
	_, auth, _ := newAuthFixture(t)

	login, err := auth.Login("admin@rleomotos.com", "admin123", RequestMeta{})
	require.NoError(t, err)
	original := login.Tokens.RefreshToken

	rotated, err := auth.Refresh(original, RequestMeta{})
	require.NoError(t, err)
	assert.NotEqual(t, original, rotated.Tokens.RefreshToken)

	// The consumed token is dead.
	_, err = auth.Refresh(original, RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	// The replacement still works.
	_, err = auth.Refresh(rotated.Tokens.RefreshToken, RequestMeta{})
	require.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	_, auth, _ := newAuthFixture(t)

	login, err := auth.Login("admin@rleomotos.com", "admin123", RequestMeta{})
	require.NoError(t, err)
	token := login.Tokens.RefreshToken

	require.NoError(t, auth.Logout(login.User.ID, token))

	err = auth.Logout(login.User.ID, token)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	_, err = auth.Refresh(token, RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestAccessTokenNotAcceptedAsRefresh(t *testing.T) {
	_, auth, tokens := newAuthFixture(t)

	login, err := auth.Login("admin@rleomotos.com", "admin123", RequestMeta{})
	require.NoError(t, err)

	// Distinct secrets keep the token kinds from being interchangeable.
	_, err = tokens.VerifyRefresh(login.Tokens.AccessToken)
	require.Error(t, err)

	_, err = auth.Refresh(login.Tokens.AccessToken, RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestRegisterDefaultsToClientRole(t *testing.T) {
	_, auth, _ := newAuthFixture(t)

	result, err := auth.Register("Novo Cliente", "novo@rleomotos.com", "senha123", nil, RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, []string{"client"}, result.User.RoleNames())
	assert.NotEmpty(t, result.Tokens.AccessToken)

	_, err = auth.Register("Outro", "novo@rleomotos.com", "senha123", nil, RequestMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}
