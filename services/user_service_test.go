package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rleomotos-api/models"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Create(UserInput{
		Name: "Vendedor", Email: "vendedor@rleomotos.com", Password: "senha123",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Create(UserInput{
		Name: "Outro", Email: "vendedor@rleomotos.com", Password: "senha123",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestCreateUserValidatesInput(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Create(UserInput{Name: "X", Email: "not-an-email", Password: "senha123"}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))

	_, err = svc.Create(UserInput{Name: "X", Email: "x@rleomotos.com", Password: "12345"}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestCreateUserCollapsesDuplicateRoles(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	created, err := svc.Create(UserInput{
		Name: "Gerente", Email: "gerente@rleomotos.com", Password: "senha123",
		Roles: []string{"admin", "admin"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, created.RoleNames())

	var links int64
	require.NoError(t, db.Model(&models.UserRole{}).Where("user_id = ?", created.ID).Count(&links).Error)
	assert.Equal(t, int64(1), links)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Create(UserInput{
		Name: "X", Email: "x@rleomotos.com", Password: "senha123",
		Roles: []string{"manager"},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestUpdateUserReplacesRoleSet(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	created, err := svc.Create(UserInput{
		Name: "Vendedor", Email: "vendedor@rleomotos.com", Password: "senha123",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"client"}, created.RoleNames())

	updated, err := svc.Update(created.ID, UserInput{Roles: []string{"admin", "viewer"}}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"admin", "viewer"}, updated.RoleNames())

	// A nil role list leaves the current set alone.
	updated, err = svc.Update(created.ID, UserInput{Name: "Vendedor Silva"}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"admin", "viewer"}, updated.RoleNames())
	assert.Equal(t, "Vendedor Silva", updated.Name)
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	created, err := svc.Create(UserInput{
		Name: "Vendedor", Email: "vendedor@rleomotos.com", Password: "senha123",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Update(created.ID, UserInput{Email: "admin@rleomotos.com"}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestUpdateUserRejectsMalformedEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	created, err := svc.Create(UserInput{
		Name: "Vendedor", Email: "vendedor@rleomotos.com", Password: "senha123",
	}, nil)
	require.NoError(t, err)

	_, err = svc.Update(created.ID, UserInput{Email: "not-an-email"}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))

	// The stored address is untouched.
	reloaded, err := svc.FindOne(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "vendedor@rleomotos.com", reloaded.Email)
}

func TestSoftDeleteKeepsRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	created, err := svc.Create(UserInput{
		Name: "Vendedor", Email: "vendedor@rleomotos.com", Password: "senha123",
	}, nil)
	require.NoError(t, err)

	deleted, err := svc.SoftDelete(created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusInactive, deleted.Status)

	var row models.User
	require.NoError(t, db.First(&row, created.ID).Error)
	assert.Equal(t, models.UserStatusInactive, row.Status)

	// Inactive accounts are hidden from the read paths.
	_, err = svc.FindOne(created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	listed, err := svc.FindAll()
	require.NoError(t, err)
	for _, u := range listed {
		assert.NotEqual(t, created.ID, u.ID)
	}
}

func TestMutationsWriteAuditTrail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := userByEmail(t, db, "admin@rleomotos.com")

	created, err := svc.Create(UserInput{
		Name: "Vendedor", Email: "vendedor@rleomotos.com", Password: "senha123",
	}, &admin.ID)
	require.NoError(t, err)
	_, err = svc.SoftDelete(created.ID, &admin.ID)
	require.NoError(t, err)

	var entries []models.AuditLog
	require.NoError(t, db.Where("entity = ? AND entity_id = ?", "users", created.ID).
		Order("id ASC").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, "create", entries[0].Action)
	assert.Equal(t, "delete", entries[1].Action)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, admin.ID, *entries[0].UserID)
}
