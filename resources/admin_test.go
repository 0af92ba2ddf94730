package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/auth"
	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminManager() *AdminManager {
	return NewAdminManager(database.NewInMemory().AdminRepo(), auth.NewTokenIssuer("test-secret", 0))
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	m := newAdminManager()

	registered, err := m.Register(ctx, AdminInput{Name: "Root", Email: "Root@Example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.NotEqual(t, "s3cret", registered.Password)

	_, err = m.Login(ctx, "root@example.com", "wrong")
	assertStatus(t, http.StatusUnauthorized, err)
	assert.Equal(t, "Invalid password", err.Error())

	_, err = m.Login(ctx, "nobody@example.com", "s3cret")
	assertStatus(t, http.StatusNotFound, err)
	assert.Equal(t, "Admin not found", err.Error())

	session, err := m.Login(ctx, "root@example.com", "s3cret")
	require.NoError(t, err)
	id, err := auth.NewTokenIssuer("test-secret", 0).Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, id)
}

func TestAdminSessionNeverLeaksHash(t *testing.T) {
	m := newAdminManager()
	session, err := m.Register(context.Background(), AdminInput{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)

	raw, err := json.Marshal(session)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "password")
	assert.Equal(t, session.Token, decoded["token"])
	assert.Equal(t, "admin", decoded["role"])
	assert.Equal(t, session.ID.String(), decoded["_id"])
}

func TestAdminRegisterConflict(t *testing.T) {
	ctx := context.Background()
	m := newAdminManager()

	_, err := m.Register(ctx, AdminInput{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	_, err = m.Register(ctx, AdminInput{Email: "A@B.com ", Password: "pw2"})
	assertStatus(t, http.StatusConflict, err)
	assert.Equal(t, "Admin already exists with this email", err.Error())

	_, err = m.Register(ctx, AdminInput{Email: "c@d.com"})
	assertStatus(t, http.StatusBadRequest, err)
}

func TestAdminProfileSelfOnly(t *testing.T) {
	ctx := context.Background()
	m := newAdminManager()

	a, err := m.Register(ctx, AdminInput{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	b, err := m.Register(ctx, AdminInput{Email: "b@b.com", Password: "pw"})
	require.NoError(t, err)

	got, err := m.Profile(ctx, a.ID, a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.Email)

	_, err = m.Profile(ctx, a.ID, b.ID.String())
	assertStatus(t, http.StatusForbidden, err)
	assert.Equal(t, "Forbidden: You can't access this profile", err.Error())

	require.NoError(t, m.Delete(ctx, a.ID.String()))
	_, err = m.Profile(ctx, a.ID, a.ID.String())
	assertStatus(t, http.StatusNotFound, err)
}

func TestAdminDelete(t *testing.T) {
	ctx := context.Background()
	m := newAdminManager()

	assertStatus(t, http.StatusBadRequest, m.Delete(ctx, "bad"))
	assertStatus(t, http.StatusNotFound, m.Delete(ctx, uuid.NewString()))
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	m := newAdminManager()

	created, err := m.EnsureBootstrapAdmin(ctx, AdminInput{})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = m.EnsureBootstrapAdmin(ctx, AdminInput{Email: "root@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = m.EnsureBootstrapAdmin(ctx, AdminInput{Email: "second@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.False(t, created)

	admins, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "Administrator", admins[0].Name)
}
