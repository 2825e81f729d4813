package session

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/identity"
	"github.com/dmitrijs2005/creationhub/internal/logging"
	"github.com/dmitrijs2005/creationhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pw = "Abcdef123!"

func newManager(t *testing.T) (*Manager, *identity.Store) {
	t.Helper()
	users := identity.NewStore()
	return NewManager(users, "test-secret", time.Hour, logging.Nop()), users
}

func signUp(t *testing.T, m *Manager, name string, role models.Role) string {
	t.Helper()
	id, err := m.SignUp(context.Background(), identity.Registration{Username: name, Email: name + "@example.com", Password: pw, Role: role})
	require.NoError(t, err)
	return id
}

func TestManager_LoginLogout(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	id := signUp(t, m, "alice", models.RoleRegular)

	_, ok := m.Current()
	assert.False(t, ok, "signup does not log in")

	_, err := m.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrWrongPassword)
	_, ok = m.Current()
	assert.False(t, ok, "failed login keeps state")

	tok, err := m.Login(ctx, "alice", pw)
	require.NoError(t, err)
	assert.Equal(t, tok, m.Token())
	cur, ok := m.Current()
	assert.True(t, ok)
	assert.Equal(t, id, cur)

	_, err = m.Login(ctx, "alice", pw)
	assert.ErrorIs(t, err, common.ErrAlreadyLogged)

	got, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	require.NoError(t, m.Logout(ctx))
	assert.ErrorIs(t, m.Logout(ctx), common.ErrNotLoggedIn)
	assert.Empty(t, m.Token())
}

func TestManager_LogoutClearsTempPassword(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	signUp(t, m, "alice", models.RoleRegular)

	temp, err := m.RecoverPassword(ctx, "alice@example.com")
	require.NoError(t, err)

	_, err = m.Login(ctx, "alice", temp)
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	_, err = m.Login(ctx, "alice", temp)
	assert.ErrorIs(t, err, common.ErrWrongPassword)

	_, err = m.RecoverPassword(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestManager_SignUp_Errors(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	signUp(t, m, "alice", models.RoleRegular)

	_, err := m.SignUp(ctx, identity.Registration{Username: "alice", Email: "x@example.com", Password: pw, Role: models.RoleRegular})
	assert.ErrorIs(t, err, common.ErrUsernameTaken)

	_, err = m.SignUp(ctx, identity.Registration{Username: "t", Role: models.RoleTrial})
	assert.Error(t, err)
}

func TestManager_StartTrial(t *testing.T) {
	m, users := newManager(t)
	ctx := context.Background()

	tok, err := m.StartTrial(ctx, "guest")
	require.NoError(t, err)

	id, err := m.Verify(tok)
	require.NoError(t, err)
	role, err := users.Role(id)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTrial, role)

	_, err = m.StartTrial(ctx, "guest2")
	assert.ErrorIs(t, err, common.ErrAlreadyLogged)

	require.NoError(t, m.Logout(ctx))
	_, err = m.StartTrial(ctx, "guest")
	assert.ErrorIs(t, err, common.ErrUsernameTaken)
}

func TestManager_ChangePassword(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	signUp(t, m, "alice", models.RoleRegular)

	assert.ErrorIs(t, m.ChangePassword(ctx, "Zyxwvu987?"), common.ErrNotLoggedIn)

	_, err := m.Login(ctx, "alice", pw)
	require.NoError(t, err)
	assert.ErrorIs(t, m.ChangePassword(ctx, "abc"), common.ErrWeakPassword)
	require.NoError(t, m.ChangePassword(ctx, "Zyxwvu987?"))
	require.NoError(t, m.Logout(ctx))

	_, err = m.Login(ctx, "alice", "Zyxwvu987?")
	assert.NoError(t, err)
}

func TestManager_Ban(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	signUp(t, m, "root", models.RoleAdmin)
	signUp(t, m, "alice", models.RoleRegular)
	signUp(t, m, "bob", models.RoleRegular)

	assert.ErrorIs(t, m.Ban(ctx, "bob", 3), common.ErrNotLoggedIn)

	_, err := m.Login(ctx, "alice", pw)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Ban(ctx, "bob", 3), common.ErrorUnauthorized)
	require.NoError(t, m.Logout(ctx))

	_, err = m.Login(ctx, "root", pw)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Ban(ctx, "nobody", 3), common.ErrorNotFound)
	require.NoError(t, m.Ban(ctx, "bob", 3))
	require.NoError(t, m.Logout(ctx))

	_, err = m.Login(ctx, "bob", pw)
	assert.ErrorIs(t, err, common.ErrBanned)
}

func TestManager_Verify_OtherSecret(t *testing.T) {
	m, _ := newManager(t)
	id := signUp(t, m, "alice", models.RoleRegular)

	tok, err := GenerateToken(id, models.RoleRegular, []byte("other"), time.Hour)
	require.NoError(t, err)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	tok, err = GenerateToken("ghost", models.RoleRegular, []byte("test-secret"), time.Hour)
	require.NoError(t, err)
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
