// Package session tracks who is logged in on a front end. A Manager moves
// between two states: logged out and logged in as one user. Logging in
// issues a signed token; logging out also clears any temporary password.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/identity"
	"github.com/dmitrijs2005/creationhub/internal/logging"
	"github.com/dmitrijs2005/creationhub/internal/models"
)

type Manager struct {
	users  *identity.Store
	logger logging.Logger
	secret []byte
	ttl    time.Duration

	mu     sync.Mutex
	userID string
	token  string
}

func NewManager(users *identity.Store, secret string, ttl time.Duration, logger logging.Logger) *Manager {
	return &Manager{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger.With("module", "session"),
	}
}

// SignUp registers a credentialed user. It does not log them in.
func (m *Manager) SignUp(ctx context.Context, reg identity.Registration) (string, error) {
	if reg.Role == models.RoleTrial {
		return "", errors.New("trial users start with StartTrial")
	}

	id, err := m.users.Register(reg)
	if err != nil {
		m.logger.Info(ctx, "signup rejected", "username", reg.Username, logging.Err(err))
		return "", err
	}
	m.logger.Info(ctx, "user registered", "user_id", id, "role", reg.Role)
	return id, nil
}

// StartTrial registers a Trial user and logs them in at once, since they
// have no password to log in with later.
func (m *Manager) StartTrial(ctx context.Context, username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.userID != "" {
		return "", common.ErrAlreadyLogged
	}

	id, err := m.users.Register(identity.Registration{Username: username, Role: models.RoleTrial})
	if err != nil {
		return "", err
	}
	if err := m.start(id, models.RoleTrial); err != nil {
		return "", err
	}

	m.logger.Info(ctx, "trial started", "user_id", id)
	return m.token, nil
}

// Login authenticates and returns a session token. A failed attempt leaves
// the manager logged out.
func (m *Manager) Login(ctx context.Context, username, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.userID != "" {
		return "", common.ErrAlreadyLogged
	}

	id, err := m.users.Authenticate(username, password)
	if err != nil {
		m.logger.Warn(ctx, "login failed", "username", username, logging.Err(err))
		return "", err
	}
	role, err := m.users.Role(id)
	if err != nil {
		return "", err
	}
	if err := m.start(id, role); err != nil {
		return "", err
	}

	m.logger.Info(ctx, "logged in", "user_id", id)
	return m.token, nil
}

func (m *Manager) start(userID string, role models.Role) error {
	token, err := GenerateToken(userID, role, m.secret, m.ttl)
	if err != nil {
		return fmt.Errorf("error generating token: %w", err)
	}
	m.userID = userID
	m.token = token
	return nil
}

// Logout ends the session and clears the user's temporary password.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.userID == "" {
		return common.ErrNotLoggedIn
	}

	m.users.Logout(m.userID)
	m.logger.Info(ctx, "logged out", "user_id", m.userID)
	m.userID = ""
	m.token = ""
	return nil
}

// Current returns the logged-in user id.
func (m *Manager) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID, m.userID != ""
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Verify checks a token and returns the user id it was issued to.
func (m *Manager) Verify(token string) (string, error) {
	claims, err := ParseToken(token, m.secret)
	if err != nil {
		return "", err
	}
	if !m.users.Exists(claims.UserID) {
		return "", common.ErrInvalidToken
	}
	return claims.UserID, nil
}

func (m *Manager) RecoverPassword(ctx context.Context, email string) (string, error) {
	temp, err := m.users.RecoverPassword(email)
	if err != nil {
		return "", err
	}
	m.logger.Info(ctx, "temporary password issued", "email", email)
	return temp, nil
}

func (m *Manager) ChangePassword(ctx context.Context, newPassword string) error {
	id, ok := m.Current()
	if !ok {
		return common.ErrNotLoggedIn
	}
	if err := m.users.ChangePassword(id, newPassword); err != nil {
		return err
	}
	m.logger.Info(ctx, "password changed", "user_id", id)
	return nil
}

// Ban bans username for days on behalf of the logged-in user, who must be
// an Admin.
func (m *Manager) Ban(ctx context.Context, username string, days int) error {
	id, ok := m.Current()
	if !ok {
		return common.ErrNotLoggedIn
	}
	target, err := m.users.IDByUsername(username)
	if err != nil {
		return err
	}
	if !m.users.BanUser(id, target, days) {
		m.logger.Warn(ctx, "ban denied", "actor", id, "target", target)
		return common.ErrorUnauthorized
	}
	m.logger.Info(ctx, "user banned", "actor", id, "target", target, "days", days)
	return nil
}
