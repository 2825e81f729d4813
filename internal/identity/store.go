// Package identity holds every user record and enforces the identity rules:
// username and email uniqueness, password strength, ban windows, password
// recovery, and the per-user creation and inbox lists.
package identity

import (
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/cryptox"
	"github.com/dmitrijs2005/creationhub/internal/models"
	"github.com/dmitrijs2005/creationhub/internal/timex"
	"github.com/google/uuid"
)

// Registration is the pre-validated signup input. Email and Password are
// ignored for Trial users.
type Registration struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

// Snapshot is the persisted form of a Store.
type Snapshot struct {
	Users []models.User `json:"users"`
}

type Store struct {
	mu    sync.RWMutex
	users map[string]*models.User
	now   func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now, used for ban windows.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{users: make(map[string]*models.User), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) today() time.Time {
	return timex.Day(s.now())
}

// Register adds a user and returns its id. Credentialed roles need a strong
// enough password, an unused username and an unused email; Trial users only
// need an unused username.
func (s *Store) Register(reg Registration) (string, error) {
	if !reg.Role.Valid() {
		return "", fmt.Errorf("unknown user type %q", reg.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := &models.User{
		ID:       uuid.NewString(),
		Username: reg.Username,
		Role:     reg.Role,
	}

	if reg.Role.HasCredentials() {
		if PasswordStrength(reg.Password) < MinPasswordStrength {
			return "", common.ErrWeakPassword
		}
		if s.findByUsername(reg.Username) != nil {
			return "", common.ErrUsernameTaken
		}
		if s.findByEmail(reg.Email) != nil {
			return "", common.ErrEmailTaken
		}
		user.Credentials = &models.Credentials{
			Email:        reg.Email,
			PasswordHash: cryptox.HashSecret(reg.Password),
		}
	} else if s.findByUsername(reg.Username) != nil {
		return "", common.ErrUsernameTaken
	}

	s.users[user.ID] = user
	return user.ID, nil
}

// Authenticate checks username and password and returns the user id.
// A ban is checked before the password; either the permanent or the
// temporary password is accepted.
func (s *Store) Authenticate(username, password string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findByUsername(username)
	if u == nil {
		return "", common.ErrorNotFound
	}
	if u.BannedOn(s.today()) {
		return "", common.ErrBanned
	}
	if u.Credentials == nil {
		return "", fmt.Errorf("%w: %w", common.ErrWrongPassword, common.ErrNoCredentials)
	}

	cr := u.Credentials
	if cryptox.VerifySecret(cr.PasswordHash, password) {
		return u.ID, nil
	}
	if cr.TempPasswordHash != "" && cryptox.VerifySecret(cr.TempPasswordHash, password) {
		return u.ID, nil
	}
	return "", common.ErrWrongPassword
}

// RecoverPassword issues a 14-character temporary password for the account
// registered to email. The token stays valid until logout or a password
// change.
func (s *Store) RecoverPassword(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findByEmail(email)
	if u == nil {
		return "", common.ErrorNotFound
	}

	temp, err := common.MakeRandHexString(common.TempPasswordBytes)
	if err != nil {
		return "", fmt.Errorf("error generating temporary password: %w", err)
	}
	u.Credentials.TempPasswordHash = cryptox.HashSecret(temp)
	return temp, nil
}

// BanUser sets target's ban-until to today + days. It is a no-op returning
// false unless the acting user is an Admin. Negative days yield a date in
// the past, which lifts any active ban.
func (s *Store) BanUser(adminID, targetID string, days int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin, ok := s.users[adminID]
	if !ok || !admin.Role.IsAdmin() {
		return false
	}
	target, ok := s.users[targetID]
	if !ok {
		return false
	}

	until := s.today().AddDate(0, 0, days)
	target.BannedUntil = &until
	return true
}

// ChangePassword replaces the permanent password and drops any temporary one.
func (s *Store) ChangePassword(userID, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	if u.Credentials == nil {
		return common.ErrNoCredentials
	}
	if PasswordStrength(newPassword) < MinPasswordStrength {
		return common.ErrWeakPassword
	}

	u.Credentials.PasswordHash = cryptox.HashSecret(newPassword)
	u.Credentials.TempPasswordHash = ""
	return nil
}

// Logout clears the temporary password. It returns false for unknown users
// and users without credentials.
func (s *Store) Logout(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok || u.Credentials == nil {
		return false
	}
	u.Credentials.TempPasswordHash = ""
	return true
}

// Rename changes a username, keeping usernames unique.
func (s *Store) Rename(userID, newUsername string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	if other := s.findByUsername(newUsername); other != nil && other.ID != userID {
		return common.ErrUsernameTaken
	}
	u.Username = newUsername
	return nil
}

func (s *Store) Get(userID string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return models.User{}, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (s *Store) Exists(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[userID]
	return ok
}

// Users returns copies of all users ordered by username.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.User, 0, len(s.users))
	for _, u := range s.sorted() {
		res = append(res, u.Clone())
	}
	return res
}

func (s *Store) IDByUsername(username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findByUsername(username)
	if u == nil {
		return "", common.ErrorNotFound
	}
	return u.ID, nil
}

func (s *Store) Role(userID string) (models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return "", common.ErrorNotFound
	}
	return u.Role, nil
}

// IsAdmin is false for unknown users.
func (s *Store) IsAdmin(userID string) bool {
	role, err := s.Role(userID)
	return err == nil && role.IsAdmin()
}

func (s *Store) UsernameAvailable(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByUsername(username) == nil
}

// DisplayName is the name viewerID sees for userID: anonymous users are
// masked unless the viewer is an Admin or the user themself.
func (s *Store) DisplayName(viewerID, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return "", common.ErrorNotFound
	}
	if u.Role != models.RoleAnonymous || viewerID == userID {
		return u.Username, nil
	}
	if viewer, ok := s.users[viewerID]; ok && viewer.Role.IsAdmin() {
		return u.Username, nil
	}
	return common.AnonymousDisplayName, nil
}

// OwnerOf returns the id of the user holding creationID.
func (s *Store) OwnerOf(creationID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if slices.Contains(u.Creations, creationID) {
			return u.ID, true
		}
	}
	return "", false
}

// AddCreation records ownership. No-op for users that cannot create.
func (s *Store) AddCreation(userID, creationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok || !u.Role.CanCreate() || slices.Contains(u.Creations, creationID) {
		return
	}
	u.Creations = append(u.Creations, creationID)
}

func (s *Store) RemoveCreation(userID, creationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return
	}
	if i := slices.Index(u.Creations, creationID); i >= 0 {
		u.Creations = slices.Delete(u.Creations, i, i+1)
	}
}

func (s *Store) Creations(userID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	return slices.Clone(u.Creations)
}

// OthersCreations is the union of every other user's creations, grouped by
// owner in username order.
func (s *Store) OthersCreations(viewerID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []string
	for _, u := range s.sorted() {
		if u.ID != viewerID {
			res = append(res, u.Creations...)
		}
	}
	return res
}

// AddToInbox delivers messageID once to userID.
func (s *Store) AddToInbox(userID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok || slices.Contains(u.Inbox, messageID) {
		return
	}
	u.Inbox = append(u.Inbox, messageID)
}

// RemoveFromInbox hides a message from one user's inbox only.
func (s *Store) RemoveFromInbox(userID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return
	}
	if i := slices.Index(u.Inbox, messageID); i >= 0 {
		u.Inbox = slices.Delete(u.Inbox, i, i+1)
	}
}

func (s *Store) Inbox(userID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	return slices.Clone(u.Inbox)
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{Users: s.Users()}
}

// Restore replaces the store content with snap.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]*models.User, len(snap.Users))
	for i := range snap.Users {
		u := snap.Users[i].Clone()
		s.users[u.ID] = &u
	}
}

func (s *Store) findByUsername(username string) *models.User {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// findByEmail only sees credentialed users.
func (s *Store) findByEmail(email string) *models.User {
	for _, u := range s.users {
		if u.Credentials != nil && u.Credentials.Email == email {
			return u
		}
	}
	return nil
}

func (s *Store) sorted() []*models.User {
	res := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		res = append(res, u)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Username == res[j].Username {
			return res[i].ID < res[j].ID
		}
		return res[i].Username < res[j].Username
	})
	return res
}
