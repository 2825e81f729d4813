package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Role is carried on every user record and answers capability questions
// directly.
type Role string

const (
	RoleTrial     Role = "trial"
	RoleRegular   Role = "regular"
	RoleAnonymous Role = "anonymous"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a case-insensitive role name to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown user type %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleTrial, RoleRegular, RoleAnonymous, RoleAdmin:
		return true
	}
	return false
}

// CanCreate reports whether the role may own creations.
func (r Role) CanCreate() bool {
	return r == RoleTrial || r == RoleRegular || r == RoleAnonymous
}

// HasCredentials reports whether users of this role log in with a password.
func (r Role) HasCredentials() bool {
	return r == RoleRegular || r == RoleAnonymous || r == RoleAdmin
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// Credentials are present only for roles with HasCredentials. Both password
// fields hold cryptox digests, never plain text.
type Credentials struct {
	Email            string `json:"email"`
	PasswordHash     string `json:"password_hash"`
	TempPasswordHash string `json:"temp_password_hash,omitempty"`
}

type User struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Role        Role         `json:"role"`
	BannedUntil *time.Time   `json:"banned_until,omitempty"`
	Creations   []string     `json:"creations,omitempty"`
	Inbox       []string     `json:"inbox,omitempty"`
	Credentials *Credentials `json:"credentials,omitempty"`
}

// BannedOn reports whether the ban window is still open on day: the user is
// banned while day is strictly before BannedUntil.
func (u *User) BannedOn(day time.Time) bool {
	return u.BannedUntil != nil && day.Before(*u.BannedUntil)
}

// Clone returns a deep copy so callers never share slices with a store.
func (u *User) Clone() User {
	c := *u
	c.Creations = slices.Clone(u.Creations)
	c.Inbox = slices.Clone(u.Inbox)
	if u.BannedUntil != nil {
		b := *u.BannedUntil
		c.BannedUntil = &b
	}
	if u.Credentials != nil {
		cr := *u.Credentials
		c.Credentials = &cr
	}
	return c
}
