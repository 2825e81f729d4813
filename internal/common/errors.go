// Package common defines shared constants and sentinel errors used across
// the creationhub stores, the access coordinator and the front end. Callers
// should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Policy errors.
	ErrorUnauthorized          = errors.New("unauthorized")
	ErrAdminCannotCreate       = errors.New("admin users cannot make creations")
	ErrMultiReceiverNotAllowed = errors.New("only admin users may send to more than one receiver")
	ErrNoReceivers             = errors.New("message needs at least one receiver")

	// Identity errors.
	ErrWeakPassword    = errors.New("password is too weak")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrEmailTaken      = errors.New("user already registered to email")
	ErrBanned          = errors.New("user is banned")
	ErrWrongPassword   = errors.New("wrong password")
	ErrNoCredentials   = errors.New("user has no credentials")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidEmail    = errors.New("invalid email")

	// Content errors.
	ErrMalformedEventPayload = errors.New("malformed event payload")
	ErrTypeMismatch          = errors.New("event type does not match creation type")
	ErrUnknownCreationType   = errors.New("unknown creation type")

	// Session errors.
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrAlreadyLogged = errors.New("already logged in")
)
