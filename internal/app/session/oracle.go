/*
Package session models the sign-in session contract the web core depends on.

The identity provider itself (token issuance, refresh, sign-in UI) is an
external collaborator; this package only implements the contract the core
requires from it: a nullable current user, a bearer credential obtained per
call, and a subscription primitive that invokes listeners whenever the sign-in
state changes.
*/
package session

import (
	"errors"

	"learnloop/internal/pkg/auth/jwt"
)

// ErrNoSession is returned when a bearer credential is requested for a caller
// that has no signed-in session.
var ErrNoSession = errors.New("no signed-in session")

// User is the read-only projection of the signed-in account the core works
// with. Account records themselves are owned by the platform backend.
type User struct {
	// ID is the stable account identifier issued by the identity provider.
	ID string `json:"id"`

	// Name is the account holder's display name.
	Name string `json:"name,omitempty"`

	// Username is the identity provider's handle for the account.
	Username string `json:"username,omitempty"`

	// ImageURL points at the account's avatar.
	ImageURL string `json:"imageUrl,omitempty"`
}

// DisplayName returns the friendliest available name for greeting the user,
// matching what the navigation bar and dashboard show.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Oracle is the session contract consumed by the Access Gate, the Onboarding
// Wizard, and the Job Tracker.
type Oracle interface {
	// CurrentUser returns the signed-in user, or nil when nobody is signed in.
	CurrentUser() *User

	// BearerToken returns the credential for authenticated backend calls.
	// It is obtained per call and must not be cached beyond that call.
	BearerToken() (string, error)

	// Subscribe registers a listener invoked whenever the sign-in state
	// changes. The returned function unsubscribes the listener; callers must
	// invoke it on page teardown to avoid leaks across reloads.
	Subscribe(listener func(*User)) (unsubscribe func())
}

// TokenOracle is an Oracle backed by a parsed bearer token. It is the
// request-scoped implementation used by the HTTP surface, and doubles as the
// mutable oracle for long-lived embedded clients via SetUser.
type TokenOracle struct {
	subject *Subject
	token   string
}

// NewTokenOracle builds a TokenOracle from an already-validated identity
// payload and the raw token it was parsed from. Both may be empty for an
// anonymous caller.
func NewTokenOracle(payload *jwt.Payload, token string) *TokenOracle {
	var u *User
	if payload != nil {
		u = &User{
			ID:       payload.UserID(),
			Name:     payload.Name,
			Username: payload.Username,
			ImageURL: payload.ImageURL,
		}
	}

	return &TokenOracle{
		subject: NewSubject(u),
		token:   token,
	}
}

// CurrentUser returns the signed-in user, or nil for anonymous callers.
func (o *TokenOracle) CurrentUser() *User {
	return o.subject.Current()
}

// BearerToken returns the raw bearer token, or ErrNoSession when the caller is
// anonymous.
func (o *TokenOracle) BearerToken() (string, error) {
	if o.subject.Current() == nil || o.token == "" {
		return "", ErrNoSession
	}
	return o.token, nil
}

// Subscribe registers a sign-in state listener. See Oracle.
func (o *TokenOracle) Subscribe(listener func(*User)) func() {
	return o.subject.Subscribe(listener)
}

// SetUser replaces the signed-in user and notifies subscribers. A nil user
// together with an emptied token represents sign-out.
func (o *TokenOracle) SetUser(u *User, token string) {
	o.token = token
	o.subject.Set(u)
}
