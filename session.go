package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is the identity record the remote provider vouched for. It is
// held locally only for the lifetime of the process.
type User struct {
	ID          uuid.UUID      `json:"id,omitempty"`
	Email       string         `json:"email,omitempty"`
	Role        string         `json:"role,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	AccessToken string         `json:"-"`
	TokenExpiry *time.Time     `json:"token_expiry,omitempty"`
}

// TokenExpired reports whether the provider token carried by this user
// has a known expiry in the past. Users without an expiry never expire
// locally; the provider remains the authority.
func (u *User) TokenExpired() bool {
	if u == nil || u.TokenExpiry == nil {
		return false
	}
	return u.TokenExpiry.Before(now())
}

// State is the session sum type: either anonymous or authenticated as
// a concrete user. The zero value is anonymous. The authenticated flag
// is derived from user presence on every read, so no reachable State
// can claim "authenticated without a user" or the reverse.
type State struct {
	user *User
}

// Anonymous returns the signed-out state.
func Anonymous() State {
	return State{}
}

// Authenticated returns the signed-in state for u. A nil user is the
// absence marker, so Authenticated(nil) collapses to Anonymous.
func Authenticated(u *User) State {
	if u == nil {
		return State{}
	}
	return State{user: u}
}

// User returns the current user record and whether one is present.
func (s State) User() (*User, bool) {
	return s.user, s.user != nil
}

// IsAuthenticated is strictly derived: true exactly when a user record
// is present.
func (s State) IsAuthenticated() bool {
	return s.user != nil
}

func (s State) String() string {
	if s.user == nil {
		return "session: anonymous"
	}
	return fmt.Sprintf("session: user=%s email=%s", s.user.ID, s.user.Email)
}
