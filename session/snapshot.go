package session

import (
	"time"

	"github.com/jrsteele09/betatips/users"
)

// Snapshot is an immutable view of the session. User is a private copy.
type Snapshot struct {
	User           *users.User
	HasToken       bool
	TokenExpiry    time.Time // zero when the token carries no readable expiry
	RefreshCounter int
}

// Authenticated reports whether a user has been resolved for the stored token.
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

func (s Snapshot) IsAdmin() bool {
	return s.User != nil && s.User.IsAdmin
}

func (s Snapshot) HasPaid() bool {
	return s.User != nil && s.User.HasPaid
}

func (s Snapshot) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

// Pending reports a stored token whose user could not be resolved yet.
func (s Snapshot) Pending() bool {
	return s.HasToken && s.User == nil
}
