package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Info is what the client can read from a bearer token without the signing key.
type Info struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is not after now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect parses rawToken as a JWT without verifying it. Opaque (non-JWT) tokens return
// ok=false; the backend remains the authority on validity either way.
func Inspect(rawToken string) (info Info, ok bool) {
	claims := jwtlib.RegisteredClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(rawToken, &claims); err != nil {
		return Info{}, false
	}
	info.Subject = claims.Subject
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, true
}

// Expiry returns the exp claim of rawToken, if it is a JWT that carries one.
func Expiry(rawToken string) (time.Time, bool) {
	info, ok := Inspect(rawToken)
	if !ok || info.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return info.ExpiresAt, true
}
