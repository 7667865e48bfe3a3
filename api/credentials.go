package api

import (
	"net/http"
	"sync"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"golang.org/x/oauth2"
)

// Credentials holds the bearer token attached to every outbound call made by a Client.
// It is shared process-wide state: the session manager is its only writer.
type Credentials struct {
	mu    sync.RWMutex
	token string
}

var _ oauth2.TokenSource = (*Credentials)(nil)

func NewCredentials() *Credentials {
	return &Credentials{}
}

func (c *Credentials) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Credentials) Clear() {
	c.Set("")
}

func (c *Credentials) Present() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Token implements oauth2.TokenSource. The token never expires client side; the backend
// decides validity.
func (c *Credentials) Token() (*oauth2.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: c.token, TokenType: "Bearer"}, nil
}

// credentialTransport sends requests anonymously while no token is set, and through
// oauth2.Transport (Authorization: Bearer) once one is.
type credentialTransport struct {
	creds *Credentials
	base  http.RoundTripper
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.creds.Present() {
		return t.base.RoundTrip(req)
	}
	return (&oauth2.Transport{Source: t.creds, Base: t.base}).RoundTrip(req)
}
