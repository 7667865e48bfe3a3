package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

var ErrInvalidToken = errors.New("invalid token")

// Creator issues and verifies HS256 bearer tokens for the development backend.
type Creator struct {
	secret []byte
	expiry time.Duration
}

// NewCreator creates a new JWT creator
func NewCreator(secret string, expiry time.Duration) (*Creator, error) {
	if secret == "" {
		return nil, errors.New("[NewCreator] secret is required")
	}
	if expiry <= 0 {
		return nil, errors.New("[NewCreator] expiry must be positive")
	}
	return &Creator{secret: []byte(secret), expiry: expiry}, nil
}

// CreateAccessToken creates a bearer token whose subject is the user ID
func (c *Creator) CreateAccessToken(userID string) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(c.expiry)),
		ID:        uuid.New().String(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the subject.
func (c *Creator) Verify(rawToken string) (string, error) {
	claims := jwtlib.RegisteredClaims{}
	parsed, err := jwtlib.ParseWithClaims(rawToken, &claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwtlib.WithTimeFunc(NowTimeFunc), jwtlib.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
