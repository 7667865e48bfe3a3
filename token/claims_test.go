package token_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/betatips/token"
	"github.com/jrsteele09/betatips/token/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectReadsClaimsWithoutKey(t *testing.T) {
	issued := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	jwt.NowTimeFunc = func() time.Time { return issued }
	defer func() { jwt.NowTimeFunc = time.Now }()

	creator, err := jwt.NewCreator("secret", time.Hour)
	require.NoError(t, err)
	raw, err := creator.CreateAccessToken("user-1")
	require.NoError(t, err)

	info, ok := token.Inspect(raw)
	require.True(t, ok)
	assert.Equal(t, "user-1", info.Subject)
	assert.True(t, info.IssuedAt.Equal(issued))
	assert.True(t, info.ExpiresAt.Equal(issued.Add(time.Hour)))
	assert.False(t, info.Expired(issued.Add(59*time.Minute)))
	assert.True(t, info.Expired(issued.Add(time.Hour)))

	exp, ok := token.Expiry(raw)
	require.True(t, ok)
	assert.True(t, exp.Equal(issued.Add(time.Hour)))
}

func TestInspectOpaqueToken(t *testing.T) {
	_, ok := token.Inspect("not-a-jwt")
	assert.False(t, ok)

	_, ok = token.Expiry("")
	assert.False(t, ok)

	assert.False(t, token.Info{}.Expired(time.Now()), "no expiry never expires client side")
}
