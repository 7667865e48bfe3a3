package config

import (
	"strings"
	"time"
)

type ClientConfig interface {
	GetAPIURL() string
	GetHTTPTimeout() time.Duration
	GetTokenStore() string
}

type Client struct{}

var _ ClientConfig = Client{}

const (
	TokenStoreFile   = "file"
	TokenStoreSQLite = "sqlite"
)

func (Client) GetAPIURL() string {
	return strings.TrimRight(GetEnv("API_URL", "https://betatips-backend.onrender.com/api"), "/")
}

func (Client) GetHTTPTimeout() time.Duration {
	return GetEnvAsDuration("HTTP_TIMEOUT", 15*time.Second)
}

// GetTokenStore selects the durable token repository: "file" or "sqlite".
func (Client) GetTokenStore() string {
	switch store := strings.ToLower(GetEnv("TOKEN_STORE", TokenStoreFile)); store {
	case TokenStoreSQLite:
		return store
	default:
		return TokenStoreFile
	}
}
