package config

import (
	"fmt"
	"time"
)

type DevServerConfig interface {
	GetPort() string
	GetJWTSecret() string
	GetTokenExpiry() time.Duration
	GetAdminUsername() string
	GetAdminPassword() string
	GetLoginRatePerMinute() int
}

type DevServer struct{}

var _ DevServerConfig = DevServer{}

func (DevServer) GetPort() string {
	port := GetEnv("PORT", "5000")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (DevServer) GetJWTSecret() string {
	return GetEnv("DEV_JWT_SECRET", "betatips-dev-secret")
}

func (DevServer) GetTokenExpiry() time.Duration {
	return GetEnvAsDuration("DEV_TOKEN_EXPIRY", 7*24*time.Hour)
}

func (DevServer) GetAdminUsername() string {
	return GetEnv("DEV_ADMIN_USERNAME", "admin")
}

// GetAdminPassword is empty unless configured; the dev server then generates one.
func (DevServer) GetAdminPassword() string {
	return GetEnv("DEV_ADMIN_PASSWORD", "")
}

func (DevServer) GetLoginRatePerMinute() int {
	return GetEnvAsInt("DEV_LOGIN_RATE", 30)
}
