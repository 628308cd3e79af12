package util

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"sync"
)

var (
	jwtSecretByte = []byte(getEnv("JWTSECRET", ""))
	jwtMutex      sync.RWMutex
)

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// SetJWTSecret updates the secret used to sign session tokens.
// Tests using this should avoid parallel execution if they need deterministic secret values.
func SetJWTSecret(secret string) {
	jwtMutex.Lock()
	defer jwtMutex.Unlock()
	jwtSecretByte = []byte(secret)
}

// GetJWTSecretByte returns a copy of the current JWT secret bytes in a thread-safe manner.
func GetJWTSecretByte() []byte {
	jwtMutex.RLock()
	defer jwtMutex.RUnlock()
	return append([]byte(nil), jwtSecretByte...)
}

// EnsureJWTSecret installs a random secret when none is configured and reports whether it did.
// JWTSECRET is read again first, since .env may have been loaded after this package initialised.
// Tokens signed with a generated secret do not survive a restart.
func EnsureJWTSecret() (bool, error) {
	if len(GetJWTSecretByte()) > 0 {
		return false, nil
	}
	if secret := os.Getenv("JWTSECRET"); secret != "" {
		SetJWTSecret(secret)
		return false, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return false, err
	}
	SetJWTSecret(hex.EncodeToString(buf))
	return true, nil
}
