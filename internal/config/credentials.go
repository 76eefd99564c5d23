package config

import (
	"fmt"
	"strings"

	"usajobs-list/internal/common"
)

const (
	EnvEmail   = "YOUR_EMAIL"
	EnvAuthKey = "AUTH_KEY"
)

// Credentials are sent verbatim as request headers.
type Credentials struct {
	Email   string // User-Agent
	AuthKey string // Authorization-Key
}

// KeyFallback resolves an authorization key for an identity when the
// environment has none. It returns "" when nothing is stored.
type KeyFallback func(email string) (string, error)

// LoadCredentials reads YOUR_EMAIL and AUTH_KEY. Both are required; fallback
// may be nil.
func LoadCredentials(lookup func(string) (string, bool), fallback KeyFallback) (Credentials, error) {
	get := func(k string) string {
		v, _ := lookup(k)
		return strings.TrimSpace(v)
	}

	c := Credentials{
		Email:   get(EnvEmail),
		AuthKey: get(EnvAuthKey),
	}
	if c.Email == "" {
		return Credentials{}, common.ConfigError(EnvEmail+" is required", common.ErrMissingCredential)
	}
	if c.AuthKey == "" && fallback != nil {
		key, err := fallback(c.Email)
		if err != nil {
			// An unreachable keychain still reports the missing variable first.
			return Credentials{}, common.ConfigError(EnvAuthKey+" is required (env or keychain)",
				fmt.Errorf("%w (keychain lookup failed: %w)", common.ErrMissingCredential, err))
		}
		c.AuthKey = strings.TrimSpace(key)
	}
	if c.AuthKey == "" {
		return Credentials{}, common.ConfigError(EnvAuthKey+" is required (env or keychain)", common.ErrMissingCredential)
	}
	return c, nil
}
