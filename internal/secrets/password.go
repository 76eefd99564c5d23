package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the tool's secrets in the OS keychain.
	KeyringService = "usajobs"
)

// GetAuthKey returns the stored authorization key for an identity email, or
// "" when none is stored.
func GetAuthKey(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", nil
	}
	key, err := keyring.Get(KeyringService, account(email))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

func SetAuthKey(email, key string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("keyring account email is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("authorization key is empty")
	}
	return keyring.Set(KeyringService, account(email), strings.TrimSpace(key))
}

func DeleteAuthKey(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("keyring account email is empty")
	}
	return keyring.Delete(KeyringService, account(email))
}

func account(email string) string {
	return "usajobs:auth-key:" + strings.ToLower(strings.TrimSpace(email))
}
