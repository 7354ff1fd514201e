// Package secrets keeps credential material out of log output and stores
// the fallback bearer token in the operating system keyring.
package secrets

import (
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService  = "oic-deploy"
	keyringTokenKey = "fallback-bearer-token"

	redactedPlaceholder = "<redacted>"
)

// Mask returns a keyhole view of a secret suitable for logs. Short values
// are fully masked so that nothing recoverable leaks.
func Mask(secret string) string {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return redactedPlaceholder
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

// Scrub replaces every occurrence of the given secret values in s. Empty
// values are skipped so a blank password cannot wipe the whole string.
func Scrub(s string, values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		s = strings.ReplaceAll(s, v, redactedPlaceholder)
	}
	return s
}

// SaveFallbackToken stores a bearer token in the OS keyring.
func SaveFallbackToken(token string) error {
	return keyring.Set(keyringService, keyringTokenKey, token)
}

// LoadFallbackToken returns the stored bearer token, or "" when the keyring
// has no entry or is unavailable on this platform.
func LoadFallbackToken() string {
	token, err := keyring.Get(keyringService, keyringTokenKey)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(token)
}

// ClearFallbackToken removes the stored bearer token if present.
func ClearFallbackToken() error {
	err := keyring.Delete(keyringService, keyringTokenKey)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}
