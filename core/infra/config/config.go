// Package config builds the immutable deployment target for a run from
// environment variables and an optional YAML profile. Environment values
// always win over profile values.
package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	envBaseURL       = "OIC_URL"
	envUsername      = "OIC_USERNAME"
	envPassword      = "OIC_PASSWORD"
	envBearerToken   = "OIC_BEARER_TOKEN"
	envTokenURL      = "OIC_TOKEN_URL"
	envClientID      = "OIC_CLIENT_ID"
	envClientSecret  = "OIC_CLIENT_SECRET"
	envScope         = "OIC_SCOPE"
	envFallbackToken = "OIC_FALLBACK_BEARER_TOKEN"
	envInstanceName  = "OIC_INSTANCE_NAME"
	envAsyncActivate = "OIC_ENABLE_ASYNC_ACTIVATION"
	envIARFiles      = "IAR_FILES"
	envCARFiles      = "CAR_FILES"
	envProfilePath   = "OIC_PROFILE"
)

// Config holds every setting a deployment run can use. It is constructed
// once at startup and passed down; nothing reads the environment later.
type Config struct {
	BaseURL string

	// Basic auth.
	Username string
	Password string

	// Bearer auth: a static token, or client credentials for the token
	// endpoint, plus an optional fallback token.
	BearerToken   string
	TokenURL      string
	ClientID      string
	ClientSecret  string
	Scope         string
	FallbackToken string

	InstanceName    string
	AsyncActivation bool

	// Raw archive inputs: a directory path or a comma-separated file list.
	IARFiles string
	CARFiles string

	ProfilePath string
}

// Load returns configuration read from the environment.
func Load() *Config {
	return &Config{
		BaseURL:         strings.TrimSpace(os.Getenv(envBaseURL)),
		Username:        os.Getenv(envUsername),
		Password:        os.Getenv(envPassword),
		BearerToken:     strings.TrimSpace(os.Getenv(envBearerToken)),
		TokenURL:        strings.TrimSpace(os.Getenv(envTokenURL)),
		ClientID:        strings.TrimSpace(os.Getenv(envClientID)),
		ClientSecret:    os.Getenv(envClientSecret),
		Scope:           strings.TrimSpace(os.Getenv(envScope)),
		FallbackToken:   strings.TrimSpace(os.Getenv(envFallbackToken)),
		InstanceName:    strings.TrimSpace(os.Getenv(envInstanceName)),
		AsyncActivation: strings.EqualFold(strings.TrimSpace(os.Getenv(envAsyncActivate)), "true"),
		IARFiles:        strings.TrimSpace(os.Getenv(envIARFiles)),
		CARFiles:        strings.TrimSpace(os.Getenv(envCARFiles)),
		ProfilePath:     strings.TrimSpace(os.Getenv(envProfilePath)),
	}
}

// HasBasicAuth reports whether username/password credentials are present.
func (c *Config) HasBasicAuth() bool {
	return c.Username != "" && c.Password != ""
}

// HasOAuthCredentials reports whether the full client-credentials set is present.
func (c *Config) HasOAuthCredentials() bool {
	return c.TokenURL != "" && c.ClientID != "" && c.ClientSecret != "" && c.Scope != ""
}

// ValidateTarget checks the settings every deployment run needs. archiveEnv
// names the archive input variable required by the subcommand.
func (c *Config) ValidateTarget(archiveEnv string) error {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, envBaseURL)
	}
	if archives := c.ArchiveInput(archiveEnv); archives == "" {
		missing = append(missing, archiveEnv)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateBearerAuth checks that some path to a bearer token exists: a static
// token, full client credentials, or a fallback token.
func (c *Config) ValidateBearerAuth() error {
	if c.BearerToken != "" || c.HasOAuthCredentials() || c.FallbackToken != "" {
		return nil
	}
	return fmt.Errorf("no bearer token source: set %s, or %s/%s/%s/%s, or %s",
		envBearerToken, envTokenURL, envClientID, envClientSecret, envScope, envFallbackToken)
}

// ValidateBasicAuth checks username/password presence.
func (c *Config) ValidateBasicAuth() error {
	var missing []string
	if c.Username == "" {
		missing = append(missing, envUsername)
	}
	if c.Password == "" {
		missing = append(missing, envPassword)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateTokenFetch checks the client-credentials set needed to call the
// token endpoint directly.
func (c *Config) ValidateTokenFetch() error {
	var missing []string
	if c.TokenURL == "" {
		missing = append(missing, envTokenURL)
	}
	if c.ClientID == "" {
		missing = append(missing, envClientID)
	}
	if c.ClientSecret == "" {
		missing = append(missing, envClientSecret)
	}
	if c.Scope == "" {
		missing = append(missing, envScope)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ArchiveInput returns the raw archive input for the given variable name.
func (c *Config) ArchiveInput(archiveEnv string) string {
	switch archiveEnv {
	case envCARFiles:
		return c.CARFiles
	default:
		return c.IARFiles
	}
}

// IAREnv and CAREnv name the archive input variables for error messages.
func IAREnv() string { return envIARFiles }
func CAREnv() string { return envCARFiles }
