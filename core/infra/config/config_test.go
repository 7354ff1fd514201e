package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearDeployEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		envBaseURL, envUsername, envPassword, envBearerToken, envTokenURL,
		envClientID, envClientSecret, envScope, envFallbackToken,
		envInstanceName, envAsyncActivate, envIARFiles, envCARFiles, envProfilePath,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	clearDeployEnv(t)
	t.Setenv(envBaseURL, " https://oic.example.com ")
	t.Setenv(envInstanceName, "dev-instance")
	t.Setenv(envAsyncActivate, "TRUE")
	t.Setenv(envIARFiles, "/tmp/archives")

	cfg := Load()
	if cfg.BaseURL != "https://oic.example.com" {
		t.Fatalf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.InstanceName != "dev-instance" {
		t.Fatalf("unexpected instance: %q", cfg.InstanceName)
	}
	if !cfg.AsyncActivation {
		t.Fatalf("expected async activation enabled")
	}
	if cfg.IARFiles != "/tmp/archives" {
		t.Fatalf("unexpected iar input: %q", cfg.IARFiles)
	}
}

func TestValidateTargetMissing(t *testing.T) {
	cfg := &Config{}
	err := cfg.ValidateTarget(envIARFiles)
	if err == nil {
		t.Fatalf("expected error for empty config")
	}
	if !strings.Contains(err.Error(), envBaseURL) || !strings.Contains(err.Error(), envIARFiles) {
		t.Fatalf("error must name missing variables: %v", err)
	}

	cfg = &Config{BaseURL: "https://oic.example.com", CARFiles: "a.car"}
	if err := cfg.ValidateTarget(envCARFiles); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBearerAuth(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"empty", Config{}, false},
		{"static token", Config{BearerToken: "tok"}, true},
		{"fallback token", Config{FallbackToken: "tok"}, true},
		{"full oauth", Config{TokenURL: "u", ClientID: "i", ClientSecret: "s", Scope: "sc"}, true},
		{"partial oauth", Config{TokenURL: "u", ClientID: "i"}, false},
	}
	for _, tc := range cases {
		err := tc.cfg.ValidateBearerAuth()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestValidateBasicAuth(t *testing.T) {
	cfg := &Config{Username: "user"}
	err := cfg.ValidateBasicAuth()
	if err == nil || !strings.Contains(err.Error(), envPassword) {
		t.Fatalf("expected missing password error, got %v", err)
	}
	cfg.Password = "pass"
	if err := cfg.ValidateBasicAuth(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateTokenFetch(t *testing.T) {
	cfg := &Config{TokenURL: "u", ClientID: "i"}
	err := cfg.ValidateTokenFetch()
	if err == nil || !strings.Contains(err.Error(), envClientSecret) || !strings.Contains(err.Error(), envScope) {
		t.Fatalf("expected missing secret/scope error, got %v", err)
	}
}

func TestApplyProfileFillsEmptyFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	profile := `url: https://profile.example.com
instance: profile-instance
async_activation: true
iar_files: /data/iars
`
	if err := os.WriteFile(path, []byte(profile), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	cfg := &Config{BaseURL: "https://env.example.com"}
	if err := cfg.ApplyProfile(path); err != nil {
		t.Fatalf("apply profile: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Fatalf("environment value must win, got %q", cfg.BaseURL)
	}
	if cfg.InstanceName != "profile-instance" || !cfg.AsyncActivation || cfg.IARFiles != "/data/iars" {
		t.Fatalf("profile values not applied: %+v", cfg)
	}
}

func TestApplyProfileRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(path, []byte("password: oops\n"), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	cfg := &Config{}
	if err := cfg.ApplyProfile(path); err == nil {
		t.Fatalf("expected schema validation error for unknown key")
	}
}

func TestValidateProfilePayload(t *testing.T) {
	if err := validateProfile(map[string]any{"url": "https://oic.example.com"}); err != nil {
		t.Fatalf("expected valid payload: %v", err)
	}
	if err := validateProfile(map[string]any{"password": "oops"}); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if err := validateProfile(map[string]any{"url": ""}); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestApplyProfileMissingFile(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ApplyProfile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing profile")
	}
}
