package config

import (
	"bytes"
	"fmt"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Profile is the optional YAML companion to the environment variables. It
// carries no secrets: passwords, client secrets and tokens stay in the
// environment or the keyring.
type Profile struct {
	URL             string `yaml:"url"`
	Instance        string `yaml:"instance"`
	AsyncActivation *bool  `yaml:"async_activation"`
	TokenURL        string `yaml:"token_url"`
	ClientID        string `yaml:"client_id"`
	Scope           string `yaml:"scope"`
	IARFiles        string `yaml:"iar_files"`
	CARFiles        string `yaml:"car_files"`
}

// ApplyProfile reads the profile file at path, validates it against the
// embedded schema, and fills any Config field the environment left empty.
func (c *Config) ApplyProfile(path string) error {
	// #nosec G304 -- profile path is provided by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	var payload any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}
	if err := validateProfile(payload); err != nil {
		return fmt.Errorf("validate profile %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}

	if c.BaseURL == "" {
		c.BaseURL = profile.URL
	}
	if c.InstanceName == "" {
		c.InstanceName = profile.Instance
	}
	if profile.AsyncActivation != nil && !c.AsyncActivation {
		c.AsyncActivation = *profile.AsyncActivation
	}
	if c.TokenURL == "" {
		c.TokenURL = profile.TokenURL
	}
	if c.ClientID == "" {
		c.ClientID = profile.ClientID
	}
	if c.Scope == "" {
		c.Scope = profile.Scope
	}
	if c.IARFiles == "" {
		c.IARFiles = profile.IARFiles
	}
	if c.CARFiles == "" {
		c.CARFiles = profile.CARFiles
	}
	return nil
}

const profileSchemaID = "inmemory://profile"

// validateProfile checks the decoded YAML payload against the embedded
// schema before anything is mapped onto the Config, so a typoed key fails
// loudly instead of being dropped.
func validateProfile(payload any) error {
	raw, err := profileSchemaFS.ReadFile(profileSchemaFile)
	if err != nil {
		return fmt.Errorf("load profile schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(profileSchemaID, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("add profile schema: %w", err)
	}
	compiled, err := compiler.Compile(profileSchemaID)
	if err != nil {
		return fmt.Errorf("compile profile schema: %w", err)
	}
	return compiled.Validate(payload)
}
