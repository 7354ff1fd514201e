package oic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
)

// ImportResult describes a successful archive import.
type ImportResult struct {
	// IntegrationID is the CODE|VERSION identifier to activate. Either the
	// id the server returned, or one derived from the archive filename.
	IntegrationID string
	// Derived is true when the identifier came from the filename.
	Derived bool
	// Replaced is true when a 409 conflict was resolved by a PUT replace.
	Replaced bool
}

type importResponse struct {
	Status  string `json:"status"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (c *Client) archiveURL(path string) string {
	u := c.endpoint(path)
	if c.instance != "" {
		u += "?integrationInstance=" + url.QueryEscape(c.instance)
	}
	return u
}

// ImportIntegration uploads an .iar archive. On a 409 conflict the same
// multipart body is retried once as a PUT to the same URL, replacing the
// existing integration; the identifier is then always derived from the
// filename because the replace response carries no body.
func (c *Client) ImportIntegration(ctx context.Context, archivePath string) (*ImportResult, error) {
	target := c.archiveURL("/integrations/archive")
	basename := filepath.Base(archivePath)

	status, body, err := c.uploadArchive(ctx, http.MethodPost, target, archivePath, nil)
	if err != nil {
		if !isConflict(err) {
			return nil, fmt.Errorf("import %s: %w", basename, err)
		}
		return c.replaceIntegration(ctx, target, archivePath)
	}

	if status == http.StatusNoContent {
		return &ImportResult{IntegrationID: DeriveIntegrationID(basename), Derived: true}, nil
	}

	var parsed importResponse
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
		// A 2xx with an unreadable body: the import likely landed, but the
		// identifier has to come from the filename.
		return &ImportResult{IntegrationID: DeriveIntegrationID(basename), Derived: true}, nil
	}
	if parsed.Status != "SUCCESS" {
		msg := parsed.Message
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return nil, fmt.Errorf("import %s: server status %q: %s", basename, parsed.Status, msg)
	}
	if parsed.ID == "" {
		return &ImportResult{IntegrationID: DeriveIntegrationID(basename), Derived: true}, nil
	}
	return &ImportResult{IntegrationID: parsed.ID}, nil
}

func (c *Client) replaceIntegration(ctx context.Context, target, archivePath string) (*ImportResult, error) {
	basename := filepath.Base(archivePath)
	status, _, err := c.uploadArchive(ctx, http.MethodPut, target, archivePath, nil)
	if err != nil {
		return nil, fmt.Errorf("replace %s: %w", basename, err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return nil, fmt.Errorf("replace %s: unexpected status %d", basename, status)
	}
	return &ImportResult{
		IntegrationID: DeriveIntegrationID(basename),
		Derived:       true,
		Replaced:      true,
	}, nil
}

// ImportProject uploads a .car project archive. Projects have no activation
// step and no conflict fallback.
func (c *Client) ImportProject(ctx context.Context, archivePath string) error {
	target := c.archiveURL("/projects/archive")
	basename := filepath.Base(archivePath)

	extra := map[string]string{"type": "application/octet-stream"}
	status, body, err := c.uploadArchive(ctx, http.MethodPost, target, archivePath, extra)
	if err != nil {
		return fmt.Errorf("import project %s: %w", basename, err)
	}
	if status == http.StatusNoContent {
		return nil
	}

	var parsed importResponse
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
		// 2xx with a non-JSON body counts as accepted.
		return nil
	}
	if parsed.Status != "SUCCESS" {
		msg := parsed.Message
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return fmt.Errorf("import project %s: server status %q: %s", basename, parsed.Status, msg)
	}
	return nil
}
