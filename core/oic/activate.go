package oic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type activateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Activate switches an integration to ACTIVATED. The request is a POST with
// an X-HTTP-Method-Override: PATCH header, which is how the OIC endpoint
// expects state changes to arrive.
//
// A 200 whose body cannot be parsed as JSON counts as success: the platform
// accepted the state change and the body is advisory. (Earlier revisions of
// this tool failed that case; the behavior was unified on the lenient side.)
func (c *Client) Activate(ctx context.Context, integrationID string, asyncMode bool) error {
	target := c.endpoint("/integrations/" + url.PathEscape(integrationID))
	var params []string
	if c.instance != "" {
		params = append(params, "integrationInstance="+url.QueryEscape(c.instance))
	}
	if asyncMode {
		params = append(params, "enableAsyncActivationMode=true")
	}
	if len(params) > 0 {
		target += "?" + strings.Join(params, "&")
	}

	payload := strings.NewReader(`{"status": "ACTIVATED"}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-HTTP-Method-Override", "PATCH")

	status, body, err := c.do(req)
	if err != nil {
		return fmt.Errorf("activate %s: %w", integrationID, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("activate %s: unexpected status %d", integrationID, status)
	}

	var parsed activateResponse
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
		return nil
	}
	switch parsed.Status {
	case "ACTIVATED", "ACTIVATION_INPROGRESS":
		return nil
	}
	msg := parsed.Message
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return fmt.Errorf("activate %s: server status %q: %s", integrationID, parsed.Status, msg)
}
