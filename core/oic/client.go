// Package oic is a client for the Oracle Integration Cloud REST management
// API: archive import, conflict replace, and integration activation.
package oic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sudheer-sanagala/oic-deploy/core/infra/secrets"
)

const (
	apiBasePath    = "/ic/api/integration/v1"
	requestTimeout = 60 * time.Second
)

// Credentials selects the authentication scheme for every request: basic
// auth when Username is set, bearer otherwise.
type Credentials struct {
	Username    string
	Password    string
	BearerToken string
}

// Client talks to one OIC instance. It is safe for sequential use only.
type Client struct {
	baseURL    string
	creds      Credentials
	instance   string
	runID      string
	httpClient *http.Client
}

// NewClient normalizes the base URL and returns a client. instance may be
// empty; when set it is appended as integrationInstance on import and
// activation URLs.
func NewClient(baseURL string, creds Credentials, instance string) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasSuffix(base, apiBasePath) {
		base += apiBasePath
	}
	return &Client{
		baseURL:  base,
		creds:    creds,
		instance: instance,
		runID:    uuid.NewString(),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// RunID returns the correlation id attached to every request of this client.
func (c *Client) RunID() string {
	return c.runID
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// HTTPError is a non-2xx response from the OIC API.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, msg)
}

// IsUnauthorized reports whether err is an HTTP 401 from the API.
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized
}

func isConflict(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusConflict
}

func (c *Client) authorize(req *http.Request) {
	if c.creds.Username != "" {
		req.SetBasicAuth(c.creds.Username, c.creds.Password)
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.BearerToken)
}

// do sends the request with auth and correlation headers and returns the
// status code and body. Non-2xx statuses are returned as *HTTPError with the
// body captured as diagnostic.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", c.runID)
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, transportError(err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.StatusCode, body, nil
	}
	// some OIC errors echo request headers back
	return resp.StatusCode, body, &HTTPError{
		Status: resp.StatusCode,
		Body:   secrets.Scrub(string(body), c.creds.BearerToken, c.creds.Password),
	}
}

// multipartBody builds a multipart form with the archive under the part name
// "file" plus any extra fields, matching what the import endpoints expect.
func multipartBody(archivePath string, extraFields map[string]string) (*bytes.Buffer, string, error) {
	// #nosec G304 -- archive paths are provided by the operator.
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(archivePath)))
	header.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	for key, val := range extraFields {
		if err := writer.WriteField(key, val); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

func (c *Client) uploadArchive(ctx context.Context, method, url, archivePath string, extraFields map[string]string) (int, []byte, error) {
	body, contentType, err := multipartBody(archivePath, extraFields)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}
