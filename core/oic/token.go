package oic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sudheer-sanagala/oic-deploy/core/infra/secrets"
)

const tokenTimeout = 30 * time.Second

// TokenRequest carries the client-credentials grant parameters.
type TokenRequest struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scope        string
}

// FetchToken exchanges client credentials for a bearer token. A single
// attempt is made; there is no retry. A 204 from the token endpoint means
// "no token available" and returns ("", nil) so the caller can fall back to
// a statically configured token.
func FetchToken(ctx context.Context, req TokenRequest) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", req.Scope)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(req.ClientID, req.ClientSecret)

	client := &http.Client{Timeout: tokenTimeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return "", nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{
			Status: resp.StatusCode,
			Body:   secrets.Scrub(string(body), req.ClientSecret),
		}
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", decodeError(fmt.Errorf("token response: %w", err))
	}
	if parsed.AccessToken == "" {
		return "", decodeError(fmt.Errorf("token response has no access_token"))
	}
	return parsed.AccessToken, nil
}

// TokenExpiry decodes the access token without verifying its signature and
// returns the exp claim. ok is false when the token is not a decodable JWT
// or carries no expiry.
func TokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
