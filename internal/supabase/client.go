package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okvist/crewdesk/internal/utils"
)

const (
	restPrefix    = "/rest/v1"
	storagePrefix = "/storage/v1"
)

// Client is a stateless handle on a Supabase project. It authenticates
// every request with the static key it was built with; there is no
// session to persist and no token to refresh.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a client bound to a project URL and an API key. Both are
// required; the error names the environment variables callers are
// expected to source them from.
func New(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" || apiKey == "" {
		return nil, utils.E(utils.CodeInternal, "supabase.New",
			"SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY must be set", nil)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// BaseURL reports the project URL the client is bound to.
func (c *Client) BaseURL() string { return c.baseURL }

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SignObjectURL asks the storage API for a time-limited signed URL for
// one object. The returned URL is absolute and valid for ttl.
func (c *Client) SignObjectURL(ctx context.Context, bucket, objectPath string, ttl time.Duration) (string, error) {
	const op = "supabase.SignObjectURL"

	if bucket == "" || objectPath == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "bucket and object path are required", nil)
	}

	body, err := json.Marshal(signRequest{ExpiresIn: int(ttl.Seconds())})
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to encode sign request", err)
	}

	endpoint := fmt.Sprintf("%s%s/object/sign/%s/%s",
		c.baseURL, storagePrefix, bucket, strings.TrimLeft(objectPath, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to build sign request", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "storage request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to read storage response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", utils.E(utils.CodeUnavailable, op, upstreamMessage(raw, resp.StatusCode), nil)
	}

	var out signResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "malformed storage response", err)
	}
	if out.SignedURL == "" {
		return "", utils.E(utils.CodeUnavailable, op, "storage returned no signed URL", nil)
	}

	// The API returns a path relative to /storage/v1.
	return c.baseURL + storagePrefix + "/" + strings.TrimLeft(out.SignedURL, "/"), nil
}

// Select runs a PostgREST query against a table and decodes the JSON
// array response into dst. query is the raw query string, e.g.
// "select=estimate_number,division&status=eq.active".
func (c *Client) Select(ctx context.Context, table, query string, dst any) error {
	const op = "supabase.Select"

	if table == "" {
		return utils.E(utils.CodeInvalidArgument, op, "table is required", nil)
	}

	endpoint := c.baseURL + restPrefix + "/" + table
	if query != "" {
		endpoint += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to build query request", err)
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "query request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to read query response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return utils.E(utils.CodeUnavailable, op, upstreamMessage(raw, resp.StatusCode), nil)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return utils.E(utils.CodeUnavailable, op, "malformed query response", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

// upstreamMessage passes the backend's own error text through when it
// sent one, falling back to the status code.
func upstreamMessage(raw []byte, status int) string {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil {
		if er.Message != "" {
			return er.Message
		}
		if er.Error != "" {
			return er.Error
		}
	}
	return fmt.Sprintf("upstream returned status %d", status)
}
