// SPDX-License-Identifier: Apache-2.0
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-version"
	"github.com/snapvault/snapctl/pkg/config"
	"github.com/snapvault/snapctl/pkg/repository"
)

// MinServerVersion is the oldest daemon release whose admin API this client
// understands.
const MinServerVersion = "0.4.0"

const apiBase = "/api/v1"

// Repository is a registered repository as returned by the daemon.
type Repository struct {
	Name string `json:"name"`
	repository.Definition
}

// VerifyResult reports the outcome of a repository access check on the daemon.
type VerifyResult struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}

// Client handles SnapVault daemon admin API requests
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient creates a client from the configured server URL and token
func NewClient() *Client {
	return &Client{
		baseURL: config.GetServerURL(),
		token:   config.GetServerToken(),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientForURL creates a client against an explicit base URL (tests, --server flag)
func NewClientForURL(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// ListTypes fetches the catalog of selectable repository type identifiers
func (c *Client) ListTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := c.getJSON(ctx, apiBase+"/repository-types", &types); err != nil {
		return nil, fmt.Errorf("failed to fetch repository types: %w", err)
	}
	return types, nil
}

// ListRepositories fetches all registered repositories
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	var repos []Repository
	if err := c.getJSON(ctx, apiBase+"/repositories", &repos); err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	return repos, nil
}

// GetRepository fetches a single repository by name
func (c *Client) GetRepository(ctx context.Context, name string) (*Repository, error) {
	var repo Repository
	if err := c.getJSON(ctx, apiBase+"/repositories/"+url.PathEscape(name), &repo); err != nil {
		return nil, fmt.Errorf("failed to fetch repository %q: %w", name, err)
	}
	return &repo, nil
}

// CreateRepository registers a repository definition under the given name.
// The daemon upserts: registering an existing name replaces its definition.
func (c *Client) CreateRepository(ctx context.Context, name string, def repository.Definition) error {
	body, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to encode definition: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+apiBase+"/repositories/"+url.PathEscape(name), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to register repository %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}

	log.Debugf("registered repository %q (type %s)", name, def.Type)
	return nil
}

// DeleteRepository removes a repository registration by name
func (c *Client) DeleteRepository(ctx context.Context, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+apiBase+"/repositories/"+url.PathEscape(name), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("failed to delete repository %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}

	return nil
}

// VerifyRepository asks the daemon to check access to a registered repository
func (c *Client) VerifyRepository(ctx context.Context, name string) (*VerifyResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+apiBase+"/repositories/"+url.PathEscape(name)+"/verify", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify repository %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode verify result: %w", err)
	}
	return &result, nil
}

// ServerVersion fetches the daemon version string
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	var payload struct {
		Version string `json:"version"`
	}
	if err := c.getJSON(ctx, apiBase+"/version", &payload); err != nil {
		return "", fmt.Errorf("failed to fetch server version: %w", err)
	}
	return payload.Version, nil
}

// CheckCompatibility verifies the daemon is recent enough for this client
func (c *Client) CheckCompatibility(ctx context.Context) error {
	raw, err := c.ServerVersion(ctx)
	if err != nil {
		return err
	}

	server, err := version.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("daemon reported unparseable version %q: %w", raw, err)
	}

	minimum := version.Must(version.NewVersion(MinServerVersion))
	if server.LessThan(minimum) {
		return fmt.Errorf("daemon version %s is older than the minimum supported %s; upgrade the daemon", raw, MinServerVersion)
	}

	return nil
}

// getJSON fetches a URL path and decodes the JSON response into out
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// do executes an HTTP request with automatic bearer token injection
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpc.Do(req)
}

// apiError turns a non-success response into an error carrying the daemon's
// message when it sent one
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, payload.Error)
	}

	return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, string(body))
}
