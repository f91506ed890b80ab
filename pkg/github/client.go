// SPDX-License-Identifier: Apache-2.0
package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/snapvault/snapctl/pkg/config"
	"github.com/snapvault/snapctl/pkg/download"
)

// Release is the subset of a GitHub release the self-updater needs
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable file attached to a release
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Client fetches snapctl releases from the GitHub API. Only the latest
// published release matters: the updater never installs anything older.
type Client struct {
	api   string
	token string
}

// NewClient creates a client using the configured GitHub token, if any
func NewClient() *Client {
	return &Client{
		api:   config.GitHubAPI,
		token: config.GetGitHubToken(),
	}
}

// GetLatestRelease fetches the newest published release of a repository
func (c *Client) GetLatestRelease(owner, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.api, owner, repo)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(body))
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}

	return &release, nil
}

// DownloadFile downloads a release asset to dest, passing the token along
// so private repositories and rate limits behave
func (c *Client) DownloadFile(url, dest string, progress download.ProgressCallback) error {
	opts := &download.Options{
		ProgressCallback: progress,
	}

	if c.token != "" {
		opts.Headers = map[string]string{
			"Authorization": "token " + c.token,
		}
	}

	return download.File(url, dest, opts)
}

// do executes an HTTP request with automatic token injection
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	return http.DefaultClient.Do(req)
}

// StripVersionPrefix removes the leading 'v' that release tags carry
func StripVersionPrefix(tag string) string {
	return strings.TrimPrefix(tag, "v")
}
