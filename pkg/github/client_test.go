// SPDX-License-Identifier: Apache-2.0
package github

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestGetLatestRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/snapvault/snapctl/releases/latest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "token ghp_test" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(Release{
			TagName: "v1.2.3",
			Assets: []Asset{
				{Name: "snapctl-linux-amd64.xz", BrowserDownloadURL: "https://example.invalid/bin.xz"},
			},
		})
	}))
	defer srv.Close()

	c := &Client{api: srv.URL, token: "ghp_test"}
	release, err := c.GetLatestRelease("snapvault", "snapctl")
	if err != nil {
		t.Fatalf("GetLatestRelease() error = %v", err)
	}
	if release.TagName != "v1.2.3" {
		t.Errorf("TagName = %q", release.TagName)
	}
	if len(release.Assets) != 1 || release.Assets[0].Name != "snapctl-linux-amd64.xz" {
		t.Errorf("Assets = %+v", release.Assets)
	}
}

func TestGetLatestRelease_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := &Client{api: srv.URL}
	if _, err := c.GetLatestRelease("snapvault", "snapctl"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestDownloadFile_SendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "token ghp_test" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte("asset bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "asset.bin")
	c := &Client{token: "ghp_test"}
	if err := c.DownloadFile(srv.URL, dest, nil); err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != "asset bytes" {
		t.Errorf("downloaded content = %q", data)
	}
}

func TestStripVersionPrefix(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"v1.2.3", "1.2.3"},
		{"1.2.3", "1.2.3"},
		{"v0.4.0-rc1", "0.4.0-rc1"},
	}

	for _, tt := range tests {
		if got := StripVersionPrefix(tt.tag); got != tt.want {
			t.Errorf("StripVersionPrefix(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
