// SPDX-License-Identifier: Apache-2.0
package download

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
)

// ProgressCallback receives download completion as a fraction between 0 and 1
type ProgressCallback func(percent float64)

// Options configures a download
type Options struct {
	ProgressCallback ProgressCallback
	Headers          map[string]string
}

// File downloads url into dest. A nil opts downloads without extra headers
// or progress reporting.
func File(url, dest string, opts *Options) error {
	log.Debugf("Downloading %s to %s", url, dest)

	if opts == nil {
		opts = &Options{}
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	// Progress needs a known total, so it is skipped on chunked responses
	body := io.Reader(resp.Body)
	if opts.ProgressCallback != nil && resp.ContentLength > 0 {
		body = &progressReader{
			reader:   resp.Body,
			total:    resp.ContentLength,
			callback: opts.ProgressCallback,
		}
	}

	if _, err := io.Copy(out, body); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}

	log.Debugf("Download complete: %s", dest)
	return nil
}

// progressReader reports cumulative progress as the body is consumed
type progressReader struct {
	reader   io.Reader
	total    int64
	read     int64
	callback ProgressCallback
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.read += int64(n)
		r.callback(float64(r.read) / float64(r.total))
	}
	return n, err
}
