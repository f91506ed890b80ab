// SPDX-License-Identifier: Apache-2.0
package util

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/ulikunitz/xz"
)

// DecompressXZ decompresses an xz file to a destination path
func DecompressXZ(src, dst string) error {
	return DecompressXZWithProgress(src, dst, nil)
}

// progressReader wraps a reader to track bytes read
type progressReader struct {
	reader   io.Reader
	total    int64
	read     int64
	callback func(float64)
	lastPct  float64
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.read += int64(n)

	if pr.callback != nil && pr.total > 0 {
		pct := float64(pr.read) / float64(pr.total)
		if pct > 1.0 {
			pct = 1.0
		}
		// Report every 1% for smoother progress updates
		if pct-pr.lastPct >= 0.01 || pct >= 0.99 {
			pr.callback(pct)
			pr.lastPct = pct
		}
	}

	return n, err
}

// DecompressXZWithProgress decompresses an xz file with progress tracking.
// Progress is measured against the compressed byte count since the
// uncompressed size is not known up front.
func DecompressXZWithProgress(src, dst string, progressCallback func(float64)) error {
	log.Debugf("Decompressing %s to %s", src, dst)

	// Open source file
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	// Get source file size for progress tracking
	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to get source file info: %w", err)
	}
	compressedSize := srcInfo.Size()

	// Wrap source file with progress reader to track compressed bytes read
	var reader io.Reader = srcFile
	if progressCallback != nil {
		reader = &progressReader{
			reader:   srcFile,
			total:    compressedSize,
			read:     0,
			callback: progressCallback,
			lastPct:  -1.0,
		}
	}

	// Create xz reader
	xzReader, err := xz.NewReader(reader)
	if err != nil {
		return fmt.Errorf("failed to create xz reader: %w", err)
	}

	// Create destination file
	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	// Decompress
	if _, err := io.Copy(dstFile, xzReader); err != nil {
		return fmt.Errorf("failed to decompress: %w", err)
	}

	// Ensure 100% is reported
	if progressCallback != nil {
		progressCallback(1.0)
	}

	log.Debugf("Successfully decompressed to %s", dst)
	return nil
}
