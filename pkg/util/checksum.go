// SPDX-License-Identifier: Apache-2.0
package util

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// VerifySHA256File checks a downloaded file against its entry in a
// SHA256SUMS file
func VerifySHA256File(filePath, checksumsPath string) error {
	log.Debugf("Verifying SHA256 checksum for %s", filePath)

	fileHash, err := calculateSHA256(filePath)
	if err != nil {
		return fmt.Errorf("failed to calculate file hash: %w", err)
	}

	checksums, err := parseChecksums(checksumsPath)
	if err != nil {
		return fmt.Errorf("failed to read checksums file: %w", err)
	}

	// Entries are keyed by base name, matching how the sums file is built
	filename := filepath.Base(filePath)

	expectedHash, found := checksums[filename]
	if !found {
		return fmt.Errorf("file %s not found in checksums", filename)
	}

	if !strings.EqualFold(fileHash, expectedHash) {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", filename, expectedHash, fileHash)
	}

	log.Debugf("Checksum verified for %s", filename)
	return nil
}

func calculateSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// parseChecksums reads a SHA256SUMS file into a filename -> hash map.
// Lines are "hash  filename" or "hash *filename" (binary mode); blank
// lines and # comments are skipped.
func parseChecksums(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checksums file: %w", err)
	}
	defer file.Close()

	checksums := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		filename := strings.TrimPrefix(parts[1], "*")
		checksums[filename] = parts[0]
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checksums file: %w", err)
	}

	return checksums, nil
}
