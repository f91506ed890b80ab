// SPDX-License-Identifier: Apache-2.0
package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SHA256 of "hello world\n"
const helloSum = "a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestVerifySHA256File(t *testing.T) {
	dir := t.TempDir()
	binPath := writeFile(t, dir, "snapctl-linux-amd64.xz", "hello world\n")
	sumsPath := writeFile(t, dir, "SHA256SUMS",
		"# release checksums\n"+
			helloSum+"  snapctl-linux-amd64.xz\n")

	if err := VerifySHA256File(binPath, sumsPath); err != nil {
		t.Errorf("VerifySHA256File() error = %v", err)
	}
}

func TestVerifySHA256File_Mismatch(t *testing.T) {
	dir := t.TempDir()
	binPath := writeFile(t, dir, "snapctl-linux-amd64.xz", "tampered\n")
	sumsPath := writeFile(t, dir, "SHA256SUMS",
		helloSum+"  snapctl-linux-amd64.xz\n")

	err := VerifySHA256File(binPath, sumsPath)
	if err == nil {
		t.Fatal("expected checksum mismatch error")
	}
	if !strings.Contains(err.Error(), "mismatch") {
		t.Errorf("error = %v, want mismatch", err)
	}
}

func TestVerifySHA256File_MissingEntry(t *testing.T) {
	dir := t.TempDir()
	binPath := writeFile(t, dir, "snapctl-linux-amd64.xz", "hello world\n")
	sumsPath := writeFile(t, dir, "SHA256SUMS",
		helloSum+"  some-other-file\n")

	err := VerifySHA256File(binPath, sumsPath)
	if err == nil {
		t.Fatal("expected missing entry error")
	}
	if !strings.Contains(err.Error(), "not found in checksums") {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestVerifySHA256File_BinaryModeEntry(t *testing.T) {
	dir := t.TempDir()
	binPath := writeFile(t, dir, "snapctl-linux-amd64.xz", "hello world\n")
	sumsPath := writeFile(t, dir, "SHA256SUMS",
		helloSum+" *snapctl-linux-amd64.xz\n")

	if err := VerifySHA256File(binPath, sumsPath); err != nil {
		t.Errorf("VerifySHA256File() error = %v", err)
	}
}

func TestVerifySHA256File_UppercaseHash(t *testing.T) {
	dir := t.TempDir()
	binPath := writeFile(t, dir, "snapctl-linux-amd64.xz", "hello world\n")
	sumsPath := writeFile(t, dir, "SHA256SUMS",
		strings.ToUpper(helloSum)+"  snapctl-linux-amd64.xz\n")

	if err := VerifySHA256File(binPath, sumsPath); err != nil {
		t.Errorf("VerifySHA256File() error = %v", err)
	}
}
