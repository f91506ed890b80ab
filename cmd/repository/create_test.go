// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"testing"

	repo "github.com/snapvault/snapctl/pkg/repository"
)

func TestParseSettings(t *testing.T) {
	settings, err := parseSettings([]string{
		"bucket=backups",
		"compress=true",
		"readonly=false",
		"chunk_size=64",
		"base_path=prod/daily",
	})
	if err != nil {
		t.Fatalf("parseSettings() error: %v", err)
	}

	if settings["bucket"] != "backups" {
		t.Errorf("expected string value, got %v", settings["bucket"])
	}
	if settings["compress"] != true {
		t.Errorf("expected typed bool, got %v", settings["compress"])
	}
	if settings["readonly"] != false {
		t.Errorf("expected typed bool, got %v", settings["readonly"])
	}
	if settings["chunk_size"] != 64 {
		t.Errorf("expected typed int, got %v", settings["chunk_size"])
	}
	if settings["base_path"] != "prod/daily" {
		t.Errorf("values may contain '=' separators only once split, got %v", settings["base_path"])
	}
}

func TestParseSettings_Invalid(t *testing.T) {
	if _, err := parseSettings([]string{"no-separator"}); err == nil {
		t.Error("expected error for a pair without '='")
	}
	if _, err := parseSettings([]string{"=value"}); err == nil {
		t.Error("expected error for an empty key")
	}
}

func TestParseSettings_DelegateTypeReserved(t *testing.T) {
	if _, err := parseSettings([]string{repo.SettingDelegateType + "=fs"}); err == nil {
		t.Error("expected the delegate type key to be rejected")
	}
}
