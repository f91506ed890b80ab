// SPDX-License-Identifier: Apache-2.0
package config

import (
	"strings"
	"testing"
)

func TestConfigRegistry_ContainsUseTUI(t *testing.T) {
	def, ok := ConfigRegistry["use-tui"]
	if !ok {
		t.Fatal("ConfigRegistry should contain 'use-tui' key")
	}
	if def.Type != "bool" {
		t.Errorf("use-tui type = %v, want bool", def.Type)
	}
	if def.Default != true {
		t.Errorf("use-tui default = %v, want true", def.Default)
	}
	if def.UserConstraints != nil || def.ProjectConstraints != nil {
		t.Error("use-tui should have no scope constraints")
	}
}

func TestConfigRegistry_SensitiveKeysForbiddenInProject(t *testing.T) {
	for _, key := range []string{"github-token", "server.token"} {
		def, ok := ConfigRegistry[key]
		if !ok {
			t.Fatalf("ConfigRegistry should contain %q", key)
		}
		if def.ProjectConstraints == nil || !def.ProjectConstraints.Forbidden {
			t.Errorf("%s should be forbidden in project scope", key)
		}
		if def.UserConstraints != nil && def.UserConstraints.Forbidden {
			t.Errorf("%s should be allowed in user scope", key)
		}
	}
}

func TestConfigRegistry_NamePrefixIsProjectOnly(t *testing.T) {
	def, ok := ConfigRegistry["repository.name-prefix"]
	if !ok {
		t.Fatal("ConfigRegistry should contain 'repository.name-prefix'")
	}
	if def.UserConstraints == nil || !def.UserConstraints.Forbidden {
		t.Error("repository.name-prefix should be forbidden in user scope")
	}
}

func TestValidateKeyScope(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		scope   ConfigScope
		wantErr bool
		errPart string
	}{
		{"server token in user scope", "server.token", ScopeUser, false, ""},
		{"server token in project scope", "server.token", ScopeProject, true, "sensitive"},
		{"name prefix in project scope", "repository.name-prefix", ScopeProject, false, ""},
		{"name prefix in user scope", "repository.name-prefix", ScopeUser, true, "project config"},
		{"unknown key", "no.such.key", ScopeUser, true, "unknown configuration key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeyScope(tt.key, tt.scope)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateKeyScope() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && tt.errPart != "" && !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.errPart)
			}
		})
	}
}

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		wantErr bool
	}{
		{"valid bool", "use-tui", true, false},
		{"bool as string", "use-tui", "true", true},
		{"valid log level", "log-level", "debug", false},
		{"invalid log level", "log-level", "verbose", true},
		{"valid server url", "server.url", "https://vault.internal:9600", false},
		{"server url without scheme", "server.url", "vault.internal:9600", true},
		{"valid default type", "repository.default-type", "s3", false},
		{"source is not a default type", "repository.default-type", "source", true},
		{"valid name prefix", "repository.name-prefix", "prod-", false},
		{"name prefix with spaces", "repository.name-prefix", "prod env", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue(tt.key, tt.value, ScopeUser)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateValue(%s, %v) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}
