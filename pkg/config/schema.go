// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"regexp"
)

// ScopeConstraints defines per-scope validation rules for a configuration key
type ScopeConstraints struct {
	Forbidden  bool     // If true, this key cannot be set in this scope
	EnumValues []string // Valid enum values for this scope (overrides global EnumValues if set)
	Pattern    string   // Regex pattern for this scope (overrides global Pattern if set)
}

// ConfigKeyDefinition defines metadata for a configuration key
type ConfigKeyDefinition struct {
	Key         string      // Configuration key (dot notation)
	Type        string      // "string", "bool", "enum", "int"
	Default     interface{} // Default value
	Description string      // Help text

	// Global constraints (apply unless overridden by scope-specific constraints)
	EnumValues []string // Valid values for enum type (if Type="enum")
	Pattern    string   // Regex pattern for validation (if Type="string")

	// Per-scope constraints (optional - if nil, key is allowed in scope with global constraints)
	UserConstraints    *ScopeConstraints // Constraints when setting in user config
	ProjectConstraints *ScopeConstraints // Constraints when setting in project config
}

// repositoryTypes are the concrete repository types the daemon supports.
// The source-only wrapper is not a default candidate: it always wraps one
// of these.
var repositoryTypes = []string{"fs", "url", "s3", "gcs", "azure", "hdfs"}

// ConfigRegistry holds all known configuration keys with per-scope constraints.
//
// Constraint System:
//   - No constraints: Key can be set in any scope with same validation rules
//   - Forbidden constraint: Key cannot be set in the specified scope
//   - Scope-specific EnumValues / Pattern: different rules per scope
var ConfigRegistry = map[string]ConfigKeyDefinition{
	"use-tui": {
		Key:         "use-tui",
		Type:        "bool",
		Default:     true,
		Description: "Use TUI for interactive prompts",
	},

	"log-level": {
		Key:         "log-level",
		Type:        "enum",
		Default:     "info",
		Description: "Log verbosity level",
		EnumValues:  []string{"disabled", "debug", "info", "warn", "error"},
	},

	"github-token": {
		Key:         "github-token",
		Type:        "string",
		Default:     "",
		Description: "GitHub personal access token used by self-update",
		ProjectConstraints: &ScopeConstraints{
			Forbidden: true,
		},
	},

	"server.url": {
		Key:         "server.url",
		Type:        "string",
		Default:     DefaultServerURL,
		Description: "Base URL of the SnapVault daemon admin API",
		Pattern:     "^https?://",
	},

	"server.token": {
		Key:         "server.token",
		Type:        "string",
		Default:     "",
		Description: "Bearer token for the daemon admin API",
		ProjectConstraints: &ScopeConstraints{
			Forbidden: true, // Credentials must not be committed to version control
		},
	},

	"repository.default-type": {
		Key:         "repository.default-type",
		Type:        "enum",
		Default:     "fs",
		Description: "Repository type preselected in the create wizard",
		EnumValues:  repositoryTypes,
	},

	"repository.verify-on-create": {
		Key:         "repository.verify-on-create",
		Type:        "bool",
		Default:     true,
		Description: "Verify repository access on the daemon right after registration",
	},

	"repository.name-prefix": {
		Key:         "repository.name-prefix",
		Type:        "string",
		Default:     "",
		Description: "Prefix prepended to suggested repository names (team naming convention)",
		Pattern:     "^[a-zA-Z0-9_.-]*$",
		UserConstraints: &ScopeConstraints{
			Forbidden: true, // Naming conventions belong to the project, not the user
		},
	},
}

// GetKeyDefinition returns the definition for a key, or nil if not found
func GetKeyDefinition(key string) *ConfigKeyDefinition {
	if def, ok := ConfigRegistry[key]; ok {
		return &def
	}
	return nil
}

// ValidateKeyScope checks if a key can be set in the given scope
// Returns an error if the key is forbidden in the specified scope
func ValidateKeyScope(key string, scope ConfigScope) error {
	def := GetKeyDefinition(key)
	if def == nil {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	var constraints *ScopeConstraints
	switch scope {
	case ScopeUser:
		constraints = def.UserConstraints
	case ScopeProject:
		constraints = def.ProjectConstraints
	}

	if constraints != nil && constraints.Forbidden {
		switch scope {
		case ScopeUser:
			return fmt.Errorf(
				"key '%s' cannot be set in user config\n\n"+
					"Hint: Remove --global flag:\n"+
					"  snapctl config set %s <value>\n\n"+
					"This key must be set in project config: ./snapctl.yaml",
				key,
				key,
			)
		case ScopeProject:
			return fmt.Errorf(
				"key '%s' cannot be set in project config (sensitive setting)\n\n"+
					"Hint: Use --global flag:\n"+
					"  snapctl config set --global %s <value>\n\n"+
					"User config: ~/.config/snapctl/config.yaml\n"+
					"This setting must NOT be committed to version control.",
				key,
				key,
			)
		}
	}

	return nil
}

// ValidateValue checks if a value is valid for the given key in the specified scope
// Applies per-scope constraints if defined, otherwise uses global constraints
func ValidateValue(key string, value interface{}, scope ConfigScope) error {
	def := GetKeyDefinition(key)
	if def == nil {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	var constraints *ScopeConstraints
	switch scope {
	case ScopeUser:
		constraints = def.UserConstraints
	case ScopeProject:
		constraints = def.ProjectConstraints
	}

	switch def.Type {
	case "bool":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("key '%s' must be a boolean", key)
		}

	case "int":
		if _, ok := value.(int); !ok {
			return fmt.Errorf("key '%s' must be an integer", key)
		}

	case "string":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}

		// Pattern validation - use scope-specific pattern if available
		pattern := def.Pattern
		if constraints != nil && constraints.Pattern != "" {
			pattern = constraints.Pattern
		}

		if pattern != "" {
			matched, err := regexp.MatchString(pattern, str)
			if err != nil {
				return fmt.Errorf("pattern validation error: %w", err)
			}
			if !matched {
				return fmt.Errorf(
					"key '%s' value '%s' does not match required format for %s scope",
					key,
					str,
					getScopeName(scope),
				)
			}
		}

	case "enum":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}

		enumValues := def.EnumValues
		if constraints != nil && constraints.EnumValues != nil {
			enumValues = constraints.EnumValues
		}

		valid := false
		for _, enumVal := range enumValues {
			if str == enumVal {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf(
				"key '%s' must be one of %v in %s scope (got '%s')",
				key,
				enumValues,
				getScopeName(scope),
				str,
			)
		}
	}

	return nil
}
