// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// InitViper initializes Viper configuration with defaults and search paths
// Precedence order: ENV > dir-conf > user-conf > defaults
func InitViper() {
	// Set config type
	viper.SetConfigType(ConfigType)

	// Set defaults (lowest precedence)
	viper.SetDefault("use-tui", true)
	viper.SetDefault("log-level", "info")
	viper.SetDefault("github-token", "") // No default for sensitive keys
	viper.SetDefault("server.url", DefaultServerURL)
	viper.SetDefault("server.token", "")
	viper.SetDefault("repository.default-type", "fs")
	viper.SetDefault("repository.verify-on-create", true)
	viper.SetDefault("repository.name-prefix", "")

	// Enable environment variable support (highest precedence)
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

// LoadConfig reads config files in precedence order
// Precedence: ENV > ./snapctl.yaml > ~/.config/snapctl/config.yaml > defaults
func LoadConfig() error {
	// First, try to read user config from XDG config directory
	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(GlobalPaths.ConfigDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read user config file: %w", err)
		}
		// Config file not found is OK
	} else {
		if err := validateConfigFile(GlobalPaths.ConfigDir, ScopeUser); err != nil {
			return err
		}
		warnMisplacedKeys(GlobalPaths.ConfigDir, "user")
	}

	// Then, try to merge in local project config (overrides user config)
	viper.SetConfigName(LocalConfigFile)
	viper.AddConfigPath(".")

	if err := viper.MergeInConfig(); err != nil {
		// Ignore if local config doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read project config file: %w", err)
		}
	} else {
		if err := validateConfigFile(".", ScopeProject); err != nil {
			return err
		}
		warnMisplacedKeys(".", "project")
	}

	return nil
}

// GetUseTUI returns the use-tui configuration value
func GetUseTUI() bool {
	return viper.GetBool("use-tui")
}

// GetLogLevel returns the log-level configuration value
func GetLogLevel() string {
	return viper.GetString("log-level")
}

// GetServerURL returns the daemon admin API base URL
func GetServerURL() string {
	return strings.TrimRight(viper.GetString("server.url"), "/")
}

// GetServerToken returns the daemon API bearer token.
// In a project context (snapctl.yaml exists), ENV and user config still apply;
// the key itself is forbidden in project config so it can never be committed.
func GetServerToken() string {
	return viper.GetString("server.token")
}

// GetDefaultRepositoryType returns the repository.default-type configuration value
func GetDefaultRepositoryType() string {
	return viper.GetString("repository.default-type")
}

// GetVerifyOnCreate returns whether new repositories are verified right after
// registration
func GetVerifyOnCreate() bool {
	return viper.GetBool("repository.verify-on-create")
}

// GetRepositoryNamePrefix returns the repository.name-prefix configuration value.
// In a project context the project config wins over ENV: naming conventions
// are a team decision, not a per-shell one.
func GetRepositoryNamePrefix() string {
	projectConfigPath := filepath.Join(".", LocalConfigFile+DefaultConfigExt)
	if _, err := os.Stat(projectConfigPath); err == nil {
		v := viper.New()
		v.SetConfigType(ConfigType)
		v.SetDefault("repository.name-prefix", "")

		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(GlobalPaths.ConfigDir)
		_ = v.ReadInConfig() // Ignore error if not found

		v.SetConfigName(LocalConfigFile)
		v.AddConfigPath(".")
		_ = v.MergeInConfig() // Ignore error if not found

		return v.GetString("repository.name-prefix")
	}

	return viper.GetString("repository.name-prefix")
}

// validateConfigFile validates that a config file doesn't contain forbidden
// or malformed keys for the given scope
func validateConfigFile(configDir string, scope ConfigScope) error {
	var configPath string
	if scope == ScopeUser {
		configPath = filepath.Join(configDir, ConfigFileName+DefaultConfigExt)
	} else {
		configPath = filepath.Join(".", LocalConfigFile+DefaultConfigExt)
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No config file, nothing to validate
	}

	// Create a temporary Viper instance to read just this config file
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType(ConfigType)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file for validation: %w", err)
	}

	settings := v.AllSettings()
	keys := flattenKeys(settings, "")
	for _, key := range keys {
		if err := ValidateKeyScope(key, scope); err != nil {
			return fmt.Errorf("invalid key in config file %s: %w", configPath, err)
		}

		value := v.Get(key)
		if err := ValidateValue(key, value, scope); err != nil {
			return fmt.Errorf("invalid value in config file %s: %w", configPath, err)
		}
	}

	return nil
}

// warnMisplacedKeys provides informational messages about unconventional key
// placement. All keys can be set in any permitted scope (precedence handles
// conflicts), but some placements are unconventional. Logs at debug level to
// inform without blocking.
func warnMisplacedKeys(configDir, scopeName string) {
	var configPath string
	var currentScope ConfigScope
	if scopeName == "user" {
		configPath = filepath.Join(configDir, ConfigFileName+DefaultConfigExt)
		currentScope = ScopeUser
	} else {
		configPath = filepath.Join(".", LocalConfigFile+DefaultConfigExt)
		currentScope = ScopeProject
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return // No config file, nothing to check
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType(ConfigType)

	if err := v.ReadInConfig(); err != nil {
		return // Can't read config, skip informational messages
	}

	settings := v.AllSettings()
	if len(settings) == 0 {
		return
	}

	keys := flattenKeys(settings, "")
	for _, key := range keys {
		def := GetKeyDefinition(key)
		if def == nil {
			continue // Unknown key, skip
		}

		// If a key is forbidden in one scope, the other is its natural home
		var hasRecommendedScope bool
		var recommendedScope ConfigScope

		if def.ProjectConstraints != nil && def.ProjectConstraints.Forbidden {
			hasRecommendedScope = true
			recommendedScope = ScopeUser
		} else if def.UserConstraints != nil && def.UserConstraints.Forbidden {
			hasRecommendedScope = true
			recommendedScope = ScopeProject
		}

		if hasRecommendedScope && recommendedScope != currentScope {
			var typicalLocation string
			if recommendedScope == ScopeUser {
				typicalLocation = "~/.config/snapctl/" + ConfigFileName + DefaultConfigExt
			} else {
				typicalLocation = "./" + LocalConfigFile + DefaultConfigExt
			}

			log.Debugf("Key '%s' in %s config (typically in %s config: %s)",
				key, scopeName, getScopeName(recommendedScope), typicalLocation)
		}
	}
}

// BindFlags binds all relevant cobra flags to Viper
func BindFlags(flags *pflag.FlagSet) error {
	flagsToBind := []string{
		"use-tui",
		"log-level",
	}

	for _, flagName := range flagsToBind {
		if err := viper.BindPFlag(flagName, flags.Lookup(flagName)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}

	return nil
}
