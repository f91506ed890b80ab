// SPDX-License-Identifier: Apache-2.0
package config

import (
	"github.com/snapvault/snapctl/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// globalFlag determines whether to operate on user config vs project config
	globalFlag bool
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage snapctl configuration",
		Long: `Manage snapctl configuration settings.

Configuration precedence (highest to lowest):
  1. Environment variables (SNAPCTL_*)
  2. Project config (./snapctl.yaml)
  3. User config (~/.config/snapctl/config.yaml)
  4. Defaults

By default, config commands operate on project config (./snapctl.yaml).
Use --global to operate on user config instead.`,
		Example: `  # Set project config (shared team settings)
  snapctl config set repository.default-type s3
  snapctl config set repository.name-prefix prod-

  # Set global config (user preferences)
  snapctl config set --global server.token svt_xxxxx
  snapctl config set --global use-tui false

  # Get configuration value
  snapctl config get server.url

  # Remove configuration value
  snapctl config unset repository.name-prefix
  snapctl config unset --global server.token

  # List all configuration
  snapctl config list`,
	}

	// Add subcommands
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newUnsetCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// addGlobalFlag adds the --global flag to a command
func addGlobalFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&globalFlag, "global", false, "Operate on user config instead of project config")
}

// resolveScope picks the scope for commands that operate on existing
// configuration. Explicit --global always targets the user config;
// otherwise the project config is the target only when the working
// directory actually carries one.
func resolveScope(global bool) config.ConfigScope {
	if global {
		return config.ScopeUser
	}
	if config.IsProjectMode() {
		return config.ScopeProject
	}
	return config.ScopeUser
}
