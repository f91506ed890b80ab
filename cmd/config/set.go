// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/snapvault/snapctl/pkg/config"
	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set configuration value",
		Long: `Set a configuration key to a value.

Keys use dot notation for nested values (e.g., server.url).

Boolean values support natural language:
  - true:  true, yes, on, enable, enabled
  - false: false, no, off, disable, disabled

Numeric values are automatically detected and typed.`,
		Args: cobra.ExactArgs(2),
		Example: `  # Set boolean values (multiple formats supported)
  snapctl config set use-tui true
  snapctl config set repository.verify-on-create yes

  # Set string values
  snapctl config set log-level debug
  snapctl config set repository.default-type s3

  # Set nested values with dot notation
  snapctl config set server.url https://vault.internal:9600

  # Set in user config instead of project
  snapctl config set --global server.token svt_xxxxx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			// Determine scope
			scope := config.ScopeProject
			if globalFlag {
				scope = config.ScopeUser
			}

			// Call business logic
			if err := config.SetConfigValue(key, value, scope); err != nil {
				return err
			}

			// Show success message
			scopeName := "project"
			configFile := config.LocalConfigFile + config.DefaultConfigExt
			if globalFlag {
				scopeName = "user"
				configFile = "~/.config/snapctl/" + config.ConfigFileName + config.DefaultConfigExt
			}
			fmt.Printf("Set %s = %s (%s: %s)\n", key, value, scopeName, configFile)

			return nil
		},
	}

	addGlobalFlag(cmd)
	return cmd
}
