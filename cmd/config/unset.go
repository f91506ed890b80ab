// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/snapvault/snapctl/pkg/config"
	"github.com/spf13/cobra"
)

func newUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset [key]",
		Short: "Remove configuration value",
		Long: `Remove a configuration key from a config file.

Keys use dot notation for nested values (e.g., server.url).

**Note:**
  - Removing a parent key removes all nested values (e.g., unsetting 'server' removes 'server.url' and all other children)
  - Environment variables and defaults will still apply after removal
  - Without --global the project config (./snapctl.yaml) is the target when
    one exists; outside a project checkout the user config is used`,
		Args: cobra.ExactArgs(1),
		Example: `  # Remove from project config
  snapctl config unset use-tui
  snapctl config unset repository.name-prefix

  # Remove from user config
  snapctl config unset --global server.token

  # Remove nested value
  snapctl config unset server.url

  # Remove parent (removes all children)
  snapctl config unset server`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			scope := resolveScope(globalFlag)

			// Call business logic
			if err := config.UnsetConfigValue(key, scope); err != nil {
				return err
			}

			// Show success message
			scopeName := "project"
			configFile := config.LocalConfigFile + config.DefaultConfigExt
			if scope == config.ScopeUser {
				scopeName = "user"
				configFile = "~/.config/snapctl/" + config.ConfigFileName + config.DefaultConfigExt
			}
			fmt.Printf("Removed %s from %s config (%s)\n", key, scopeName, configFile)

			return nil
		},
	}

	addGlobalFlag(cmd)
	return cmd
}
