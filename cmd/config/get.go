// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/snapvault/snapctl/pkg/config"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get configuration value",
		Long: `Get a configuration value and show its source.

The source indicates where the value comes from in precedence order:
  - ENV: Environment variable (SNAPCTL_*)
  - Project: Project config file (./snapctl.yaml)
  - User: User config file (~/.config/snapctl/config.yaml)
  - Default: Built-in default value`,
		Args: cobra.ExactArgs(1),
		Example: `  # Get a configuration value
  snapctl config get use-tui

  # Get nested value
  snapctl config get server.url

  # Output shows value and source:
  # use-tui = true (from ENV: SNAPCTL_USE_TUI)
  # server.url = https://vault.internal:9600 (from ./snapctl.yaml)
  # repository.default-type = fs (default)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			configValue, err := config.GetConfigValue(key)
			if err != nil {
				return err
			}

			// Display value with source
			fmt.Printf("%s = %v (%s)\n", configValue.Key, configValue.Value, configValue.Source)

			return nil
		},
	}

	return cmd
}
