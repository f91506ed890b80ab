// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/snapvault/snapctl/pkg/config"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all configuration values",
		Long: `List all configuration values with their sources.

Shows all configuration keys currently set, along with their values
and where they come from (ENV, project config, user config, or default).

Output format: key = value (source)`,
		Example: `  # List all configuration
  snapctl config list

  # Example output:
  # log-level = debug (default)
  # repository.default-type = s3 (from ./snapctl.yaml)
  # repository.verify-on-create = true (from ./snapctl.yaml)
  # server.url = https://vault.internal:9600 (from ~/.config/snapctl/config.yaml)
  # use-tui = false (from ENV: SNAPCTL_USE_TUI)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Call business logic
			values, err := config.ListConfigValues()
			if err != nil {
				return err
			}

			if len(values) == 0 {
				fmt.Println("No configuration set")
				return nil
			}

			// Display each key with its source
			for _, cv := range values {
				fmt.Printf("%s = %v (%s)\n", cv.Key, cv.Value, cv.Source)
			}

			// Show configuration precedence info
			fmt.Println("\n" + config.CurrentTheme.SubtleStyle().Render("Configuration precedence: ENV > project config > user config > defaults"))

			return nil
		},
	}

	return cmd
}
