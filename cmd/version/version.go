// SPDX-License-Identifier: Apache-2.0
package version

import (
	"fmt"

	"github.com/snapvault/snapctl/pkg/config"
	"github.com/snapvault/snapctl/pkg/registry"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd(version string) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the current version of snapctl.

With --remote, also query the configured SnapVault daemon for its version
and check that this client can talk to it.`,
		Example: `  snapctl version
  snapctl version --remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if version == "" {
				version = "dev"
			}
			fmt.Printf("snapctl version %s\n", version)

			if !remote {
				return nil
			}

			client := registry.NewClient()
			serverVersion, err := client.ServerVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to reach daemon: %w", err)
			}
			fmt.Printf("snapvault daemon %s\n", serverVersion)

			theme := config.CurrentTheme
			if err := client.CheckCompatibility(cmd.Context()); err != nil {
				fmt.Println(theme.WarningMessage(err.Error()))
				return nil
			}
			fmt.Println(theme.SuccessMessage("Client and daemon are compatible"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Also query the daemon version and check compatibility")

	return cmd
}
