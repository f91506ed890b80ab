// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"fmt"

	"github.com/snapvault/snapctl/pkg/config"
	"github.com/snapvault/snapctl/pkg/ui"
	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "remove [name]",
		Aliases: []string{"rm"},
		Short:   "Unregister a repository",
		Long: `Unregister a repository from the SnapVault daemon.

The stored snapshot data is left in place; only the registration is
removed. Because snapshots in the repository become unreachable until it
is registered again, the command asks for the repository name to be
typed back before proceeding. Use --force to skip the confirmation.`,
		Args: cobra.ExactArgs(1),
		Example: `  # Remove with confirmation
  snapctl repository remove nightly

  # Remove without confirmation (scripts)
  snapctl repository remove nightly --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !force {
				prompt := fmt.Sprintf("Unregistering %q makes its snapshots unreachable. Type the repository name to confirm", name)
				confirmed, err := ui.TypedConfirm(prompt, name)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted")
					return nil
				}
			}

			if err := newClient().DeleteRepository(cmd.Context(), name); err != nil {
				return err
			}

			fmt.Println(config.CurrentTheme.SuccessMessage(fmt.Sprintf("Repository %q removed", name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
