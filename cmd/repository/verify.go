// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"fmt"

	"github.com/snapvault/snapctl/pkg/config"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [name]",
		Short: "Verify repository access on all nodes",
		Long: `Ask the daemon to verify that every node in the cluster can read and
write the repository's storage backend.

A failed verification usually means the backend is not mounted (fs), the
credentials are missing (s3, gcs, azure) or a node cannot reach the
endpoint.`,
		Args: cobra.ExactArgs(1),
		Example: `  snapctl repository verify nightly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			result, err := newClient().VerifyRepository(cmd.Context(), name)
			if err != nil {
				return err
			}

			theme := config.CurrentTheme
			if !result.Verified {
				fmt.Println(theme.ErrorMessage(fmt.Sprintf("Repository %q failed verification", name)))
				if result.Message != "" {
					fmt.Println(theme.SubtleStyle().Render(result.Message))
				}
				return fmt.Errorf("verification failed")
			}

			fmt.Println(theme.SuccessMessage(fmt.Sprintf("Repository %q verified on all nodes", name)))
			return nil
		},
	}

	return cmd
}
