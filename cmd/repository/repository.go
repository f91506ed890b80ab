// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"github.com/snapvault/snapctl/pkg/config"
	"github.com/snapvault/snapctl/pkg/registry"
	"github.com/spf13/cobra"
)

// serverFlag overrides the configured daemon URL for a single invocation
var serverFlag string

// NewRepositoryCmd creates the repository command and its subcommands
func NewRepositoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repository",
		Aliases: []string{"repo"},
		Short:   "Manage SnapVault backup repositories",
		Long: `Manage the backup repositories registered with the SnapVault daemon.

A repository is the storage backend snapshots are written to: a shared
filesystem path, an S3 bucket, a read-only URL, and so on. Repositories
are registered with the daemon by name; the daemon validates access on
every node before accepting snapshots.

The daemon address comes from the server.url config key (snapctl config
get server.url) and can be overridden per invocation with --server.`,
		Example: `  # Create a repository (interactive wizard when stdin is a TTY)
  snapctl repository create

  # Create non-interactively
  snapctl repository create nightly --type s3 --setting bucket=backups

  # List, inspect, verify, remove
  snapctl repository list
  snapctl repository get nightly
  snapctl repository verify nightly
  snapctl repository remove nightly`,
	}

	cmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Daemon base URL (overrides server.url config)")

	// Add subcommands
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newVerifyCmd())

	return cmd
}

// newClient builds a daemon client honoring the --server override
func newClient() *registry.Client {
	if serverFlag != "" {
		return registry.NewClientForURL(serverFlag, config.GetServerToken())
	}
	return registry.NewClient()
}
