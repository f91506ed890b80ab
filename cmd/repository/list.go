// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"fmt"
	"sort"

	"github.com/snapvault/snapctl/pkg/config"
	repo "github.com/snapvault/snapctl/pkg/repository"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered repositories",
		Long: `List the repositories registered with the SnapVault daemon.

Output format: name (type), with source-only repositories marked.`,
		Example: `  # List all repositories
  snapctl repository list

  # Example output:
  # archive   s3 (source-only)
  # nightly   fs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, err := newClient().ListRepositories(cmd.Context())
			if err != nil {
				return err
			}

			if len(repos) == 0 {
				fmt.Println("No repositories registered")
				return nil
			}

			sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })

			// Column width for the name field
			width := 0
			for _, r := range repos {
				if len(r.Name) > width {
					width = len(r.Name)
				}
			}

			theme := config.CurrentTheme
			for _, r := range repos {
				draft := repo.ParseDefinition(r.Name, r.Definition)
				line := fmt.Sprintf("%-*s  %s", width, r.Name, repo.EffectiveType(draft))
				if draft.SourceOnly {
					line += " " + theme.SubtleStyle().Render("(source-only)")
				}
				fmt.Println(line)
			}

			return nil
		},
	}

	return cmd
}
