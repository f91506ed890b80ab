// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/snapvault/snapctl/pkg/config"
	repo "github.com/snapvault/snapctl/pkg/repository"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "get [name]",
		Short: "Show a repository definition",
		Long: `Show the definition of a registered repository.

By default prints the name, type and settings in a readable form. Use
--json to print the stored document as the daemon holds it, which keeps
the type=source wire encoding for source-only repositories.`,
		Args: cobra.ExactArgs(1),
		Example: `  # Readable form
  snapctl repository get nightly

  # Stored document
  snapctl repository get nightly --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newClient().GetRepository(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if outputJSON {
				out, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			draft := repo.ParseDefinition(r.Name, r.Definition)
			theme := config.CurrentTheme

			typeLine := repo.EffectiveType(draft)
			if draft.SourceOnly {
				typeLine += " " + theme.SubtleStyle().Render("(source-only)")
			}

			fmt.Println("Name: " + draft.Name)
			fmt.Println("Type: " + typeLine)

			if len(draft.Settings) > 0 {
				fmt.Println("Settings:")
				keys := make([]string, 0, len(draft.Settings))
				for k := range draft.Settings {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Printf("  %s = %v\n", k, draft.Settings[k])
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Print the stored document as JSON")

	return cmd
}
