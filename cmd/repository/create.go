// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/snapvault/snapctl/cmd/cmdutil"
	"github.com/snapvault/snapctl/pkg/config"
	repo "github.com/snapvault/snapctl/pkg/repository"
	"github.com/spf13/cobra"
)

// package-level flag variables bound to cobra flags
var (
	flagType       string
	flagSourceOnly bool
	flagSettings   []string
	flagVerify     bool
	flagNoVerify   bool
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Register a new backup repository",
		Long: `Register a new backup repository with the SnapVault daemon.

Interactive mode (default when stdin is a terminal and use-tui is true):
  Launches a step-by-step wizard: repository settings, type-specific
  details, then registration. The selectable types are fetched from the
  daemon's catalog.

Non-interactive mode (name and --type required):
  Registers the repository using the provided flags without any prompts.
  Type-specific settings are passed as repeated --setting key=value
  flags; values are typed automatically (true/false, integers).

A source-only repository stores only source files and metadata. It wraps
a concrete storage type; snapshots taken from it cannot be restored
directly but can be reindexed into a new cluster.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  # Interactive wizard (when stdin is a TTY)
  snapctl repository create

  # Shared filesystem repository
  snapctl repository create nightly --type fs --setting location=/mnt/backups

  # Source-only S3 repository, verified on every node after creation
  snapctl repository create archive \
    --type s3 --source-only \
    --setting bucket=snapvault-archive \
    --setting base_path=prod \
    --verify`,
		RunE: runCreate,
	}

	cmd.Flags().StringVar(&flagType, "type", "", "Repository type (required in non-interactive mode)")
	cmd.Flags().BoolVar(&flagSourceOnly, "source-only", false, "Register as a source-only repository")
	cmd.Flags().StringArrayVar(&flagSettings, "setting", nil, "Type-specific setting as key=value (repeatable)")
	cmd.Flags().BoolVar(&flagVerify, "verify", false, "Verify repository access on all nodes after creation")
	cmd.Flags().BoolVar(&flagNoVerify, "no-verify", false, "Skip verification even when repository.verify-on-create is set")
	cmd.MarkFlagsMutuallyExclusive("verify", "no-verify")

	return cmd
}

// runCreate is the cobra RunE handler
func runCreate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && cmdutil.IsInteractive() {
		return runWizard()
	}

	if len(args) == 0 {
		return fmt.Errorf("repository name is required in non-interactive mode")
	}
	return runNonInteractive(cmd.Context(), args[0])
}

// runWizard launches the Bubble Tea TUI wizard
func runWizard() error {
	p := tea.NewProgram(NewWizardModel(newClient()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

// runNonInteractive registers the repository from flags without prompts
func runNonInteractive(ctx context.Context, name string) error {
	if flagType == "" {
		return fmt.Errorf("--type is required in non-interactive mode")
	}

	// Build the draft through the same patch pipeline the wizard uses
	draft := repo.Draft{Settings: map[string]any{}}
	draft = repo.Patch{Name: &name}.Apply(draft)
	draft = repo.SetSourceOnly(draft, flagSourceOnly).Apply(draft)
	draft = repo.SelectType(draft, flagType).Apply(draft)

	settings, err := parseSettings(flagSettings)
	if err != nil {
		return err
	}
	draft = repo.Patch{Settings: settings}.Apply(draft)

	// Local validation first; the daemon stays authoritative for the rest
	if result := repo.Validate(draft, nil); !result.Valid {
		for _, field := range []string{"name", "type"} {
			if msg := result.FieldError(field); msg != "" {
				return fmt.Errorf("invalid %s: %s", field, msg)
			}
		}
	}

	client := newClient()
	if err := client.CreateRepository(ctx, draft.Name, draft.Definition()); err != nil {
		return err
	}

	theme := config.CurrentTheme
	fmt.Println(theme.SuccessMessage(fmt.Sprintf("Repository %q registered", draft.Name)))

	if shouldVerify() {
		verify, err := client.VerifyRepository(ctx, draft.Name)
		if err != nil {
			return fmt.Errorf("repository registered but verification failed: %w", err)
		}
		if !verify.Verified {
			fmt.Println(theme.WarningMessage("Verification failed: " + verify.Message))
			return nil
		}
		fmt.Println(theme.CompleteIndicator() + " Verified on all nodes")
	}

	return nil
}

// shouldVerify resolves the verify flags against the config default
func shouldVerify() bool {
	if flagNoVerify {
		return false
	}
	return flagVerify || config.GetVerifyOnCreate()
}

// parseSettings converts repeated key=value flags into a settings document.
// Boolean and integer values are detected and typed; everything else stays
// a string.
func parseSettings(pairs []string) (map[string]any, error) {
	settings := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --setting %q: expected key=value", pair)
		}
		if key == repo.SettingDelegateType {
			return nil, fmt.Errorf("setting %q is reserved: use --source-only with --type instead", key)
		}

		switch value {
		case "true":
			settings[key] = true
		case "false":
			settings[key] = false
		default:
			if n, err := strconv.Atoi(value); err == nil {
				settings[key] = n
			} else {
				settings[key] = value
			}
		}
	}

	return settings, nil
}
