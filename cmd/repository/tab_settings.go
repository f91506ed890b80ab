// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/snapvault/snapctl/pkg/config"
	"github.com/snapvault/snapctl/pkg/registry"
	repo "github.com/snapvault/snapctl/pkg/repository"
	"github.com/snapvault/snapctl/pkg/ui"
)

// catalogTimeout bounds the type catalog fetch against the daemon.
const catalogTimeout = 10 * time.Second

// catalogLoadedMsg carries the daemon's type catalog and the names already
// registered (for collision checking while typing).
type catalogLoadedMsg struct {
	types    []string
	existing []string
	err      error
}

// SettingsTab collects the repository name, type and source-only flag.
// It starts by fetching the selectable type catalog from the daemon and
// shows a spinner until the catalog arrives or the fetch fails.
type SettingsTab struct {
	width, height int
	draft         *repo.Draft
	client        *registry.Client

	loading  bool
	loadErr  error
	catalog  []string
	existing []string
	spinner  spinner.Model

	form         *huh.Form
	formComplete bool

	// Form-bound values. Changes are diffed against the draft and turned
	// into patches so the other tabs always see the merged state.
	name       string
	typeValue  string
	sourceOnly bool
}

// NewSettingsTab creates the settings tab bound to the shared draft
func NewSettingsTab(draft *repo.Draft, client *registry.Client) *SettingsTab {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(config.CurrentTheme.GetSecondaryColor())

	return &SettingsTab{
		draft:   draft,
		client:  client,
		loading: true,
		spinner: s,
	}
}

// Init implements TabModel interface.
// Kicks off the async catalog fetch with a spinner.
func (t *SettingsTab) Init() tea.Cmd {
	t.loading = true
	t.loadErr = nil
	return tea.Batch(
		t.spinner.Tick,
		t.fetchCatalog(),
	)
}

// fetchCatalog loads the type catalog and existing repository names
func (t *SettingsTab) fetchCatalog() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
		defer cancel()

		types, err := t.client.ListTypes(ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}

		// Existing names are advisory only, so a failure here is not fatal
		var existing []string
		if repos, err := t.client.ListRepositories(ctx); err == nil {
			for _, r := range repos {
				existing = append(existing, r.Name)
			}
		}

		return catalogLoadedMsg{types: types, existing: existing}
	}
}

// Update implements TabModel interface
func (t *SettingsTab) Update(msg tea.Msg) (*SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		if t.form != nil {
			t.form.WithWidth(msg.Width)
		}
		return t, nil

	case catalogLoadedMsg:
		t.loading = false
		if msg.err != nil {
			t.loadErr = msg.err
			log.Debugf("settings: catalog fetch failed: %v", msg.err)
			return t, nil
		}
		t.catalog = msg.types
		t.existing = msg.existing
		return t, t.buildForm()

	case spinner.TickMsg:
		if t.loading {
			var cmd tea.Cmd
			t.spinner, cmd = t.spinner.Update(msg)
			return t, cmd
		}

	case tea.KeyMsg:
		// Retry the catalog fetch from the error state
		if t.loadErr != nil && msg.String() == "r" {
			return t, t.Init()
		}
	}

	// Delegate to form.Update() for all input handling
	var cmd tea.Cmd
	if t.form != nil {
		form, formCmd := t.form.Update(msg)
		t.form = form.(*huh.Form)
		cmd = formCmd
	}

	// Diff form values against the draft and emit patches for what changed
	var cmds []tea.Cmd
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, t.diffDraft()...)

	// Check if form completed
	if t.form != nil && t.form.State == huh.StateCompleted && !t.formComplete {
		t.formComplete = true
		cmds = append(cmds, func() tea.Msg { return TabCompleteMsg{TabIndex: 0} })
	}

	return t, tea.Batch(cmds...)
}

// diffDraft turns form value changes into draft patches
func (t *SettingsTab) diffDraft() []tea.Cmd {
	var cmds []tea.Cmd

	if t.name != t.draft.Name {
		name := t.name
		patch := repo.Patch{Name: &name}
		cmds = append(cmds, func() tea.Msg { return DraftUpdateMsg{Patch: patch} })
	}
	if t.typeValue != "" && !repo.IsTypeSelected(*t.draft, t.typeValue) {
		patch := repo.SelectType(*t.draft, t.typeValue)
		cmds = append(cmds, func() tea.Msg { return DraftUpdateMsg{Patch: patch} })
	}
	if t.sourceOnly != t.draft.SourceOnly {
		patch := repo.SetSourceOnly(*t.draft, t.sourceOnly)
		cmds = append(cmds, func() tea.Msg { return DraftUpdateMsg{Patch: patch} })
	}

	return cmds
}

// buildForm creates the settings form from the loaded catalog
func (t *SettingsTab) buildForm() tea.Cmd {
	// Seed form values from the draft so re-entry keeps prior answers
	t.name = t.draft.Name
	t.typeValue = repo.EffectiveType(*t.draft)
	t.sourceOnly = t.draft.SourceOnly

	prefix := config.GetRepositoryNamePrefix()
	if t.name == "" && prefix != "" {
		t.name = prefix
	}

	// The source wrapper is the toggle below, never a selectable type
	options := make([]huh.Option[string], 0, len(t.catalog))
	for _, typ := range t.catalog {
		if typ == repo.TypeSource {
			continue
		}
		options = append(options, huh.NewOption(typeLabel(typ), typ))
	}
	if t.typeValue == "" && len(options) > 0 {
		t.typeValue = options[0].Value
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Repository Name").
				Description("Unique name for the new repository").
				Value(&t.name).
				Validate(func(s string) error {
					probe := repo.Draft{Name: s, Type: t.typeValue}
					if msg := repo.Validate(probe, t.existing).FieldError("name"); msg != "" {
						return errors.New(msg)
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Repository Type").
				Description("Where snapshot data is stored").
				Options(options...).
				Value(&t.typeValue),

			huh.NewConfirm().
				Title("Source-Only").
				Description("Store only source files and metadata; snapshots taken from such a repository cannot be restored directly").
				Affirmative("Yes").
				Negative("No").
				Value(&t.sourceOnly),
		),
	)

	return t.form.Init()
}

// View implements TabModel interface
func (t *SettingsTab) View() string {
	theme := config.CurrentTheme

	// Catalog fetch failed
	if t.loadErr != nil {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			"",
			theme.ErrorMessage("Failed to load repository types"),
			"",
			theme.SubtleStyle().Render(t.loadErr.Error()),
			"",
			theme.SubtleStyle().Render("Check the server with 'snapctl config get server.url'. Press r to retry, ctrl+c to quit."),
			"",
		)
	}

	// Catalog fetch in flight
	if t.loading {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			"",
			t.spinner.View()+" Loading repository types...",
			"",
			theme.SubtleStyle().Render("Fetching the type catalog from the SnapVault daemon."),
		)
	}

	if t.form == nil {
		return ""
	}
	return t.form.View()
}

// IsComplete implements TabModel interface
func (t *SettingsTab) IsComplete() bool {
	return t.formComplete
}

// IsBusy implements TabModel interface
func (t *SettingsTab) IsBusy() bool {
	return t.loading
}

// GetState implements TabModel interface
func (t *SettingsTab) GetState() ui.TabState {
	if t.loadErr != nil {
		return ui.TabError
	}
	if t.formComplete {
		return ui.TabComplete
	}
	return ui.TabActive
}

// typeLabel maps a catalog identifier to its display label
func typeLabel(typ string) string {
	switch typ {
	case repo.TypeFS:
		return "Shared filesystem"
	case repo.TypeURL:
		return "Read-only URL"
	case repo.TypeS3:
		return "AWS S3"
	case repo.TypeGCS:
		return "Google Cloud Storage"
	case repo.TypeAzure:
		return "Azure Blob Storage"
	case repo.TypeHDFS:
		return "Hadoop HDFS"
	default:
		return typ
	}
}
