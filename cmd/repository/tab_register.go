// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/snapvault/snapctl/pkg/config"
	"github.com/snapvault/snapctl/pkg/registry"
	repo "github.com/snapvault/snapctl/pkg/repository"
	"github.com/snapvault/snapctl/pkg/ui"
)

// registerTimeout bounds registration plus the optional verify round trip.
const registerTimeout = 60 * time.Second

// Custom messages for async flow
type registerMsg struct{}
type registeredMsg struct {
	verify *registry.VerifyResult
	err    error
}

// RegisterTab submits the finished draft to the daemon and, when
// verify-on-create is enabled, runs an access check across the cluster.
type RegisterTab struct {
	width  int
	height int

	draft    *repo.Draft
	client   *registry.Client
	verify   *registry.VerifyResult
	creating bool
	complete bool
	err      error
	spinner  spinner.Model
}

// NewRegisterTab creates the registration tab bound to the shared draft
func NewRegisterTab(draft *repo.Draft, client *registry.Client) *RegisterTab {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(config.CurrentTheme.GetSecondaryColor())

	return &RegisterTab{
		draft:   draft,
		client:  client,
		spinner: s,
	}
}

// Init implements TabModel interface.
// Auto-registers the repository using the async message flow.
func (t *RegisterTab) Init() tea.Cmd {
	return tea.Batch(
		t.spinner.Tick,
		func() tea.Msg { return registerMsg{} },
	)
}

// Update implements TabModel interface
func (t *RegisterTab) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		return t, nil

	case registerMsg:
		// Mark as creating and trigger the actual registration
		t.creating = true
		return t, t.register()

	case registeredMsg:
		t.err = msg.err
		t.verify = msg.verify
		t.complete = true
		return t, nil

	case spinner.TickMsg:
		if t.creating && !t.complete {
			var cmd tea.Cmd
			t.spinner, cmd = t.spinner.Update(msg)
			return t, cmd
		}

	case tea.KeyMsg:
		// Handle user input after registration
		if t.complete {
			if t.err != nil {
				// Error state: allow retry or quit
				switch msg.String() {
				case "r":
					t.err = nil
					t.complete = false
					t.verify = nil
					return t, tea.Batch(
						t.spinner.Tick,
						func() tea.Msg { return registerMsg{} },
					)
				case "q", "ctrl+c":
					return t, tea.Quit
				}
			} else {
				// Success state: allow exit
				switch msg.String() {
				case "enter", "q":
					return t, tea.Quit
				}
			}
		}
	}

	return t, nil
}

// register performs the actual daemon round trip
func (t *RegisterTab) register() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), registerTimeout)
		defer cancel()

		draft := *t.draft
		if err := t.client.CreateRepository(ctx, draft.Name, draft.Definition()); err != nil {
			return registeredMsg{err: fmt.Errorf("failed to register repository: %w", err)}
		}

		if !config.GetVerifyOnCreate() {
			return registeredMsg{}
		}

		verify, err := t.client.VerifyRepository(ctx, draft.Name)
		if err != nil {
			// The repository exists at this point; surface the verify
			// failure without undoing the registration.
			return registeredMsg{verify: &registry.VerifyResult{
				Verified: false,
				Message:  err.Error(),
			}}
		}
		return registeredMsg{verify: verify}
	}
}

// View implements TabModel interface
func (t *RegisterTab) View() string {
	theme := config.CurrentTheme

	// Show error if registration failed
	if t.err != nil {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			"",
			theme.ErrorMessage("Failed to register repository"),
			"",
			theme.SubtleStyle().Render(t.err.Error()),
			"",
			theme.SubtleStyle().Render("Press r to retry, q to quit"),
			"",
		)
	}

	// Show registering state as a centered progress modal
	if t.creating && !t.complete {
		return ui.RenderProgressModal(
			"Registering Repository",
			"Submitting the definition to the SnapVault daemon",
			t.spinner.View(),
			"",
			t.width, t.height-6, 50,
		)
	}

	// Show complete state with the registered definition
	if t.complete && t.err == nil {
		title := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.GetPrimaryColor()).
			Render("Repository Registered")

		typeLine := typeLabel(repo.EffectiveType(*t.draft))
		if t.draft.SourceOnly {
			typeLine += " (source-only)"
		}

		parts := []string{
			"",
			title,
			"",
			theme.CompleteIndicator() + " Name: " + t.draft.Name,
			theme.CompleteIndicator() + " Type: " + typeLine,
		}

		if t.verify != nil {
			if t.verify.Verified {
				parts = append(parts, theme.CompleteIndicator()+" Verified on all nodes")
			} else {
				parts = append(parts,
					theme.WarningIndicator()+" Verification failed",
					theme.SubtleStyle().Render("  "+t.verify.Message),
				)
			}
		}

		parts = append(parts,
			"",
			ui.SummaryKeyBindings().RenderInline(theme.SubtleStyle()),
			"",
		)

		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	// Default state (should not be reached)
	return ""
}

// IsComplete implements TabModel interface
func (t *RegisterTab) IsComplete() bool {
	return t.complete && t.err == nil
}

// IsBusy implements TabModel interface
func (t *RegisterTab) IsBusy() bool {
	return t.creating && !t.complete
}

// GetState implements TabModel interface
func (t *RegisterTab) GetState() ui.TabState {
	if t.err != nil {
		return ui.TabError
	}
	if t.complete && t.err == nil {
		return ui.TabComplete
	}
	return ui.TabActive
}
