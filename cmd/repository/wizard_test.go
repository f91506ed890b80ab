// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/snapvault/snapctl/pkg/registry"
	repo "github.com/snapvault/snapctl/pkg/repository"
	"github.com/snapvault/snapctl/pkg/ui"
)

func testClient() *registry.Client {
	return registry.NewClientForURL("http://127.0.0.1:0", "")
}

func TestWizardModel_Init(t *testing.T) {
	m := NewWizardModel(testClient())

	// Should create 3 tabs
	if len(m.tabs) != 3 {
		t.Errorf("expected 3 tabs, got %d", len(m.tabs))
	}

	// Tab 0 should be active initially
	if m.activeTab != 0 {
		t.Errorf("expected activeTab 0, got %d", m.activeTab)
	}

	// First tab should be active state
	if m.tabs[0].State != ui.TabActive {
		t.Errorf("expected first tab to be active, got %v", m.tabs[0].State)
	}

	// Other tabs should be pending
	for i := 1; i < len(m.tabs); i++ {
		if m.tabs[i].State != ui.TabPending {
			t.Errorf("expected tab %d to be pending, got %v", i, m.tabs[i].State)
		}
	}
}

func TestWizardModel_TabCompleteMsg(t *testing.T) {
	m := NewWizardModel(testClient())

	// Simulate tab 0 completing
	msg := TabCompleteMsg{TabIndex: 0}
	updatedModel, _ := m.Update(msg)
	m = updatedModel.(WizardModel)

	// Tab 0 should be marked complete
	if m.tabs[0].State != ui.TabComplete {
		t.Errorf("expected tab 0 to be complete, got %v", m.tabs[0].State)
	}

	// Tab 1 should be active
	if m.activeTab != 1 {
		t.Errorf("expected activeTab 1, got %d", m.activeTab)
	}

	if m.tabs[1].State != ui.TabActive {
		t.Errorf("expected tab 1 to be active, got %v", m.tabs[1].State)
	}
}

func TestWizardModel_DraftUpdateMsg(t *testing.T) {
	m := NewWizardModel(testClient())

	name := "nightly"
	msg := DraftUpdateMsg{Patch: repo.Patch{Name: &name}}
	updatedModel, _ := m.Update(msg)
	m = updatedModel.(WizardModel)

	// Draft should be updated (via pointer) so all tabs see it
	if m.draft.Name != "nightly" {
		t.Errorf("expected draft name to be set, got %q", m.draft.Name)
	}
	if m.settingsTab.draft.Name != "nightly" {
		t.Errorf("expected settings tab to see updated draft, got %q", m.settingsTab.draft.Name)
	}
}

func TestWizardModel_DraftUpdateSequence(t *testing.T) {
	m := NewWizardModel(testClient())
	m.draft.Type = "" // clear any configured default

	apply := func(p repo.Patch) {
		updatedModel, _ := m.Update(DraftUpdateMsg{Patch: p})
		m = updatedModel.(WizardModel)
	}

	// Choose a type, add settings, then wrap as source-only
	apply(repo.SelectType(*m.draft, repo.TypeS3))
	apply(repo.Patch{Settings: map[string]any{"bucket": "backups"}})
	apply(repo.SetSourceOnly(*m.draft, true))

	// Switching the wrapped type must keep the settings
	apply(repo.SelectType(*m.draft, repo.TypeFS))

	if m.draft.Type != repo.TypeFS {
		t.Errorf("expected type fs, got %q", m.draft.Type)
	}
	if !m.draft.SourceOnly {
		t.Error("expected source-only to remain set")
	}
	if m.draft.Settings["bucket"] != "backups" {
		t.Errorf("expected settings preserved under wrapper, got %v", m.draft.Settings)
	}

	// Dropping the wrapper and switching type resets settings
	apply(repo.SetSourceOnly(*m.draft, false))
	apply(repo.SelectType(*m.draft, repo.TypeGCS))

	if len(m.draft.Settings) != 0 {
		t.Errorf("expected settings reset on concrete type switch, got %v", m.draft.Settings)
	}
}

func TestWizardModel_WindowSizeMsg(t *testing.T) {
	m := NewWizardModel(testClient())

	msg := tea.WindowSizeMsg{Width: 120, Height: 40}
	updatedModel, _ := m.Update(msg)
	m = updatedModel.(WizardModel)

	// Dimensions should be stored
	if m.width != 120 {
		t.Errorf("expected width 120, got %d", m.width)
	}

	if m.height != 40 {
		t.Errorf("expected height 40, got %d", m.height)
	}
}

func TestWizardModel_Quitting(t *testing.T) {
	m := NewWizardModel(testClient())

	// Navigate to last tab and complete it
	for i := 0; i < 2; i++ {
		msg := TabCompleteMsg{TabIndex: i}
		updatedModel, _ := m.Update(msg)
		m = updatedModel.(WizardModel)
	}

	// Mark final tab as complete
	m.tabs[2].State = ui.TabComplete

	// Press 'q' should quit
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	updatedModel, cmd := m.Update(msg)
	m = updatedModel.(WizardModel)

	// Should be quitting
	if !m.quitting {
		t.Error("expected quitting to be true")
	}

	// Should return tea.Quit command
	if cmd == nil {
		t.Error("expected quit command, got nil")
	}
}

func TestWizardModel_View(t *testing.T) {
	m := NewWizardModel(testClient())

	// Set dimensions
	m.width = 120
	m.height = 40

	// Should not panic
	view := m.View()
	if view == "" {
		t.Error("expected non-empty view")
	}

	// Before dimensions are set, should show "Initializing..."
	m2 := NewWizardModel(testClient())
	view2 := m2.View()
	if view2 != "Initializing..." {
		t.Errorf("expected 'Initializing...', got %s", view2)
	}
}

func TestWizardModel_TabErrorMsg(t *testing.T) {
	m := NewWizardModel(testClient())

	// Simulate tab error
	msg := TabErrorMsg{
		TabIndex: 1,
		Error:    tea.ErrProgramKilled,
	}

	updatedModel, _ := m.Update(msg)
	m = updatedModel.(WizardModel)

	// Tab should be marked as error
	if m.tabs[1].State != ui.TabError {
		t.Errorf("expected tab 1 to be error, got %v", m.tabs[1].State)
	}

	// Error should be stored
	if m.err == nil {
		t.Error("expected error to be stored")
	}
}
