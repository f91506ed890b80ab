// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	repo "github.com/snapvault/snapctl/pkg/repository"
	"github.com/snapvault/snapctl/pkg/ui"
)

func TestSettingsTab_Init(t *testing.T) {
	draft := &repo.Draft{Settings: map[string]any{}}
	tab := NewSettingsTab(draft, testClient())

	cmd := tab.Init()
	if cmd == nil {
		t.Fatal("Init() should return a command")
	}

	// The catalog fetch is in flight until catalogLoadedMsg arrives
	if !tab.loading {
		t.Error("Init() should mark the tab as loading")
	}
	if tab.form != nil {
		t.Error("form should not exist before the catalog arrives")
	}
}

func TestSettingsTab_CatalogLoaded(t *testing.T) {
	draft := &repo.Draft{Settings: map[string]any{}}
	tab := NewSettingsTab(draft, testClient())
	tab.Init()

	msg := catalogLoadedMsg{
		types:    []string{repo.TypeFS, repo.TypeS3, repo.TypeSource},
		existing: []string{"nightly"},
	}
	tab, _ = tab.Update(msg)

	if tab.loading {
		t.Error("catalog arrival should settle the loading state")
	}
	if tab.form == nil {
		t.Fatal("catalog arrival should build the form")
	}

	// The source wrapper must not be selectable; first concrete type wins
	if tab.typeValue != repo.TypeFS {
		t.Errorf("expected first concrete type selected, got %q", tab.typeValue)
	}
}

func TestSettingsTab_CatalogError(t *testing.T) {
	draft := &repo.Draft{Settings: map[string]any{}}
	tab := NewSettingsTab(draft, testClient())
	tab.Init()

	msg := catalogLoadedMsg{err: fmt.Errorf("connection refused")}
	tab, _ = tab.Update(msg)

	if tab.loading {
		t.Error("fetch failure should settle the loading state")
	}
	if tab.GetState() != ui.TabError {
		t.Errorf("expected TabError state, got %v", tab.GetState())
	}

	view := tab.View()
	if !strings.Contains(view, "connection refused") {
		t.Errorf("error view should show the cause, got %q", view)
	}
	if !strings.Contains(view, "retry") {
		t.Errorf("error view should offer a retry, got %q", view)
	}
}

func TestSettingsTab_RetryAfterError(t *testing.T) {
	draft := &repo.Draft{Settings: map[string]any{}}
	tab := NewSettingsTab(draft, testClient())
	tab.Init()

	tab, _ = tab.Update(catalogLoadedMsg{err: fmt.Errorf("boom")})

	// 'r' restarts the fetch
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	tab, cmd := tab.Update(msg)

	if cmd == nil {
		t.Error("retry should return a fetch command")
	}
	if !tab.loading {
		t.Error("retry should re-enter the loading state")
	}
	if tab.loadErr != nil {
		t.Error("retry should clear the previous error")
	}
}

func TestSettingsTab_DiffEmitsPatches(t *testing.T) {
	draft := &repo.Draft{Settings: map[string]any{}}
	tab := NewSettingsTab(draft, testClient())

	tab.name = "archive"
	tab.typeValue = repo.TypeS3
	tab.sourceOnly = true

	cmds := tab.diffDraft()
	if len(cmds) != 3 {
		t.Fatalf("expected 3 patches for 3 changed fields, got %d", len(cmds))
	}

	// Apply the emitted patches the way the wizard would
	for _, cmd := range cmds {
		msg := cmd().(DraftUpdateMsg)
		*draft = msg.Patch.Apply(*draft)
	}

	if draft.Name != "archive" || draft.Type != repo.TypeS3 || !draft.SourceOnly {
		t.Errorf("patches did not converge the draft: %+v", draft)
	}

	// A second diff against the converged draft is empty
	if cmds := tab.diffDraft(); len(cmds) != 0 {
		t.Errorf("expected no patches once in sync, got %d", len(cmds))
	}
}

func TestSettingsTab_BusyWhileLoading(t *testing.T) {
	draft := &repo.Draft{Settings: map[string]any{}}
	tab := NewSettingsTab(draft, testClient())
	tab.Init()

	if !tab.IsBusy() {
		t.Error("tab should be busy while the catalog loads")
	}

	tab, _ = tab.Update(catalogLoadedMsg{types: []string{repo.TypeFS}})
	if tab.IsBusy() {
		t.Error("tab should not be busy once the catalog arrived")
	}
}

func TestTypeLabel(t *testing.T) {
	if got := typeLabel(repo.TypeS3); got != "AWS S3" {
		t.Errorf("typeLabel(s3) = %q", got)
	}

	// Unknown catalog entries fall back to the raw identifier
	if got := typeLabel("tape"); got != "tape" {
		t.Errorf("typeLabel(tape) = %q", got)
	}
}
