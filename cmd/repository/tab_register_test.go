// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/snapvault/snapctl/pkg/registry"
	repo "github.com/snapvault/snapctl/pkg/repository"
	"github.com/snapvault/snapctl/pkg/ui"
)

func TestRegisterTab_Init(t *testing.T) {
	draft := &repo.Draft{Name: "nightly", Type: repo.TypeFS, Settings: map[string]any{}}
	tab := NewRegisterTab(draft, testClient())

	cmd := tab.Init()
	if cmd == nil {
		t.Fatal("Init() should return a command")
	}

	// Init should not immediately complete - registration runs async
	if tab.complete {
		t.Error("Init() should not immediately set complete to true")
	}
	if tab.creating {
		t.Error("Init() should not immediately set creating to true")
	}
}

func TestRegisterTab_RegisteredMsg(t *testing.T) {
	draft := &repo.Draft{Name: "nightly", Type: repo.TypeFS, Settings: map[string]any{}}
	tab := NewRegisterTab(draft, testClient())

	model, _ := tab.Update(registeredMsg{})
	tab = model.(*RegisterTab)

	if !tab.complete {
		t.Error("registeredMsg should mark the tab complete")
	}
	if tab.GetState() != ui.TabComplete {
		t.Errorf("expected TabComplete, got %v", tab.GetState())
	}
}

func TestRegisterTab_RegisteredMsgError(t *testing.T) {
	draft := &repo.Draft{Name: "nightly", Type: repo.TypeFS, Settings: map[string]any{}}
	tab := NewRegisterTab(draft, testClient())

	model, _ := tab.Update(registeredMsg{err: fmt.Errorf("name taken")})
	tab = model.(*RegisterTab)

	if tab.GetState() != ui.TabError {
		t.Errorf("expected TabError, got %v", tab.GetState())
	}

	view := tab.View()
	if !strings.Contains(view, "name taken") {
		t.Errorf("error view should show the cause, got %q", view)
	}
}

func TestRegisterTab_RetryAfterError(t *testing.T) {
	draft := &repo.Draft{Name: "nightly", Type: repo.TypeFS, Settings: map[string]any{}}
	tab := NewRegisterTab(draft, testClient())

	model, _ := tab.Update(registeredMsg{err: fmt.Errorf("boom")})
	tab = model.(*RegisterTab)

	// 'r' restarts the registration
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	model, cmd := tab.Update(msg)
	tab = model.(*RegisterTab)

	if cmd == nil {
		t.Error("retry should return a command")
	}
	if tab.complete || tab.err != nil {
		t.Error("retry should reset the error state")
	}
}

func TestRegisterTab_ViewShowsVerifyOutcome(t *testing.T) {
	draft := &repo.Draft{Name: "archive", Type: repo.TypeS3, SourceOnly: true, Settings: map[string]any{}}
	tab := NewRegisterTab(draft, testClient())

	model, _ := tab.Update(registeredMsg{verify: &registry.VerifyResult{Verified: true}})
	tab = model.(*RegisterTab)

	view := tab.View()
	if !strings.Contains(view, "archive") {
		t.Errorf("success view should show the name, got %q", view)
	}
	if !strings.Contains(view, "source-only") {
		t.Errorf("success view should flag source-only, got %q", view)
	}
	if !strings.Contains(view, "Verified") {
		t.Errorf("success view should show the verify outcome, got %q", view)
	}
}

func TestRegisterTab_QuitAfterSuccess(t *testing.T) {
	draft := &repo.Draft{Name: "nightly", Type: repo.TypeFS, Settings: map[string]any{}}
	tab := NewRegisterTab(draft, testClient())

	model, _ := tab.Update(registeredMsg{})
	tab = model.(*RegisterTab)

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := tab.Update(msg)

	if cmd == nil {
		t.Error("enter on the success screen should quit")
	}
}
