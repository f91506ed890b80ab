// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/snapvault/snapctl/pkg/config"
	"github.com/snapvault/snapctl/pkg/registry"
	repo "github.com/snapvault/snapctl/pkg/repository"
	"github.com/snapvault/snapctl/pkg/ui"
)

// WizardModel orchestrates the repository creation tabs
type WizardModel struct {
	width  int
	height int

	tabs      []ui.Tab
	activeTab int
	draft     *repo.Draft
	client    *registry.Client
	quitting  bool
	err       error

	// Tab instances - stored separately since they're different types
	settingsTab *SettingsTab
	detailsTab  *DetailsTab
	registerTab *RegisterTab
}

// NewWizardModel creates the repository creation wizard. The client talks to
// the daemon for the type catalog, name collisions and registration.
func NewWizardModel(client *registry.Client) WizardModel {
	// Create tab metadata
	tabs := []ui.Tab{
		{Title: "Settings", State: ui.TabActive},
		{Title: "Details", State: ui.TabPending},
		{Title: "Register", State: ui.TabPending},
	}

	// Initialize spinners for each tab
	for i := range tabs {
		s := spinner.New()
		s.Spinner = spinner.Dot
		s.Style = lipgloss.NewStyle().Foreground(config.CurrentTheme.GetSecondaryColor())
		tabs[i].Spinner = s
	}

	// Draft is stored as a pointer so tabs always see the latest values.
	// Pre-select the configured default type, if any.
	draft := &repo.Draft{
		Type:     config.GetDefaultRepositoryType(),
		Settings: map[string]any{},
	}

	return WizardModel{
		tabs:        tabs,
		activeTab:   0,
		draft:       draft,
		client:      client,
		settingsTab: NewSettingsTab(draft, client),
		detailsTab:  NewDetailsTab(draft),
		registerTab: NewRegisterTab(draft, client),
	}
}

// Init implements tea.Model
func (m WizardModel) Init() tea.Cmd {
	return m.settingsTab.Init()
}

// Update implements tea.Model
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log.Debugf("wizard.Update: msg=%T activeTab=%d w=%d h=%d", msg, m.activeTab, m.width, m.height)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Forward to all tabs, collecting any commands they return
		var cmds []tea.Cmd
		var cmd tea.Cmd

		m.settingsTab, cmd = m.settingsTab.Update(msg)
		cmds = append(cmds, cmd)
		m.detailsTab, cmd = m.detailsTab.Update(msg)
		cmds = append(cmds, cmd)
		var model tea.Model
		model, cmd = m.registerTab.Update(msg)
		m.registerTab = model.(*RegisterTab)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		// Only allow quitting from final tab when complete
		if m.activeTab == 2 && m.tabs[2].State == ui.TabComplete &&
			ui.SummaryKeyBindings().Contains(msg.String()) != nil {
			m.quitting = true
			return m, tea.Quit
		}

		// Allow Ctrl+C to quit anytime
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case DraftUpdateMsg:
		// Apply the patch in place so every tab sees the merged draft
		*m.draft = msg.Patch.Apply(*m.draft)
		return m, nil

	case TabCompleteMsg:
		// Mark tab as complete
		m.tabs[msg.TabIndex].State = ui.TabComplete
		log.Debugf("wizard.TabCompleteMsg: tabIndex=%d advancing to %d", msg.TabIndex, msg.TabIndex+1)

		// Advance to next tab if not at the end
		if msg.TabIndex < len(m.tabs)-1 {
			m.activeTab = msg.TabIndex + 1
			m.tabs[m.activeTab].State = ui.TabActive

			// Initialize the next tab against the latest draft
			var initCmd tea.Cmd
			switch m.activeTab {
			case 1:
				m.detailsTab = NewDetailsTab(m.draft)
				initCmd = m.detailsTab.Init()
			case 2:
				m.registerTab = NewRegisterTab(m.draft, m.client)
				initCmd = m.registerTab.Init()
			}

			return m, initCmd
		}
		return m, nil

	case TabErrorMsg:
		// Mark tab as error
		m.tabs[msg.TabIndex].State = ui.TabError
		m.err = msg.Error
		return m, nil
	}

	// Delegate to active tab
	var cmd tea.Cmd
	switch m.activeTab {
	case 0:
		m.settingsTab, cmd = m.settingsTab.Update(msg)
	case 1:
		m.detailsTab, cmd = m.detailsTab.Update(msg)
	case 2:
		var model tea.Model
		model, cmd = m.registerTab.Update(msg)
		m.registerTab = model.(*RegisterTab)
	}

	// Sync tab strip state with the active tab model
	activeTabModel := m.getActiveTabModel()
	if activeTabModel != nil {
		m.tabs[m.activeTab].State = activeTabModel.GetState()
		m.tabs[m.activeTab].Busy = activeTabModel.IsBusy()
	}

	return m, cmd
}

// View implements tea.Model
func (m WizardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	// Render tabs
	tabsCfg := ui.TabsConfig{
		ActiveIndex: m.activeTab,
		Width:       m.width,
	}
	tabsView := ui.RenderTabs(m.tabs, tabsCfg)

	// Render active tab content
	contentHeight := m.height - 5 // Account for tabs, footer and padding
	var activeContent string
	switch m.activeTab {
	case 0:
		activeContent = m.settingsTab.View()
	case 1:
		activeContent = m.detailsTab.View()
	case 2:
		activeContent = m.registerTab.View()
	}

	content := ui.RenderTabContent(
		activeContent,
		m.width-2,
		contentHeight,
	)

	// Footer shows the bindings for the current step
	bindings := ui.WizardKeyBindings()
	if m.activeTab == 2 && m.tabs[2].State == ui.TabComplete {
		bindings = ui.SummaryKeyBindings()
	}
	footer := bindings.Render(config.CurrentTheme.SubtleStyle())

	// Stack vertically and fill the terminal to avoid gaps
	return ui.FillTerminal(
		lipgloss.JoinVertical(
			lipgloss.Left,
			tabsView,
			content,
			footer,
		),
		m.width,
		m.height,
	)
}

// getActiveTabModel returns the active tab model for state checking
func (m WizardModel) getActiveTabModel() interface {
	GetState() ui.TabState
	IsBusy() bool
} {
	switch m.activeTab {
	case 0:
		return m.settingsTab
	case 1:
		return m.detailsTab
	case 2:
		return m.registerTab
	default:
		return nil
	}
}
