// SPDX-License-Identifier: Apache-2.0
package repository

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/snapvault/snapctl/pkg/config"
	repo "github.com/snapvault/snapctl/pkg/repository"
	"github.com/snapvault/snapctl/pkg/ui"
)

// DetailsTab collects the type-specific settings for the chosen repository
// type. Each type has its own small form; the collected values replace the
// draft's settings map wholesale.
type DetailsTab struct {
	width, height int
	draft         *repo.Draft

	form         *huh.Form
	formComplete bool

	// Form-bound values, one set per repository type
	location  string
	compress  bool
	url       string
	bucket    string
	basePath  string
	container string
	uri       string
	path      string
}

// NewDetailsTab creates the details tab bound to the shared draft
func NewDetailsTab(draft *repo.Draft) *DetailsTab {
	return &DetailsTab{draft: draft}
}

// Init implements TabModel interface
func (t *DetailsTab) Init() tea.Cmd {
	t.seedFromDraft()
	t.form = t.buildForm()
	return t.form.Init()
}

// seedFromDraft pre-fills form values from the draft settings so going back
// and forth through the wizard keeps prior answers
func (t *DetailsTab) seedFromDraft() {
	s := t.draft.Settings

	str := func(key string) string {
		v, _ := s[key].(string)
		return v
	}

	t.location = str("location")
	t.url = str("url")
	t.bucket = str("bucket")
	t.basePath = str("base_path")
	t.container = str("container")
	t.uri = str("uri")
	t.path = str("path")

	t.compress = true
	if v, ok := s["compress"].(bool); ok {
		t.compress = v
	}
}

// buildForm returns the settings form for the draft's effective type
func (t *DetailsTab) buildForm() *huh.Form {
	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New(field + " is required")
			}
			return nil
		}
	}

	var fields []huh.Field

	switch repo.EffectiveType(*t.draft) {
	case repo.TypeFS:
		fields = []huh.Field{
			huh.NewInput().
				Title("Location").
				Description("Path to the shared filesystem mount, identical on every node").
				Value(&t.location).
				Validate(required("location")),
			huh.NewConfirm().
				Title("Compress Metadata").
				Description("Compress the repository's metadata files on write").
				Affirmative("Yes").
				Negative("No").
				Value(&t.compress),
		}

	case repo.TypeURL:
		fields = []huh.Field{
			huh.NewInput().
				Title("URL").
				Description("Read-only root URL of an existing fs repository").
				Value(&t.url).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("url is required")
					}
					for _, scheme := range []string{"http://", "https://", "ftp://", "file:"} {
						if strings.HasPrefix(s, scheme) {
							return nil
						}
					}
					return errors.New("url must use the http, https, ftp or file scheme")
				}),
		}

	case repo.TypeS3:
		fields = []huh.Field{
			huh.NewInput().
				Title("Bucket").
				Description("Name of the S3 bucket").
				Value(&t.bucket).
				Validate(required("bucket")),
			huh.NewInput().
				Title("Base Path").
				Description("Key prefix inside the bucket (optional)").
				Value(&t.basePath),
		}

	case repo.TypeGCS:
		fields = []huh.Field{
			huh.NewInput().
				Title("Bucket").
				Description("Name of the Cloud Storage bucket").
				Value(&t.bucket).
				Validate(required("bucket")),
			huh.NewInput().
				Title("Base Path").
				Description("Object prefix inside the bucket (optional)").
				Value(&t.basePath),
		}

	case repo.TypeAzure:
		fields = []huh.Field{
			huh.NewInput().
				Title("Container").
				Description("Name of the blob container").
				Value(&t.container).
				Validate(required("container")),
			huh.NewInput().
				Title("Base Path").
				Description("Blob prefix inside the container (optional)").
				Value(&t.basePath),
		}

	case repo.TypeHDFS:
		fields = []huh.Field{
			huh.NewInput().
				Title("URI").
				Description("Namenode address, e.g. hdfs://namenode:8020").
				Value(&t.uri).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("uri is required")
					}
					if !strings.HasPrefix(s, "hdfs://") {
						return errors.New("uri must use the hdfs:// scheme")
					}
					return nil
				}),
			huh.NewInput().
				Title("Path").
				Description("Directory inside the cluster filesystem").
				Value(&t.path).
				Validate(required("path")),
		}

	default:
		// Unknown type from the catalog: nothing to collect
		fields = []huh.Field{
			huh.NewNote().
				Title("No Settings").
				Description("This repository type has no settings to configure. Continue to register."),
		}
	}

	return huh.NewForm(huh.NewGroup(fields...))
}

// collectSettings builds the settings document for the chosen type
func (t *DetailsTab) collectSettings() map[string]any {
	s := map[string]any{}

	setStr := func(key, val string) {
		if strings.TrimSpace(val) != "" {
			s[key] = val
		}
	}

	switch repo.EffectiveType(*t.draft) {
	case repo.TypeFS:
		setStr("location", t.location)
		s["compress"] = t.compress
	case repo.TypeURL:
		setStr("url", t.url)
	case repo.TypeS3, repo.TypeGCS:
		setStr("bucket", t.bucket)
		setStr("base_path", t.basePath)
	case repo.TypeAzure:
		setStr("container", t.container)
		setStr("base_path", t.basePath)
	case repo.TypeHDFS:
		setStr("uri", t.uri)
		setStr("path", t.path)
	}

	return s
}

// Update implements TabModel interface
func (t *DetailsTab) Update(msg tea.Msg) (*DetailsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		if t.form != nil {
			t.form.WithWidth(msg.Width)
		}
		return t, nil
	}

	// Delegate to form.Update() for all input handling
	var cmd tea.Cmd
	if t.form != nil {
		form, formCmd := t.form.Update(msg)
		t.form = form.(*huh.Form)
		cmd = formCmd
	}

	// Check if form completed
	if t.form != nil && t.form.State == huh.StateCompleted && !t.formComplete {
		t.formComplete = true

		patch := repo.Patch{Settings: t.collectSettings()}
		return t, tea.Batch(
			func() tea.Msg { return DraftUpdateMsg{Patch: patch} },
			func() tea.Msg { return TabCompleteMsg{TabIndex: 1} },
			cmd,
		)
	}

	return t, cmd
}

// View implements TabModel interface
func (t *DetailsTab) View() string {
	if t.form == nil {
		return ""
	}

	theme := config.CurrentTheme
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.GetPrimaryColor()).
		Render(typeLabel(repo.EffectiveType(*t.draft)) + " Settings")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		t.form.View(),
	)
}

// IsComplete implements TabModel interface
func (t *DetailsTab) IsComplete() bool {
	return t.formComplete
}

// IsBusy implements TabModel interface
func (t *DetailsTab) IsBusy() bool {
	return false
}

// GetState implements TabModel interface
func (t *DetailsTab) GetState() ui.TabState {
	if t.formComplete {
		return ui.TabComplete
	}
	return ui.TabActive
}
