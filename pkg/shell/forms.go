package shell

import (
	"errors"
	"fmt"
	"html"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/marcus/dash/pkg/shell/keymap"
	"github.com/microcosm-cc/bluemonday"
)

var (
	errNameRequired     = errors.New("name is required")
	errQuestionRequired = errors.New("please enter your question before submitting")
	errProjectRequired  = errors.New("please fill in the repository name and project name")
)

// sanitizer strips markup from free text before it is stored or echoed
var sanitizer = bluemonday.StrictPolicy()

// sanitize removes tags and surrounding whitespace from user input. The
// policy escapes entities for HTML, so they are decoded back for the terminal.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(s)))
}

// FormKind identifies a modal form
type FormKind string

const (
	FormProfile  FormKind = "profile"
	FormQuestion FormKind = "question"
	FormProject  FormKind = "project"
)

// FormState holds a modal form and its bound values
type FormState struct {
	Kind FormKind
	Form *huh.Form

	// Profile
	Name  string
	Email string

	// Question
	Question string

	// Project
	Repository string
	Project    string
	Token      string
}

// NewFormState creates an empty form of kind
func NewFormState(kind FormKind) *FormState {
	fs := &FormState{Kind: kind}
	fs.buildForm()
	return fs
}

// NewProfileForm creates the profile edit form prefilled with name and email
func NewProfileForm(name, email string) *FormState {
	fs := &FormState{Kind: FormProfile, Name: name, Email: email}
	fs.buildForm()
	return fs
}

func (fs *FormState) buildForm() {
	var group *huh.Group
	switch fs.Kind {
	case FormProfile:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Full Name").
				Value(&fs.Name).
				Validate(func(s string) error {
					if sanitize(s) == "" {
						return errNameRequired
					}
					return nil
				}),
			huh.NewInput().
				Title("Email Address").
				Value(&fs.Email),
		).Title("Personal Information").
			Description("Update your personal details and contact information")
	case FormQuestion:
		group = huh.NewGroup(
			huh.NewText().
				Title("Your Question").
				Value(&fs.Question).
				Placeholder("Describe what you need help with...").
				Lines(5),
		).Title("Ask a Question").
			Description("Get help from our support team")
	case FormProject:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Repository Name").
				Value(&fs.Repository).
				Placeholder("my-awesome-repo"),
			huh.NewInput().
				Title("Project Name").
				Value(&fs.Project).
				Placeholder("My Awesome Project"),
			huh.NewInput().
				Title("GitHub Token").
				Description("Optional").
				Value(&fs.Token).
				EchoMode(huh.EchoModePassword).
				Placeholder("ghp_..."),
		).Title("Create Project").
			Description("Set up a new project from a repository")
	}

	fs.Form = huh.NewForm(group).
		WithTheme(huh.ThemeDracula()).
		WithShowHelp(false)
}

// openForm shows fs as a modal
func (m *Model) openForm(fs *FormState) tea.Cmd {
	m.Form = fs
	m.Overlay = OverlayForm
	return fs.Form.Init()
}

// closeForm discards the modal form
func (m *Model) closeForm() {
	m.Form = nil
	m.Overlay = OverlayNone
}

// handleFormUpdate handles all messages while a modal form is open
func (m Model) handleFormUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if cmd, found := m.Keymap.Lookup(keyMsg, keymap.ContextForm); found {
			return m.executeCommand(cmd)
		}
	}

	form, cmd := m.Form.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form.Form = f
	}

	switch m.Form.Form.State {
	case huh.StateCompleted:
		submit := m.submitForm()
		return m, tea.Batch(cmd, submit)
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

// submitForm applies the completed modal form
func (m *Model) submitForm() tea.Cmd {
	fs := m.Form
	switch fs.Kind {
	case FormProfile:
		name, email := sanitize(fs.Name), sanitize(fs.Email)
		if err := m.Session.UpdateProfile(name, email); err != nil {
			m.closeForm()
			return m.setStatus("Profile update failed: "+err.Error(), true)
		}
		m.closeForm()
		return m.setStatus("Profile updated. Your profile has been updated successfully.", false)

	case FormQuestion:
		text := sanitize(fs.Question)
		if text == "" {
			fs.buildForm()
			return tea.Batch(m.setStatus("Question required: "+errQuestionRequired.Error(), true), fs.Form.Init())
		}
		m.Questions = append(m.Questions, Question{Text: text, At: m.Now()})
		m.closeForm()
		return m.setStatus("Question submitted. We'll get back to you soon!", false)

	case FormProject:
		repo, project := sanitize(fs.Repository), sanitize(fs.Project)
		if repo == "" || project == "" {
			fs.buildForm()
			return tea.Batch(m.setStatus("Required fields missing: "+errProjectRequired.Error(), true), fs.Form.Init())
		}
		m.Projects = append(m.Projects, Project{
			Repository: repo,
			Name:       project,
			HasToken:   strings.TrimSpace(fs.Token) != "",
			At:         m.Now(),
		})
		m.closeForm()
		return m.setStatus(fmt.Sprintf("Creating project %q with repository %q...", project, repo), false)
	}
	m.closeForm()
	return nil
}
