package shell

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/router"
	"github.com/marcus/dash/internal/session"
)

const minPasswordLength = 6

var (
	errFieldsRequired   = errors.New("please fill in all fields")
	errEmailRequired    = errors.New("please enter your email address")
	errPasswordMismatch = errors.New("passwords do not match")
	errPasswordTooShort = errors.New("password must be at least 6 characters long")
)

// AuthForm is the state of the login, register and forgot-password pages
type AuthForm struct {
	Page router.Page
	Form *huh.Form

	Name     string
	Email    string
	Password string
	Confirm  string

	// Sent is set once a reset email went out; SentTo is its address
	Sent   bool
	SentTo string
}

// NewAuthForm returns the empty form for one of the sign-in pages
func NewAuthForm(page router.Page) *AuthForm {
	a := &AuthForm{Page: page}
	a.buildForm()
	return a
}

// rebuild restarts the form after a rejected submit, keeping entered values
func (a *AuthForm) rebuild() {
	a.buildForm()
}

func (a *AuthForm) buildForm() {
	email := huh.NewInput().
		Title("Email").
		Value(&a.Email).
		Placeholder("Enter your email")
	password := huh.NewInput().
		Title("Password").
		Value(&a.Password).
		EchoMode(huh.EchoModePassword).
		Placeholder("Enter your password")

	var group *huh.Group
	switch a.Page {
	case router.PageRegister:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Full Name").
				Value(&a.Name).
				Placeholder("Enter your full name"),
			email,
			password,
			huh.NewInput().
				Title("Confirm Password").
				Value(&a.Confirm).
				EchoMode(huh.EchoModePassword).
				Placeholder("Confirm your password"),
		).Title("Create an account").
			Description("Enter your details to get started")
	case router.PageForgotPassword:
		group = huh.NewGroup(
			email.Placeholder("Enter your email address"),
		).Title("Forgot password?").
			Description("Enter your email and we'll send you a reset link")
	default:
		group = huh.NewGroup(email, password).
			Title("Welcome back").
			Description("Sign in to your account to continue")
	}

	a.Form = huh.NewForm(group).
		WithTheme(huh.ThemeDracula()).
		WithShowHelp(false)
}

// validate checks the entered values for the page
func (a *AuthForm) validate() error {
	switch a.Page {
	case router.PageRegister:
		return ValidateRegistration(a.Name, a.Email, a.Password, a.Confirm)
	case router.PageForgotPassword:
		return ValidateRecovery(a.Email)
	default:
		return ValidateLogin(a.Email, a.Password)
	}
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// ValidateLogin checks the sign-in fields
func ValidateLogin(email, password string) error {
	if blank(email, password) {
		return errFieldsRequired
	}
	return nil
}

// ValidateRegistration checks the sign-up fields: all required, matching
// passwords of at least six characters.
func ValidateRegistration(name, email, password, confirm string) error {
	switch {
	case blank(name, email, password, confirm):
		return errFieldsRequired
	case password != confirm:
		return errPasswordMismatch
	case len(password) < minPasswordLength:
		return errPasswordTooShort
	}
	return nil
}

// ValidateRecovery checks the password reset field
func ValidateRecovery(email string) error {
	if blank(email) {
		return errEmailRequired
	}
	return nil
}

// validationTitle is the notification heading for a rejected form
func validationTitle(err error) string {
	switch {
	case errors.Is(err, errPasswordMismatch):
		return "Password mismatch"
	case errors.Is(err, errPasswordTooShort):
		return "Weak password"
	default:
		return "Validation error"
	}
}

// submitAuth validates the completed sign-in form and starts the session
// operation it asks for.
func (m *Model) submitAuth() tea.Cmd {
	a := m.Auth
	if err := a.validate(); err != nil {
		a.rebuild()
		return tea.Batch(m.setStatus(validationTitle(err)+": "+err.Error(), true), a.Form.Init())
	}

	email := strings.TrimSpace(a.Email)
	password := a.Password
	switch a.Page {
	case router.PageRegister:
		name := strings.TrimSpace(a.Name)
		return m.startSession(models.EventRegister, email, "", func(ctx context.Context) session.Result {
			return m.Session.Register(ctx, email, password, name)
		})
	case router.PageForgotPassword:
		return m.startSession(models.EventRecover, email, "", func(ctx context.Context) session.Result {
			return m.Session.RecoverPassword(ctx, email)
		})
	default:
		return m.startSession(models.EventLogin, email, "", func(ctx context.Context) session.Result {
			return m.Session.Login(ctx, email, password)
		})
	}
}

// providerLogin starts a sign-in through provider from any sign-in page
func (m *Model) providerLogin(provider session.Provider) tea.Cmd {
	if m.Pending != "" {
		return nil
	}
	return m.startSession(models.EventProviderLogin, "", provider, func(ctx context.Context) session.Result {
		return m.Session.LoginWithProvider(ctx, provider)
	})
}
