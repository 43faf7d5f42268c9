// Package session implements the simulated authentication flow. Every
// operation succeeds after an artificial delay unless it is rejected by the
// in-flight guard, cancelled through its context, or overtaken by a logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/prefs"
)

// ErrBusy is reported when a mutating call arrives while another is pending
var ErrBusy = errors.New("another session operation is in progress")

// ErrSuperseded is reported when a logout lands while an operation is pending
var ErrSuperseded = errors.New("session changed while the request was pending")

// Result is the outcome of a session operation. Failures are values, never panics.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func succeeded() Result { return Result{Success: true} }

func failed(msg string) Result { return Result{Error: msg} }

// Provider is a third-party identity provider
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

// Providers lists the supported providers
var Providers = []Provider{ProviderGoogle, ProviderGitHub}

// Label returns the display name of p
func (p Provider) Label() string {
	switch p {
	case ProviderGoogle:
		return "Google"
	case ProviderGitHub:
		return "GitHub"
	}
	return string(p)
}

// Delays holds the simulated latency of each operation
type Delays struct {
	Login    time.Duration
	Register time.Duration
	Provider time.Duration
	Recover  time.Duration
}

// DefaultDelays returns the latencies of the original flows
func DefaultDelays() Delays {
	return Delays{
		Login:    time.Second,
		Register: time.Second,
		Provider: 1500 * time.Millisecond,
		Recover:  time.Second,
	}
}

// Scale multiplies every delay by f
func (d Delays) Scale(f float64) Delays {
	mul := func(v time.Duration) time.Duration { return time.Duration(float64(v) * f) }
	return Delays{
		Login:    mul(d.Login),
		Register: mul(d.Register),
		Provider: mul(d.Provider),
		Recover:  mul(d.Recover),
	}
}

// Recorder receives an event for every completed transition
type Recorder interface {
	RecordSessionEvent(ev models.SessionEvent) error
}

// Observer is told the outcome of each operation (metrics hook)
type Observer func(op models.EventKind, success bool)

// Manager owns the "auth" preference and performs session transitions
type Manager struct {
	auth     *prefs.Preference[models.AuthState]
	delays   Delays
	recorder Recorder
	observe  Observer
	logger   *slog.Logger

	inFlight   atomic.Bool
	generation atomic.Int64
}

// Option configures a Manager
type Option func(*Manager)

// WithDelays overrides the simulated latencies
func WithDelays(d Delays) Option {
	return func(m *Manager) { m.delays = d }
}

// WithRecorder logs transitions to r
func WithRecorder(r Recorder) Option {
	return func(m *Manager) { m.recorder = r }
}

// WithObserver reports operation outcomes to fn
func WithObserver(fn Observer) Option {
	return func(m *Manager) { m.observe = fn }
}

// WithLogger sets the logger (default slog.Default())
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a session manager persisting to auth
func NewManager(auth *prefs.Preference[models.AuthState], opts ...Option) *Manager {
	m := &Manager{
		auth:    auth,
		delays:  DefaultDelays(),
		observe: func(models.EventKind, bool) {},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current session
func (m *Manager) State() models.AuthState {
	return m.auth.Get()
}

// IsAuthenticated reports whether a user is signed in
func (m *Manager) IsAuthenticated() bool {
	return m.auth.Get().IsAuthenticated
}

// User returns the signed-in user, or nil
func (m *Manager) User() *models.User {
	return m.auth.Get().User
}

// Pending reports whether an operation is awaiting its delay
func (m *Manager) Pending() bool {
	return m.inFlight.Load()
}

// Login signs in as a synthetic user derived from email. The password is not checked.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	return m.run(ctx, models.EventLogin, m.delays.Login, "Invalid credentials", email, func() models.AuthState {
		return models.Authenticated(userFromEmail(email, ""))
	})
}

// Register creates and signs in a synthetic user named name
func (m *Manager) Register(ctx context.Context, email, password, name string) Result {
	return m.run(ctx, models.EventRegister, m.delays.Register, "Registration failed", email, func() models.AuthState {
		return models.Authenticated(userFromEmail(email, name))
	})
}

// LoginWithProvider signs in as the fixed identity of provider
func (m *Manager) LoginWithProvider(ctx context.Context, provider Provider) Result {
	user, ok := providerUser(provider)
	if !ok {
		m.observe(models.EventProviderLogin, false)
		return failed(fmt.Sprintf("unknown provider %q", provider))
	}
	failure := provider.Label() + " login failed"
	return m.run(ctx, models.EventProviderLogin, m.delays.Provider, failure, user.Email, func() models.AuthState {
		return models.Authenticated(user)
	})
}

// RecoverPassword pretends to send a reset email. The session is untouched.
func (m *Manager) RecoverPassword(ctx context.Context, email string) Result {
	return m.run(ctx, models.EventRecover, m.delays.Recover, "Failed to send reset email", email, nil)
}

// ErrNotSignedIn is returned by profile edits on an anonymous session
var ErrNotSignedIn = errors.New("not signed in")

// UpdateProfile replaces the display name and email of the signed-in user.
// The user ID is kept; the avatar follows the new name.
func (m *Manager) UpdateProfile(name, email string) error {
	st := m.auth.Get()
	if st.User == nil {
		return ErrNotSignedIn
	}
	u := *st.User
	if name != "" && name != u.Name {
		u.Name = name
		u.Avatar = avatarURL(name, avatarBackground(u.Avatar))
	}
	if email != "" {
		u.Email = email
	}
	m.auth.Set(models.Authenticated(u))
	m.logger.Info("session: profile updated", "email", u.Email)
	return nil
}

// avatarBackground extracts the background parameter of an avatar URL
func avatarBackground(avatar string) string {
	if parsed, err := url.Parse(avatar); err == nil {
		if bg := parsed.Query().Get("background"); bg != "" {
			return bg
		}
	}
	return "3b82f6"
}

// Logout clears the session immediately. Any pending operation is superseded.
func (m *Manager) Logout() {
	var email string
	if u := m.User(); u != nil {
		email = u.Email
	}
	m.generation.Add(1)
	m.auth.Set(models.Anonymous())
	m.record(models.EventLogout, email)
	m.observe(models.EventLogout, true)
	m.logger.Info("session: logout", "email", email)
}

// run serializes one delayed operation. apply, when non-nil, produces the
// state written on success; it is applied in a single Set.
func (m *Manager) run(ctx context.Context, kind models.EventKind, delay time.Duration, failure, email string, apply func() models.AuthState) Result {
	if !m.inFlight.CompareAndSwap(false, true) {
		m.observe(kind, false)
		return failed(ErrBusy.Error())
	}
	defer m.inFlight.Store(false)

	gen := m.generation.Load()
	if err := wait(ctx, delay); err != nil {
		m.logger.Debug("session: operation abandoned", "op", kind, "err", err)
		m.observe(kind, false)
		return failed(fmt.Sprintf("%s: %v", failure, err))
	}
	if m.generation.Load() != gen {
		m.observe(kind, false)
		return failed(ErrSuperseded.Error())
	}

	if apply != nil {
		m.auth.Set(apply())
	}
	m.record(kind, email)
	m.observe(kind, true)
	m.logger.Info("session: "+string(kind), "email", email)
	return succeeded()
}

func (m *Manager) record(kind models.EventKind, email string) {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.RecordSessionEvent(models.SessionEvent{Kind: kind, Email: email}); err != nil {
		m.logger.Debug("session: record event", "op", kind, "err", err)
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// userFromEmail builds the deterministic synthetic user for email. An empty
// name defaults to the local part of the address.
func userFromEmail(email, name string) models.User {
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return models.User{
		ID:     UserID(email),
		Email:  email,
		Name:   name,
		Avatar: avatarURL(name, "3b82f6"),
	}
}

func providerUser(p Provider) (models.User, bool) {
	var email, name, bg string
	switch p {
	case ProviderGoogle:
		email, name, bg = "user@gmail.com", "Google User", "ea4335"
	case ProviderGitHub:
		email, name, bg = "user@github.com", "GitHub User", "24292e"
	default:
		return models.User{}, false
	}
	return models.User{ID: UserID(email), Email: email, Name: name, Avatar: avatarURL(name, bg)}, true
}

// UserID derives a stable identifier from an email address
func UserID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email))).String()
}

func avatarURL(name, background string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=" + background + "&color=fff"
}
