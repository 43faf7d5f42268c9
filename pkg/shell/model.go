// Package shell is the interactive dashboard: top bar, collapsible sidebar,
// routed page content and modal forms on top of the session, preference and
// navigation models.
package shell

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/marcus/dash/internal/menu"
	"github.com/marcus/dash/internal/metrics"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/nav"
	"github.com/marcus/dash/internal/prefs"
	"github.com/marcus/dash/internal/router"
	"github.com/marcus/dash/internal/session"
	"github.com/marcus/dash/pkg/shell/keymap"
)

const (
	statusTimeout = 3 * time.Second
	historyLimit  = 50
	activityLimit = 20
)

// EventSource lists recorded session transitions for the activity page
type EventSource interface {
	RecentSessionEvents(limit int) ([]models.SessionEvent, error)
}

// Options configures NewModel. Prefs and Session are required.
type Options struct {
	Nav     *nav.Model
	Router  *router.Router
	Prefs   *prefs.Set
	Session *session.Manager
	Metrics metrics.Recorder
	Keymap  *keymap.Registry
	Events  EventSource
	Logger  *slog.Logger

	StartPath  string
	SystemDark bool // terminal background, consulted by the system theme

	// ClipboardFn copies text; nil uses the system clipboard
	ClipboardFn func(string) error
	// Now is the clock used for greetings and timestamps; nil uses time.Now
	Now func() time.Time
}

// Model is the Bubble Tea model of the shell
type Model struct {
	Nav     *nav.Model
	Router  *router.Router
	Prefs   *prefs.Set
	Session *session.Manager
	Metrics metrics.Recorder
	Keymap  *keymap.Registry
	Events  EventSource
	Logger  *slog.Logger

	SystemDark  bool
	ClipboardFn func(string) error
	Now         func() time.Time

	Width  int
	Height int

	// Route
	Path    string
	Route   router.Route
	History []string

	// Sidebar
	Expansion     *menu.Expansion
	Focus         Focus
	SidebarCursor int

	// Content
	ContentCursor int
	Overlay       Overlay
	PickerCursor  int

	// Page search
	SearchInput   textinput.Model
	SearchMatches []nav.MenuItem
	SearchCursor  int

	// Tables page
	Table       Table
	FilterInput textinput.Model
	Filtering   bool

	// Forms
	Auth *AuthForm
	Form *FormState

	// Ask-questions submissions, newest last
	Questions []Question
	Projects  []Project

	// Activity page
	Activity    []models.SessionEvent
	ActivityErr error

	// Pending session operation; empty when idle
	Pending       models.EventKind
	cancelPending context.CancelFunc
	Spinner       spinner.Model

	StatusMessage string
	StatusIsError bool
	statusSeq     int

	markdown map[string]string
}

// NewModel builds the shell and resolves the start path against the current
// session.
func NewModel(opts Options) Model {
	if opts.Nav == nil {
		opts.Nav = nav.Default()
	}
	if opts.Router == nil {
		opts.Router = router.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop{}
	}
	if opts.Keymap == nil {
		opts.Keymap = keymap.NewRegistry()
		keymap.RegisterDefaults(opts.Keymap)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	search := textinput.New()
	search.Placeholder = "Search pages..."
	search.Prompt = "⌕ "
	search.CharLimit = 64

	filter := textinput.New()
	filter.Placeholder = "Filter rows..."
	filter.Prompt = "/ "
	filter.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	start := router.Clean(opts.StartPath)
	m := Model{
		Nav:         opts.Nav,
		Router:      opts.Router,
		Prefs:       opts.Prefs,
		Session:     opts.Session,
		Metrics:     opts.Metrics,
		Keymap:      opts.Keymap,
		Events:      opts.Events,
		Logger:      opts.Logger,
		SystemDark:  opts.SystemDark,
		ClipboardFn: opts.ClipboardFn,
		Now:         opts.Now,
		Expansion:   menu.NewExpansion(opts.Nav.Sections, start),
		Focus:       FocusSidebar,
		SearchInput: search,
		FilterInput: filter,
		Spinner:     sp,
		markdown:    make(map[string]string),
	}
	m.navigateTo(start, false)
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.pageCmd()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.markdown = make(map[string]string)
		return m.forwardToForms(msg)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMessage = ""
			m.StatusIsError = false
		}
		return m, nil

	case SessionResultMsg:
		return m.handleSessionResult(msg)

	case EventsMsg:
		m.Activity, m.ActivityErr = msg.Events, msg.Err
		m.clampContentCursor()
		return m, nil

	case spinner.TickMsg:
		if m.Pending == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	// Modal form: every message belongs to the huh form
	if m.Overlay == OverlayForm && m.Form != nil {
		return m.handleFormUpdate(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}
	return m.forwardToForms(msg)
}

// forwardToForms hands non-key messages (field focus, cursor blink, resize)
// to whichever input widget is live.
func (m Model) forwardToForms(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.Form != nil && m.Overlay == OverlayForm {
		return m.handleFormUpdate(msg)
	}
	if m.Auth != nil && m.isAuthPage() {
		mm, cmd := m.updateAuthForm(msg)
		m = mm
		cmds = append(cmds, cmd)
	}
	if m.Overlay == OverlaySearch {
		var cmd tea.Cmd
		m.SearchInput, cmd = m.SearchInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.Filtering {
		var cmd tea.Cmd
		m.FilterInput, cmd = m.FilterInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// navigateTo resolves path through the route guards and makes the result the
// current page. Redirects replace the requested path: only the page being
// left is pushed onto the history.
func (m *Model) navigateTo(path string, push bool) tea.Cmd {
	res := m.Router.Resolve(path, m.Session.IsAuthenticated())
	if res.Redirected {
		m.Metrics.RecordRedirect(res.Guard)
		m.Logger.Debug("guard redirect", "from", res.Requested, "to", res.Path, "guard", res.Guard.String())
	}
	if res.NotFound {
		m.Metrics.RecordNotFound()
		m.Logger.Warn("no route for path", "path", res.Path)
	}
	m.Metrics.RecordNavigation(res.Page)

	changed := res.Path != m.Path || res.Route.Page != m.Route.Page
	if changed && push && m.Path != "" {
		m.History = append(m.History, m.Path)
		if len(m.History) > historyLimit {
			m.History = m.History[len(m.History)-historyLimit:]
		}
	}
	m.Path, m.Route = res.Path, res.Route
	m.Expansion.Sync(m.Nav.Sections, m.Path)
	m.syncSidebarCursor()

	if !changed {
		return nil
	}
	m.ContentCursor = 0
	m.Filtering = false
	m.FilterInput.Blur()
	m.enterPage()
	return m.pageCmd()
}

// navigate is a user-initiated move to path
func (m *Model) navigate(path string) tea.Cmd {
	return m.navigateTo(path, true)
}

// back returns to the previous page, if any
func (m *Model) back() tea.Cmd {
	if len(m.History) == 0 {
		return nil
	}
	prev := m.History[len(m.History)-1]
	m.History = m.History[:len(m.History)-1]
	return m.navigateTo(prev, false)
}

// reevaluate re-runs the guards after the session changed
func (m *Model) reevaluate() tea.Cmd {
	return m.navigateTo(m.Path, true)
}

// enterPage prepares per-page state after a route change
func (m *Model) enterPage() {
	if m.isAuthPage() {
		m.Auth = NewAuthForm(m.Route.Page)
	} else {
		m.Auth = nil
	}
	if m.Route.Page == router.PageTables {
		m.Table = TableUsers
	}
}

// pageCmd is the command a freshly entered page needs to start
func (m Model) pageCmd() tea.Cmd {
	switch {
	case m.Auth != nil:
		return m.Auth.Form.Init()
	case m.Path == activityPath:
		return m.loadActivity()
	}
	return nil
}

func (m Model) isAuthPage() bool {
	switch m.Route.Page {
	case router.PageLogin, router.PageRegister, router.PageForgotPassword:
		return true
	}
	return false
}

// collapsed reports the persisted sidebar mode
func (m Model) collapsed() bool {
	return m.Prefs.SidebarCollapsed.Get()
}

func (m Model) styles() Styles {
	return stylesFor(m.Prefs.Theme.Get(), m.SystemDark)
}

// menuTree renders the sidebar for the current route
func (m Model) menuTree() menu.Tree {
	return menu.Render(m.Nav.Sections, m.Path, m.collapsed(), m.Expansion)
}

// syncSidebarCursor puts the cursor on the active row, or keeps it in range
func (m *Model) syncSidebarCursor() {
	tree := m.menuTree()
	if i, ok := tree.Find(m.Path); ok {
		m.SidebarCursor = i
		return
	}
	m.SidebarCursor = clamp(m.SidebarCursor, len(tree.Rows()))
}

// setStatus shows a notification and schedules its removal
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMessage = msg
	m.StatusIsError = isErr
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
}

// currentContext returns the keymap context for the current UI state
func (m Model) currentContext() keymap.Context {
	switch m.Overlay {
	case OverlayHelp:
		return keymap.ContextHelp
	case OverlaySearch:
		return keymap.ContextSearch
	case OverlayTheme, OverlayLanguage, OverlayUserMenu:
		return keymap.ContextPicker
	case OverlayForm:
		return keymap.ContextForm
	}
	if m.isAuthPage() {
		return keymap.ContextAuth
	}
	if m.Filtering {
		return keymap.ContextFilter
	}
	if m.Focus == FocusSidebar && m.Session.IsAuthenticated() && m.Route.Page != router.PageNotFound {
		return keymap.ContextSidebar
	}
	return keymap.ContextContent
}

// startSession runs op in the background and marks it pending. The result
// arrives as a SessionResultMsg.
func (m *Model) startSession(op models.EventKind, email string, provider session.Provider, fn func(context.Context) session.Result) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.Pending = op
	m.cancelPending = cancel
	return tea.Batch(m.Spinner.Tick, func() tea.Msg {
		defer cancel()
		return SessionResultMsg{Op: op, Provider: provider, Email: email, Result: fn(ctx)}
	})
}

// cancelSession abandons the pending operation; its result reports failure
func (m *Model) cancelSession() {
	if m.cancelPending != nil {
		m.cancelPending()
	}
}

func (m Model) handleSessionResult(msg SessionResultMsg) (tea.Model, tea.Cmd) {
	m.Pending = ""
	m.cancelPending = nil

	if !msg.Result.Success {
		cmds := []tea.Cmd{m.setStatus(failureTitle(msg.Op)+": "+msg.Result.Error, true)}
		if m.Auth != nil {
			m.Auth.rebuild()
			cmds = append(cmds, m.Auth.Form.Init())
		}
		return m, tea.Batch(cmds...)
	}

	var status tea.Cmd
	switch msg.Op {
	case models.EventLogin:
		status = m.setStatus("Welcome back! You have been successfully logged in.", false)
	case models.EventProviderLogin:
		status = m.setStatus("Welcome! You have been successfully logged in with "+msg.Provider.Label()+".", false)
	case models.EventRegister:
		status = m.setStatus("Account created! Welcome to "+m.Nav.Brand.Name+".", false)
	case models.EventRecover:
		if m.Auth != nil {
			m.Auth.Sent = true
			m.Auth.SentTo = msg.Email
		}
		return m, m.setStatus("Reset email sent. Check your email for password reset instructions.", false)
	}
	return m, tea.Batch(status, m.reevaluate())
}

// logout signs out and lets the guards send the user to the login page
func (m *Model) logout() tea.Cmd {
	m.cancelSession()
	m.Session.Logout()
	m.History = nil
	m.Expansion = menu.NewExpansion(m.Nav.Sections, router.LoginPath)
	m.Overlay = OverlayNone
	m.Form = nil
	return tea.Batch(m.setStatus("Signed out", false), m.reevaluate())
}

func failureTitle(op models.EventKind) string {
	switch op {
	case models.EventRegister:
		return "Registration failed"
	case models.EventRecover:
		return "Reset failed"
	default:
		return "Login failed"
	}
}

// updateAuthForm forwards msg to the sign-in form and submits it on completion
func (m Model) updateAuthForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.Auth == nil || m.Pending != "" || m.Auth.Sent {
		return m, nil
	}
	form, cmd := m.Auth.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Auth.Form = f
	}
	if m.Auth.Form.State == huh.StateCompleted {
		submit := m.submitAuth()
		return m, tea.Batch(cmd, submit)
	}
	return m, cmd
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
