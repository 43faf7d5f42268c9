package shell

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/output"
	"github.com/marcus/dash/internal/prefs"
	"github.com/marcus/dash/internal/router"
	"github.com/marcus/dash/internal/sample"
	"github.com/marcus/dash/internal/session"
)

var testNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

type fakeMetrics struct {
	pages     []router.Page
	redirects []router.Guard
	notFound  int
}

func (f *fakeMetrics) RecordNavigation(p router.Page)       { f.pages = append(f.pages, p) }
func (f *fakeMetrics) RecordRedirect(g router.Guard)        { f.redirects = append(f.redirects, g) }
func (f *fakeMetrics) RecordNotFound()                      { f.notFound++ }
func (f *fakeMetrics) RecordSession(models.EventKind, bool) {}
func (f *fakeMetrics) RecordPreferenceWrite(string)         {}

type fakeEvents struct {
	events []models.SessionEvent
	err    error
}

func (f fakeEvents) RecentSessionEvents(limit int) ([]models.SessionEvent, error) {
	return f.events, f.err
}

type testShell struct {
	Model
	metrics *fakeMetrics
	copied  *[]string
}

func newTestShell(t *testing.T, start string, signedIn bool) testShell {
	t.Helper()
	set := prefs.Register(prefs.NewStore(prefs.NewMemoryBackend(), nil))
	mgr := session.NewManager(set.Auth, session.WithDelays(session.Delays{}))
	if signedIn {
		if res := mgr.Login(context.Background(), "jane.doe@example.com", "pw"); !res.Success {
			t.Fatalf("login: %s", res.Error)
		}
	}
	fm := &fakeMetrics{}
	var copied []string
	m := NewModel(Options{
		Prefs:     set,
		Session:   mgr,
		Metrics:   fm,
		StartPath: start,
		ClipboardFn: func(s string) error {
			copied = append(copied, s)
			return nil
		},
		Now: func() time.Time { return testNow },
	})
	return testShell{Model: m, metrics: fm, copied: &copied}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys through Update, discarding commands
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(Model)
	}
	return m
}

// typeText feeds each rune of text as a key press
func typeText(m Model, text string) Model {
	for _, r := range text {
		m = press(m, string(r))
	}
	return m
}

func send(m Model, msg tea.Msg) Model {
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestAnonymousStartRedirectsToLogin(t *testing.T) {
	ts := newTestShell(t, "/tables", false)

	if ts.Path != router.LoginPath || ts.Route.Page != router.PageLogin {
		t.Fatalf("path = %s (%s), want login", ts.Path, ts.Route.Page)
	}
	if ts.Auth == nil || ts.Auth.Page != router.PageLogin {
		t.Fatal("login form not prepared")
	}
	if len(ts.metrics.redirects) != 1 || ts.metrics.redirects[0] != router.RequireAuthenticated {
		t.Errorf("redirects = %v", ts.metrics.redirects)
	}
	if len(ts.History) != 0 {
		t.Errorf("guarded path leaked into history: %v", ts.History)
	}
}

func TestSignedInLoginPageRedirectsHome(t *testing.T) {
	ts := newTestShell(t, router.LoginPath, true)
	if ts.Path != router.HomePath || ts.Route.Page != router.PageDashboard {
		t.Fatalf("path = %s, want /", ts.Path)
	}
	if ts.Auth != nil {
		t.Error("auth form kept on a signed-in page")
	}
}

func TestNotFound(t *testing.T) {
	for _, signedIn := range []bool{false, true} {
		ts := newTestShell(t, "/no/such/page", signedIn)
		if ts.Route.Page != router.PageNotFound || ts.Path != "/no/such/page" {
			t.Fatalf("signedIn=%v: page = %s at %s", signedIn, ts.Route.Page, ts.Path)
		}
		if ts.metrics.notFound != 1 {
			t.Errorf("notFound = %d", ts.metrics.notFound)
		}
		if !strings.Contains(ansi.Strip(ts.View()), "Page Not Found") {
			t.Error("view lacks the not-found card")
		}

		m := press(ts.Model, "enter")
		want := router.LoginPath
		if signedIn {
			want = router.HomePath
		}
		if m.Path != want {
			t.Errorf("signedIn=%v: Go to Dashboard led to %s, want %s", signedIn, m.Path, want)
		}
	}
}

func TestSidebarNavigation(t *testing.T) {
	ts := newTestShell(t, "/", true)
	if ts.SidebarCursor != 0 {
		t.Fatalf("cursor = %d, want the dashboard row", ts.SidebarCursor)
	}

	m := press(ts.Model, "j")
	rows := m.menuTree().Rows()
	target := rows[1]

	m = press(m, "enter")
	if m.Path != target.Path {
		t.Fatalf("path = %s, want %s", m.Path, target.Path)
	}
	if m.SidebarCursor != 1 {
		t.Errorf("cursor = %d after navigating", m.SidebarCursor)
	}
	if len(m.History) != 1 || m.History[0] != "/" {
		t.Errorf("history = %v", m.History)
	}

	m = press(m, "backspace")
	if m.Path != "/" {
		t.Errorf("back went to %s", m.Path)
	}
}

func TestSidebarExpandableTogglesInPlace(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := ts.Model

	i := rowIndex(m.menuTree().Rows(), "orders")
	if i < 0 {
		t.Fatal("orders row missing")
	}
	m.SidebarCursor = i
	before := len(m.menuTree().Rows())

	m = press(m, "enter")
	if m.Path != "/" {
		t.Fatalf("toggle navigated to %s", m.Path)
	}
	rows := m.menuTree().Rows()
	if len(rows) <= before || !rows[i].Expanded {
		t.Fatalf("orders did not expand (%d -> %d rows)", before, len(rows))
	}

	// the first child is now under the cursor after one step down
	m = press(m, "j", "enter")
	if m.Path != rows[i+1].Path {
		t.Errorf("child led to %s, want %s", m.Path, rows[i+1].Path)
	}
	if !m.menuTree().Rows()[rowIndex(m.menuTree().Rows(), "orders")].Highlight {
		t.Error("parent of the active child is not highlighted")
	}
}

func TestCollapsedSidebarNavigatesParents(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := press(ts.Model, "[")
	if !m.Prefs.SidebarCollapsed.Get() {
		t.Fatal("sidebar preference not persisted")
	}

	rows := m.menuTree().Rows()
	for _, r := range rows {
		if r.Depth > 0 || len(r.Children) > 0 {
			t.Fatalf("collapsed tree shows children: %+v", r)
		}
	}
	m.SidebarCursor = rowIndex(rows, "orders")
	m = press(m, "enter")
	if m.Path != "/orders" || m.Route.Page != router.PageOrders {
		t.Errorf("collapsed parent led to %s (%s)", m.Path, m.Route.Page)
	}

	m = press(m, "[")
	if m.Prefs.SidebarCollapsed.Get() {
		t.Error("sidebar did not expand again")
	}
}

func TestSidebarSyncOpensParentOnRouteChange(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := ts.Model
	m.navigate("/settings/billing")

	rows := m.menuTree().Rows()
	i := rowIndex(rows, "settings")
	if !rows[i].Expanded || !rows[i].HasActiveDescendant {
		t.Errorf("settings row = %+v", rows[i])
	}
	if rows[m.SidebarCursor].ID != "billing" {
		t.Errorf("cursor on %s, want billing", rows[m.SidebarCursor].ID)
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	ts := newTestShell(t, "/tables", true)
	ts.Model.Expansion.Toggle("orders", false)
	m := press(ts.Model, "U")
	if m.Overlay != OverlayUserMenu {
		t.Fatal("user menu not open")
	}
	m = press(m, "j", "j", "enter")

	if m.Session.IsAuthenticated() {
		t.Fatal("still signed in")
	}
	if m.Path != router.LoginPath || m.Overlay != OverlayNone {
		t.Errorf("path = %s overlay = %v", m.Path, m.Overlay)
	}
	if len(m.History) != 0 {
		t.Errorf("history kept across logout: %v", m.History)
	}
	if m.Expansion.IsOpen("orders") {
		t.Error("expanded groups kept across logout")
	}
}

func TestUserMenuProfile(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := press(ts.Model, "U", "enter")
	if m.Path != router.ProfilePath {
		t.Errorf("path = %s", m.Path)
	}
}

func TestLoginSubmit(t *testing.T) {
	ts := newTestShell(t, router.LoginPath, false)
	m := ts.Model

	m.submitAuth()
	if !m.StatusIsError || !strings.Contains(m.StatusMessage, errFieldsRequired.Error()) {
		t.Fatalf("empty submit status = %q", m.StatusMessage)
	}
	if m.Pending != "" {
		t.Fatal("rejected form started an operation")
	}

	m.Auth.Email = "jane.doe@example.com"
	m.Auth.Password = "pw"
	if cmd := m.submitAuth(); cmd == nil {
		t.Fatal("valid submit returned no command")
	}
	if m.Pending != models.EventLogin {
		t.Fatalf("pending = %q", m.Pending)
	}

	res := m.Session.Login(context.Background(), m.Auth.Email, m.Auth.Password)
	m = send(m, SessionResultMsg{Op: models.EventLogin, Email: m.Auth.Email, Result: res})
	if m.Pending != "" {
		t.Error("pending not cleared")
	}
	if m.Path != router.HomePath {
		t.Errorf("path after login = %s", m.Path)
	}
	if m.StatusIsError || !strings.HasPrefix(m.StatusMessage, "Welcome back!") {
		t.Errorf("status = %q", m.StatusMessage)
	}
}

func TestFailedLoginStaysOnPage(t *testing.T) {
	ts := newTestShell(t, router.LoginPath, false)
	m := ts.Model
	m.Pending = models.EventLogin

	m = send(m, SessionResultMsg{Op: models.EventLogin, Result: session.Result{Error: "Invalid credentials"}})
	if m.Path != router.LoginPath {
		t.Errorf("path = %s", m.Path)
	}
	if !m.StatusIsError || m.StatusMessage != "Login failed: Invalid credentials" {
		t.Errorf("status = %q", m.StatusMessage)
	}
}

func TestProviderLoginMessage(t *testing.T) {
	ts := newTestShell(t, router.RegisterPath, false)
	m := ts.Model

	if cmd := m.providerLogin(session.ProviderGitHub); cmd == nil {
		t.Fatal("no command")
	}
	if m.providerLogin(session.ProviderGoogle) != nil {
		t.Error("second provider login started while one is pending")
	}

	res := m.Session.LoginWithProvider(context.Background(), session.ProviderGitHub)
	m = send(m, SessionResultMsg{Op: models.EventProviderLogin, Provider: session.ProviderGitHub, Result: res})
	if !strings.Contains(m.StatusMessage, "with GitHub") {
		t.Errorf("status = %q", m.StatusMessage)
	}
	if m.Path != router.HomePath || m.Session.User().Email != "user@github.com" {
		t.Errorf("path = %s user = %+v", m.Path, m.Session.User())
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name                           string
		fullName, email, pass, confirm string
		want                           error
	}{
		{"ok", "Sam", "sam@example.com", "secret1", "secret1", nil},
		{"missing name", "", "sam@example.com", "secret1", "secret1", errFieldsRequired},
		{"blank email", "Sam", "   ", "secret1", "secret1", errFieldsRequired},
		{"missing confirm", "Sam", "sam@example.com", "secret1", "", errFieldsRequired},
		{"mismatch", "Sam", "sam@example.com", "secret1", "secret2", errPasswordMismatch},
		{"short", "Sam", "sam@example.com", "abc", "abc", errPasswordTooShort},
		{"exactly six", "Sam", "sam@example.com", "abcdef", "abcdef", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.fullName, tt.email, tt.pass, tt.confirm)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterRejectsMismatch(t *testing.T) {
	ts := newTestShell(t, router.RegisterPath, false)
	m := ts.Model
	m.Auth.Name, m.Auth.Email = "Sam", "sam@example.com"
	m.Auth.Password, m.Auth.Confirm = "secret1", "secret2"

	m.submitAuth()
	if m.Pending != "" {
		t.Fatal("mismatched passwords started registration")
	}
	if !m.StatusIsError || !strings.HasPrefix(m.StatusMessage, "Password mismatch") {
		t.Errorf("status = %q", m.StatusMessage)
	}
	if m.Auth.Email != "sam@example.com" {
		t.Error("entered values lost on rejection")
	}
}

func TestForgotPasswordConfirmation(t *testing.T) {
	ts := newTestShell(t, router.LoginPath, false)
	m := press(ts.Model, "ctrl+f")
	if m.Route.Page != router.PageForgotPassword {
		t.Fatalf("page = %s", m.Route.Page)
	}

	m.submitAuth()
	if !strings.Contains(m.StatusMessage, errEmailRequired.Error()) {
		t.Errorf("status = %q", m.StatusMessage)
	}

	m = send(m, SessionResultMsg{Op: models.EventRecover, Email: "x@example.com", Result: session.Result{Success: true}})
	if !m.Auth.Sent || m.Auth.SentTo != "x@example.com" {
		t.Errorf("auth = %+v", m.Auth)
	}
	if m.Path != router.ForgotPasswordPath || m.Session.IsAuthenticated() {
		t.Error("recovery changed the session or page")
	}
	if !strings.Contains(ansi.Strip(m.View()), "x@example.com") {
		t.Error("confirmation not rendered")
	}
}

func TestAuthPageLinks(t *testing.T) {
	ts := newTestShell(t, router.LoginPath, false)
	m := press(ts.Model, "ctrl+r")
	if m.Path != router.RegisterPath || m.Auth.Page != router.PageRegister {
		t.Fatalf("path = %s", m.Path)
	}

	m.Pending = models.EventRegister
	if m.authNavigate(router.LoginPath) != nil || m.Path != router.RegisterPath {
		t.Error("navigated away while an operation was pending")
	}
}

func TestTablesFilterAndCopy(t *testing.T) {
	ts := newTestShell(t, "/tables", true)
	m := press(ts.Model, "tab", "/")
	if !m.Filtering {
		t.Fatal("filter not focused")
	}
	m = typeText(m, "manager")
	m = press(m, "enter")
	if m.Filtering || m.FilterInput.Value() != "manager" {
		t.Fatalf("filtering=%v value=%q", m.Filtering, m.FilterInput.Value())
	}
	if got := m.filteredUsers(); len(got) != 2 {
		t.Fatalf("filtered users = %d, want 2", len(got))
	}

	m = press(m, "j", "y")
	copied := *ts.copied
	want := output.UserRowText(sample.FilterUsers(sample.Users, "manager")[1])
	if len(copied) != 1 || copied[0] != want {
		t.Errorf("copied = %q, want %q", copied, want)
	}
	if m.StatusIsError {
		t.Errorf("status = %q", m.StatusMessage)
	}

	m = press(m, "]")
	if m.Table != TableOrders || m.contentRows() != 0 {
		t.Errorf("orders matching 'manager' = %d", m.contentRows())
	}
	m = press(m, "y")
	if len(*ts.copied) != 1 {
		t.Error("copied from an empty table")
	}

	m = press(m, "/", "esc")
	if m.FilterInput.Value() != "" || m.contentRows() != len(sample.Orders) {
		t.Errorf("filter not cleared: %q", m.FilterInput.Value())
	}
}

func TestCopyFailureReported(t *testing.T) {
	ts := newTestShell(t, "/tables", true)
	m := ts.Model
	m.ClipboardFn = func(string) error { return errors.New("no clipboard") }

	updated, _ := m.copySelectedRow()
	m = updated.(Model)
	if !m.StatusIsError || !strings.Contains(m.StatusMessage, "no clipboard") {
		t.Errorf("status = %q", m.StatusMessage)
	}
}

func TestPageSearch(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := press(ts.Model, "ctrl+k")
	if m.Overlay != OverlaySearch {
		t.Fatal("search not open")
	}
	m = typeText(m, "tabl")
	if len(m.SearchMatches) == 0 || m.SearchMatches[0].Path != "/tables" {
		t.Fatalf("matches = %+v", m.SearchMatches)
	}
	m = press(m, "enter")
	if m.Overlay != OverlayNone || m.Path != "/tables" {
		t.Errorf("overlay=%v path=%s", m.Overlay, m.Path)
	}
}

func TestSearchPages(t *testing.T) {
	ts := newTestShell(t, "/", true)
	items := ts.Nav.Items()

	if got := searchPages("", items); len(got) != len(items) {
		t.Errorf("empty query = %d items, want all %d", len(got), len(items))
	}
	if got := searchPages("zzzz", items); len(got) != 0 {
		t.Errorf("nonsense query matched %d items", len(got))
	}
	got := searchPages("billing", items)
	if len(got) == 0 || got[0].ID != "billing" {
		t.Errorf("billing query = %+v", got)
	}
}

func TestThemeAndLanguagePickers(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := press(ts.Model, "T")
	if m.Overlay != OverlayTheme || m.PickerCursor != 2 {
		t.Fatalf("overlay=%v cursor=%d, want theme picker on System", m.Overlay, m.PickerCursor)
	}
	m = press(m, "k", "enter")
	if m.Prefs.Theme.Get() != models.ThemeDark {
		t.Errorf("theme = %s", m.Prefs.Theme.Get())
	}
	if m.styles().Palette != darkPalette {
		t.Error("dark theme did not switch the palette")
	}

	m = press(m, "L", "j", "enter")
	if m.Prefs.Language.Get() != models.LanguageSpanish {
		t.Errorf("language = %s", m.Prefs.Language.Get())
	}

	m = press(m, "L", "esc")
	if m.Overlay != OverlayNone || m.Prefs.Language.Get() != models.LanguageSpanish {
		t.Error("cancel changed the language")
	}
}

func TestSystemThemeFollowsTerminal(t *testing.T) {
	if stylesFor(models.ThemeSystem, true).Palette != darkPalette {
		t.Error("system theme on a dark terminal is not dark")
	}
	if stylesFor(models.ThemeSystem, false).Palette != lightPalette {
		t.Error("system theme on a light terminal is not light")
	}
	if stylesFor(models.ThemeLight, true).Palette != lightPalette {
		t.Error("explicit light theme overridden")
	}
}

func TestGoToSequences(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := press(ts.Model, "g", "p")
	if m.Path != router.ProfilePath {
		t.Fatalf("g p led to %s", m.Path)
	}
	m = press(m, "g", "h")
	if m.Route.Page != router.PageHelp {
		t.Errorf("g h led to %s", m.Path)
	}
	m = press(m, "backspace", "backspace")
	if m.Path != "/" {
		t.Errorf("back twice led to %s", m.Path)
	}
}

func TestStatusClearsOnlyItsOwnMessage(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := ts.Model

	m.setStatus("first", false)
	first := m.statusSeq
	m.setStatus("second", true)

	m = send(m, ClearStatusMsg{Seq: first})
	if m.StatusMessage != "second" {
		t.Fatalf("stale tick cleared %q", m.StatusMessage)
	}
	m = send(m, ClearStatusMsg{Seq: m.statusSeq})
	if m.StatusMessage != "" || m.StatusIsError {
		t.Errorf("status = %q", m.StatusMessage)
	}

	m.setStatus("third", false)
	m = press(m, "x")
	if m.StatusMessage != "" {
		t.Error("x did not dismiss the notification")
	}
}

func TestDashboardQuickAction(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := press(ts.Model, "tab", "j", "enter")
	want := sample.QuickActions[1].Path
	if m.Path != want || m.Route.Page != router.PageOrders {
		t.Errorf("path = %s (%s), want %s", m.Path, m.Route.Page, want)
	}

	view := ansi.Strip(ts.View())
	if !strings.Contains(view, "Good morning, jane.doe!") {
		t.Errorf("greeting missing from dashboard:\n%s", view)
	}
}

func TestAskQuestionsForms(t *testing.T) {
	ts := newTestShell(t, "/ask-questions", true)
	m := press(ts.Model, "tab", "enter")
	if m.Overlay != OverlayForm || m.Form.Kind != FormQuestion {
		t.Fatalf("overlay=%v form=%v", m.Overlay, m.Form)
	}

	m.submitForm()
	if !m.StatusIsError || m.Overlay != OverlayForm {
		t.Fatalf("empty question accepted: %q", m.StatusMessage)
	}

	m.Form.Question = "<b>How</b> do I export orders?"
	m.submitForm()
	if m.Overlay != OverlayNone || len(m.Questions) != 1 {
		t.Fatalf("question not stored: overlay=%v", m.Overlay)
	}
	if m.Questions[0].Text != "How do I export orders?" {
		t.Errorf("question = %q", m.Questions[0].Text)
	}

	m = press(m, "j", "n")
	if m.Form == nil || m.Form.Kind != FormProject {
		t.Fatal("project form not opened")
	}
	m.Form.Repository = "dash"
	m.submitForm()
	if !m.StatusIsError {
		t.Error("project without a name accepted")
	}
	m.Form.Project = "Dash"
	m.submitForm()
	if len(m.Projects) != 1 || m.Projects[0].HasToken {
		t.Errorf("projects = %+v", m.Projects)
	}
	if !strings.Contains(m.StatusMessage, `"Dash"`) {
		t.Errorf("status = %q", m.StatusMessage)
	}

	m = press(m, "esc")
	m = press(m, "j", "enter")
	if m.Route.Page != router.PageNotFound {
		t.Errorf("quick link led to %s (%s)", m.Path, m.Route.Page)
	}
}

func TestProfileEdit(t *testing.T) {
	ts := newTestShell(t, router.ProfilePath, true)
	m := press(ts.Model, "tab", "e")
	if m.Form == nil || m.Form.Kind != FormProfile {
		t.Fatal("profile form not opened")
	}
	if m.Form.Email != "jane.doe@example.com" {
		t.Errorf("form not prefilled: %+v", m.Form)
	}

	m.Form.Name = "<i>Jane</i> Roe"
	m.submitForm()
	if u := m.Session.User(); u.Name != "Jane Roe" || u.Email != "jane.doe@example.com" {
		t.Errorf("user = %+v", u)
	}
	if m.Overlay != OverlayNone {
		t.Error("form still open")
	}

	m = press(m, "e", "esc")
	if m.Form != nil || m.Overlay != OverlayNone {
		t.Error("esc did not discard the form")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Tom & Jerry", "Tom & Jerry"},
		{"O'Brien", "O'Brien"},
		{"is a < b?", "is a < b?"},
		{"  <b>bold</b> text ", "bold text"},
		{"<script>alert(1)</script>", ""},
	}
	for _, tt := range tests {
		if got := sanitize(tt.in); got != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProfileEditStoresPlainText(t *testing.T) {
	ts := newTestShell(t, router.ProfilePath, true)
	m := press(ts.Model, "tab", "e")
	if m.Form == nil {
		t.Fatal("profile form not opened")
	}
	m.Form.Name = "Tom & Jerry"
	m.submitForm()

	stored := m.Prefs.Auth.Get()
	if stored.User == nil || stored.User.Name != "Tom & Jerry" {
		t.Errorf("stored user = %+v", stored.User)
	}
}

func TestActivityPage(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := ts.Model
	m.Events = fakeEvents{events: []models.SessionEvent{
		{Kind: models.EventLogin, Email: "jane.doe@example.com", CreatedAt: testNow},
	}}

	cmd := m.navigate(activityPath)
	if cmd == nil {
		t.Fatal("activity page did not load events")
	}
	m = send(m, cmd())
	if len(m.Activity) != 1 || m.contentRows() != 1 {
		t.Fatalf("activity = %+v", m.Activity)
	}
	if !strings.Contains(ansi.Strip(m.View()), "jane.doe@example.com") {
		t.Error("activity not rendered")
	}
}

func TestSettingsRows(t *testing.T) {
	ts := newTestShell(t, "/settings/general", true)
	m := press(ts.Model, "tab", "enter")
	if m.Overlay != OverlayTheme {
		t.Fatalf("overlay = %v", m.Overlay)
	}
	m = press(m, "esc", "j", "j", "enter")
	if !m.Prefs.SidebarCollapsed.Get() {
		t.Error("sidebar row did not toggle the preference")
	}
}

func TestButtonsDemo(t *testing.T) {
	ts := newTestShell(t, "/buttons", true)
	m := press(ts.Model, "tab", "enter")
	if m.StatusMessage != "Primary button clicked" {
		t.Errorf("status = %q", m.StatusMessage)
	}
	m = press(m, "x", "G", "enter")
	if m.StatusMessage != "" {
		t.Errorf("disabled button reacted: %q", m.StatusMessage)
	}
}

func TestPlaceholderPage(t *testing.T) {
	ts := newTestShell(t, "/reports", true)
	view := ansi.Strip(ts.View())
	if !strings.Contains(view, "Reports page coming soon...") {
		t.Errorf("placeholder missing:\n%s", view)
	}
}

func TestViewChrome(t *testing.T) {
	ts := newTestShell(t, "/", true)
	m := send(ts.Model, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := ansi.Strip(m.View())
	for _, want := range []string{m.Nav.Brand.Name, "MAIN", "Dashboard", "(J)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}

	m = press(m, "[")
	view = ansi.Strip(m.View())
	if strings.Contains(view, "MAIN") {
		t.Error("collapsed sidebar still shows section titles")
	}

	m = press(m, "?")
	if m.Overlay != OverlayHelp || !strings.Contains(ansi.Strip(m.View()), "SIDEBAR") {
		t.Error("help overlay not shown")
	}
	m = press(m, "?")
	if m.Overlay != OverlayNone {
		t.Error("help overlay did not close")
	}
}

func TestQuit(t *testing.T) {
	ts := newTestShell(t, "/", true)
	_, cmd := ts.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
