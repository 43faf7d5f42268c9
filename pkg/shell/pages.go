package shell

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/dash/internal/nav"
	"github.com/marcus/dash/internal/output"
	"github.com/marcus/dash/internal/router"
	"github.com/marcus/dash/internal/sample"
	"github.com/muesli/reflow/wordwrap"
)

//go:embed content/welcome.md
var welcomeMarkdown string

//go:embed content/help.md
var helpMarkdown string

const activityPath = "/users/activity"

var welcomeLinks = []Link{
	{Title: "Dashboard", Path: router.HomePath},
	{Title: "Analytics", Path: "/analytics"},
	{Title: "Ask Questions", Path: "/ask-questions"},
}

// questionActions are the first rows of the ask-questions page
var questionActions = []Link{
	{Title: "Ask a Question", Description: "Get help from our support team"},
	{Title: "Create Project", Description: "Set up a new project from a repository"},
}

var quickLinks = []Link{
	{Title: "Documentation", Description: "Browse our comprehensive documentation and guides", Path: "/docs"},
	{Title: "Video Tutorials", Description: "Watch step-by-step video tutorials", Path: "/tutorials"},
	{Title: "Community Forum", Description: "Connect with other users and get help", Path: "/community"},
	{Title: "API Reference", Description: "Detailed API documentation and examples", Path: "/api-docs"},
	{Title: "GitHub Issues", Description: "Report bugs or request features", Path: "/github"},
}

var notFoundLinks = []Link{
	{Title: "Go to Dashboard", Path: router.HomePath},
	{Title: "Go Back"},
}

type demoButton struct {
	Label    string
	Variant  string
	Disabled bool
}

var demoButtons = []demoButton{
	{Label: "Primary", Variant: "default"},
	{Label: "Secondary", Variant: "secondary"},
	{Label: "Outline", Variant: "outline"},
	{Label: "Ghost", Variant: "ghost"},
	{Label: "Delete", Variant: "destructive"},
	{Label: "Link", Variant: "link"},
	{Label: "Disabled", Variant: "secondary", Disabled: true},
}

// settings page rows
const (
	settingTheme = iota
	settingLanguage
	settingSidebar
	settingRows
)

// contentRows is the number of selectable rows of the current page
func (m Model) contentRows() int {
	switch m.Route.Page {
	case router.PageDashboard:
		return len(sample.QuickActions)
	case router.PageWelcome:
		return len(welcomeLinks)
	case router.PageAskQuestions:
		return len(questionActions) + len(quickLinks)
	case router.PageTables:
		if m.Table == TableOrders {
			return len(m.filteredOrders())
		}
		return len(m.filteredUsers())
	case router.PageButtons:
		return len(demoButtons)
	case router.PageProfile:
		return 1
	case router.PageSettings:
		return settingRows
	case router.PageUsers:
		if m.Path == activityPath {
			return len(m.Activity)
		}
	case router.PageNotFound:
		return len(notFoundLinks)
	}
	return 0
}

func (m *Model) clampContentCursor() {
	m.ContentCursor = clamp(m.ContentCursor, m.contentRows())
}

// activateContent applies enter on the selected row of the page
func (m *Model) activateContent() tea.Cmd {
	if m.contentRows() == 0 {
		return nil
	}
	i := clamp(m.ContentCursor, m.contentRows())

	switch m.Route.Page {
	case router.PageDashboard:
		return m.navigate(sample.QuickActions[i].Path)

	case router.PageWelcome:
		return m.navigate(welcomeLinks[i].Path)

	case router.PageAskQuestions:
		switch i {
		case 0:
			return m.openForm(NewFormState(FormQuestion))
		case 1:
			return m.openForm(NewFormState(FormProject))
		}
		return m.navigate(quickLinks[i-len(questionActions)].Path)

	case router.PageTables:
		mm, cmd := m.copySelectedRow()
		*m = mm.(Model)
		return cmd

	case router.PageButtons:
		b := demoButtons[i]
		if b.Disabled {
			return nil
		}
		return m.setStatus(b.Label+" button clicked", false)

	case router.PageProfile:
		return m.editProfile()

	case router.PageSettings:
		switch i {
		case settingTheme:
			m.openThemePicker()
		case settingLanguage:
			m.openLanguagePicker()
		case settingSidebar:
			m.Prefs.SidebarCollapsed.Set(!m.collapsed())
			m.syncSidebarCursor()
		}
		return nil

	case router.PageNotFound:
		if notFoundLinks[i].Path != "" {
			return m.navigate(notFoundLinks[i].Path)
		}
		if len(m.History) == 0 {
			return m.navigate(router.HomePath)
		}
		return m.back()
	}
	return nil
}

// editProfile opens the profile form for the signed-in user
func (m *Model) editProfile() tea.Cmd {
	u := m.Session.User()
	if u == nil {
		return nil
	}
	return m.openForm(NewProfileForm(u.Name, u.Email))
}

// loadActivity fetches recent session events
func (m Model) loadActivity() tea.Cmd {
	src := m.Events
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		events, err := src.RecentSessionEvents(activityLimit)
		return EventsMsg{Events: events, Err: err}
	}
}

func (m Model) filteredUsers() []sample.User {
	return sample.FilterUsers(sample.Users, m.FilterInput.Value())
}

func (m Model) filteredOrders() []sample.Order {
	return sample.FilterOrders(sample.Orders, m.FilterInput.Value())
}

// selectedRowText returns the clipboard text of the selected table row
func (m Model) selectedRowText() (string, bool) {
	if m.Table == TableOrders {
		orders := m.filteredOrders()
		if len(orders) == 0 {
			return "", false
		}
		return output.OrderRowText(orders[clamp(m.ContentCursor, len(orders))]), true
	}
	users := m.filteredUsers()
	if len(users) == 0 {
		return "", false
	}
	return output.UserRowText(users[clamp(m.ContentCursor, len(users))]), true
}

// copySelectedRow copies the selected table row to the clipboard
func (m Model) copySelectedRow() (tea.Model, tea.Cmd) {
	text, ok := m.selectedRowText()
	if !ok {
		return m, nil
	}
	copyFn := m.ClipboardFn
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	if err := copyFn(text); err != nil {
		return m, m.setStatus("Copy failed: "+err.Error(), true)
	}
	return m, m.setStatus("Yanked row to clipboard", false)
}

// renderPage renders the content of the current route at width
func (m Model) renderPage(width int) string {
	switch m.Route.Page {
	case router.PageDashboard:
		return m.renderDashboard(width)
	case router.PageProfile:
		return m.renderProfile(width)
	case router.PageWelcome:
		return m.renderWelcome(width)
	case router.PageAskQuestions:
		return m.renderAskQuestions(width)
	case router.PageTables:
		return m.renderTables(width)
	case router.PageButtons:
		return m.renderButtons(width)
	case router.PageSettings:
		return m.renderSettings(width)
	case router.PageHelp:
		return m.renderHelpPage(width)
	case router.PageUsers:
		if m.Path == activityPath {
			return m.renderActivity(width)
		}
	}
	return m.renderPlaceholder(width)
}

// row renders a selectable line, marking the cursor when content has focus
func (m Model) row(i int, text string) string {
	s := m.styles()
	if i == m.ContentCursor && m.Focus == FocusContent {
		return s.Selected.Render("> " + text)
	}
	return "  " + text
}

func (m Model) pageHeader(title, subtitle string) string {
	s := m.styles()
	header := s.Title.Render(title)
	if subtitle != "" {
		header += "\n" + s.Subtle.Render(subtitle)
	}
	return header + "\n\n"
}

// flow lays blocks out left to right, wrapping to a new row at width
func flow(blocks []string, width int) string {
	var rows, row []string
	used := 0
	for _, b := range blocks {
		w := lipgloss.Width(b)
		if len(row) > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, b)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// cardWidth is the inner width of a card when cols cards share width
func cardWidth(width, cols int) int {
	return max(width/cols-2, 20)
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

func (m Model) renderDashboard(width int) string {
	s := m.styles()
	var sb strings.Builder

	name := "there"
	if u := m.Session.User(); u != nil {
		name = firstName(u.Name)
	}
	sb.WriteString(m.pageHeader(
		fmt.Sprintf("%s, %s!", sample.Greeting(m.Now().Hour()), name),
		"Here's what's happening with your business today.",
	))

	statW := cardWidth(width, 4)
	stats := make([]string, len(sample.Stats))
	for i, st := range sample.Stats {
		change := s.Success.Render("▲ " + st.Change)
		if !st.Up {
			change = s.Tones[sample.ToneNegative].Render("▼ " + st.Change)
		}
		stats[i] = s.Card.Width(statW).Render(
			s.Subtle.Render(nav.Glyph(st.Icon)+" "+st.Title) + "\n" +
				s.Title.Render(st.Value) + "  " + change)
	}
	sb.WriteString(flow(stats, width) + "\n\n")

	featW := cardWidth(width, 2)
	sb.WriteString(s.Section.Render("QUICK ACTIONS") + "\n")
	cards := make([]string, len(sample.QuickActions))
	for i, f := range sample.QuickActions {
		selected := i == m.ContentCursor && m.Focus == FocusContent
		cards[i] = m.featureCard(f, featW, selected)
	}
	sb.WriteString(flow(cards, width) + "\n\n")

	sb.WriteString(s.Section.Render("PLATFORM CAPABILITIES") + "\n")
	caps := make([]string, len(sample.Capabilities))
	for i, f := range sample.Capabilities {
		caps[i] = m.featureCard(f, cardWidth(width, 3), false)
	}
	sb.WriteString(flow(caps, width))
	return sb.String()
}

func (m Model) featureCard(f sample.Feature, width int, selected bool) string {
	s := m.styles()
	title := s.Title.Render(nav.Glyph(f.Icon) + " " + f.Title)
	if f.IsNew {
		title += " " + s.New.Render("New")
	}
	body := wordwrap.String(f.Description, max(width-2, 10))
	action := s.Subtle.Render(f.Action + " →")
	style := s.Card
	if selected {
		style = s.ActiveCard
	}
	return style.Width(width).Render(title + "\n" + body + "\n" + action)
}

func (m Model) renderProfile(width int) string {
	s := m.styles()
	u := m.Session.User()
	if u == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.pageHeader("Profile", "Manage your account settings and preferences"))

	avatar := s.ActiveCard.Render(s.Title.Render(u.Initials()))
	ident := s.Title.Render(u.Name) + "\n" + s.Subtle.Render(u.Email) + "\n" + s.Badge.Render("Premium User")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, avatar, "  ", ident) + "\n\n")

	sb.WriteString(s.Section.Render("ACCOUNT DETAILS") + "\n")
	details := []string{
		"User ID       " + s.Subtle.Render(u.ID),
		"Email         " + s.Subtle.Render(u.Email),
		"Account Type  " + s.Subtle.Render("Premium"),
	}
	if u.Avatar != "" {
		details = append(details, "Avatar        "+s.Subtle.Render(u.Avatar))
	}
	sb.WriteString(strings.Join(output.IndentLines(details, 2), "\n") + "\n\n")
	sb.WriteString(m.row(0, "Edit profile"))
	return wordwrap.String(sb.String(), width)
}

func (m Model) renderWelcome(width int) string {
	s := m.styles()
	var sb strings.Builder
	sb.WriteString(s.Brand.Render("✦ Welcome to "+m.Nav.Brand.Name) + "  " + s.Badge.Render("New!") + "\n")
	sb.WriteString(m.renderMarkdown("welcome", welcomeMarkdown, width) + "\n")

	buttons := make([]string, len(welcomeLinks))
	variants := []string{"default", "secondary", "outline"}
	for i, l := range welcomeLinks {
		label := l.Title + " →"
		if i == m.ContentCursor && m.Focus == FocusContent {
			label = "> " + label
		}
		buttons[i] = s.Button[variants[i%len(variants)]].Render(label)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	return sb.String()
}

func (m Model) renderAskQuestions(width int) string {
	s := m.styles()
	var sb strings.Builder
	sb.WriteString(m.pageHeader("Ask Questions & Get Help",
		"Need assistance? We're here to help! Ask your questions or explore our resources below."))

	for i, a := range questionActions {
		sb.WriteString(m.row(i, s.Title.Render(a.Title)+"  "+s.Subtle.Render(a.Description)) + "\n")
	}

	sb.WriteString("\n" + s.Section.Render("QUICK LINKS") + "\n")
	for i, l := range quickLinks {
		line := l.Title + "  " + s.Subtle.Render(l.Description)
		sb.WriteString(m.row(i+len(questionActions), line) + "\n")
	}

	if len(m.Questions) > 0 {
		sb.WriteString("\n" + s.Section.Render("YOUR QUESTIONS") + "\n")
		for i := len(m.Questions) - 1; i >= 0; i-- {
			q := m.Questions[i]
			text := wordwrap.String(q.Text, max(width-16, 20))
			sb.WriteString("  • " + text + "  " + s.Subtle.Render(output.FormatTimeAgo(q.At)) + "\n")
		}
	}
	if len(m.Projects) > 0 {
		sb.WriteString("\n" + s.Section.Render("PROJECTS") + "\n")
		for i := len(m.Projects) - 1; i >= 0; i-- {
			p := m.Projects[i]
			line := fmt.Sprintf("  • %s %s", p.Name, s.Subtle.Render("("+p.Repository+")"))
			if p.HasToken {
				line += " " + s.Badge.Render("[token]")
			}
			sb.WriteString(line + "\n")
		}
	}
	sb.WriteString("\n" + s.Help.Render("n: new question / project on the selected row"))
	return sb.String()
}

func (m Model) renderTables(width int) string {
	s := m.styles()
	var sb strings.Builder
	sb.WriteString(m.pageHeader("Tables", "Browse and filter the sample data"))

	var tabs []string
	for _, t := range []Table{TableUsers, TableOrders} {
		if t == m.Table {
			tabs = append(tabs, s.Active.Render("["+t.String()+"]"))
		} else {
			tabs = append(tabs, s.Subtle.Render(" "+t.String()+" "))
		}
	}
	sb.WriteString(strings.Join(tabs, " ") + "  " + s.Help.Render("] switch") + "\n")

	switch {
	case m.Filtering:
		sb.WriteString(m.FilterInput.View() + "\n\n")
	case m.FilterInput.Value() != "":
		sb.WriteString(s.Subtle.Render("filter: ") + m.FilterInput.Value() + "  " + s.Help.Render("/ edit") + "\n\n")
	default:
		sb.WriteString(s.Help.Render("/ filter  y copy row") + "\n\n")
	}

	var header []string
	var rows [][]string
	if m.Table == TableOrders {
		header = output.OrderColumns
		for _, o := range m.filteredOrders() {
			rows = append(rows, output.OrderCells(o))
		}
	} else {
		header = output.UserColumns
		for _, u := range m.filteredUsers() {
			rows = append(rows, output.UserCells(u))
		}
	}
	if len(rows) == 0 {
		sb.WriteString(s.Subtle.Render("  No results."))
		return sb.String()
	}

	lines := output.AlignColumns(header, rows)
	sb.WriteString("  " + s.Title.Render(lines[0]) + "\n")
	for i, line := range lines[1:] {
		sb.WriteString(m.row(i, line) + "\n")
	}
	return sb.String()
}

func (m Model) renderButtons(width int) string {
	s := m.styles()
	var sb strings.Builder
	sb.WriteString(m.pageHeader("Button Components",
		"Explore different button variants, sizes, and states."))

	for i, b := range demoButtons {
		style := s.Button[b.Variant]
		if b.Disabled {
			style = style.Faint(true)
		}
		label := style.Render(b.Label)
		note := s.Subtle.Render("variant='" + b.Variant + "'")
		if b.Disabled {
			note += s.Subtle.Render(" disabled")
		}
		sb.WriteString(m.row(i, label+" "+note) + "\n")
	}
	if m.Pending != "" {
		sb.WriteString("\n" + m.Spinner.View() + " Loading...")
	}
	return sb.String()
}

func (m Model) renderSettings(width int) string {
	s := m.styles()
	var sb strings.Builder
	title := m.Nav.Title(m.Path)
	if title == m.Path {
		title = m.Route.Title
	}
	sb.WriteString(m.pageHeader(title, m.Route.Blurb))

	sidebar := "Expanded"
	if m.collapsed() {
		sidebar = "Icons only"
	}
	lang := m.Prefs.Language.Get().Option()
	rows := []string{
		fmt.Sprintf("Theme      %s", s.Active.Render(m.Prefs.Theme.Get().Label())),
		fmt.Sprintf("Language   %s", s.Active.Render(lang.Flag+" "+lang.Name)),
		fmt.Sprintf("Sidebar    %s", s.Active.Render(sidebar)),
	}
	sb.WriteString(s.Section.Render("PREFERENCES") + "\n")
	for i, r := range rows {
		sb.WriteString(m.row(i, r) + "\n")
	}
	return sb.String()
}

func (m Model) renderHelpPage(width int) string {
	s := m.styles()
	return m.renderMarkdown("help", helpMarkdown, width) + "\n" +
		s.Section.Render("KEYBOARD SHORTCUTS") + s.Help.Render(m.Keymap.GenerateHelp())
}

func (m Model) renderActivity(width int) string {
	s := m.styles()
	var sb strings.Builder
	sb.WriteString(m.pageHeader("User Activity", "Recent sign-ins and sign-outs on this workspace"))
	switch {
	case m.Events == nil:
		sb.WriteString(s.Subtle.Render("Session history is not recorded by this store."))
	case m.ActivityErr != nil:
		sb.WriteString(s.Error.Render("Could not load activity: " + m.ActivityErr.Error()))
	case len(m.Activity) == 0:
		sb.WriteString(s.Subtle.Render("No activity yet."))
	default:
		for i, ev := range m.Activity {
			sb.WriteString(m.row(i, output.FormatEvent(ev)) + "\n")
		}
	}
	return sb.String()
}

func (m Model) renderPlaceholder(width int) string {
	s := m.styles()
	title := m.Nav.Title(m.Path)
	if title == m.Path {
		title = m.Route.Title
	}
	var desc string
	if item, ok := m.Nav.Find(m.Path); ok {
		desc = item.Metadata.Description
	}
	blurb := m.Route.Blurb
	if blurb == "" {
		blurb = "This page is coming soon..."
	}
	return m.pageHeader(title, desc) + s.Subtle.Render(wordwrap.String(blurb, width))
}

// renderNotFound is drawn full screen, outside the shell chrome
func (m Model) renderNotFound() string {
	s := m.styles()
	var sb strings.Builder
	sb.WriteString(s.Subtle.Render("404") + "\n\n")
	sb.WriteString(s.Title.Render("Page Not Found") + "\n")
	sb.WriteString(s.Subtle.Render("The page you're looking for doesn't exist or has been moved.") + "\n")
	sb.WriteString(s.Subtle.Render(m.Path) + "\n\n")
	for i, l := range notFoundLinks {
		sb.WriteString(m.row(i, l.Title) + "\n")
	}
	return s.Modal.Render(strings.TrimRight(sb.String(), "\n"))
}

// renderMarkdown renders text with glamour for the active theme, caching
// the output per width.
func (m Model) renderMarkdown(key, text string, width int) string {
	style := output.MarkdownLight
	if m.styles().Palette == darkPalette {
		style = output.MarkdownDark
	}
	cacheKey := fmt.Sprintf("%s:%d:%s", key, width, style)
	if cached, ok := m.markdown[cacheKey]; ok {
		return cached
	}
	rendered, err := output.RenderMarkdown(text, width, style)
	if err != nil {
		m.Logger.Debug("render markdown", "page", key, "err", err)
		rendered = wordwrap.String(text, width)
	}
	if m.markdown != nil {
		m.markdown[cacheKey] = rendered
	}
	return rendered
}
