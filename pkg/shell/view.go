package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/dash/internal/menu"
	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/nav"
	"github.com/marcus/dash/internal/router"
	"github.com/marcus/dash/pkg/shell/keymap"
)

const (
	defaultWidth  = 100
	defaultHeight = 30

	sidebarWidth          = 30
	collapsedSidebarWidth = 7
)

// View implements tea.Model
func (m Model) View() string {
	width, height := m.size()

	if m.Overlay != OverlayNone {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.renderOverlay(width))
	}

	switch {
	case m.Route.Page == router.PageNotFound:
		body := m.renderNotFound()
		footer := m.renderFooter(width)
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.Place(width, height-lipgloss.Height(footer), lipgloss.Center, lipgloss.Center, body),
			footer)
	case m.isAuthPage():
		return m.renderAuthPage(width, height)
	}
	return m.renderShell(width, height)
}

func (m Model) size() (int, int) {
	width, height := m.Width, m.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// renderShell draws the signed-in layout: top bar, sidebar, content, footer
func (m Model) renderShell(width, height int) string {
	s := m.styles()
	topBar := m.renderTopBar(width)
	footer := m.renderFooter(width)
	bodyHeight := max(height-lipgloss.Height(topBar)-lipgloss.Height(footer), 5)

	sidebar := m.renderSidebar(bodyHeight)
	contentWidth := max(width-lipgloss.Width(sidebar), 20)

	// border (2) plus horizontal padding (2)
	inner := contentWidth - 4
	page := m.renderPage(inner)
	title := s.PanelTitle.Render(m.pageTitle())
	content := clipLines(title+"\n\n"+page, bodyHeight-2)

	panel := s.Panel
	if m.Focus == FocusContent {
		panel = s.ActivePanel
	}
	contentPanel := panel.Width(contentWidth - 2).Height(bodyHeight - 2).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		topBar,
		lipgloss.JoinHorizontal(lipgloss.Top, sidebar, contentPanel),
		footer,
	)
}

// pageTitle is the heading of the content panel
func (m Model) pageTitle() string {
	if title := m.Nav.Title(m.Path); title != m.Path {
		return title
	}
	return m.Route.Title
}

func (m Model) renderTopBar(width int) string {
	s := m.styles()

	toggle := "≡"
	if m.collapsed() {
		toggle = "☰"
	}
	left := s.Subtle.Render(toggle) + " " + s.Brand.Render(m.Nav.Brand.Name)
	if m.Nav.Brand.FullName != "" && !m.collapsed() {
		left += " " + s.Subtle.Render(m.Nav.Brand.FullName)
	}

	search := s.Subtle.Render("⌕ Search pages... " + m.Keymap.KeyForCommand(keymap.CmdOpenSearch, keymap.ContextMain))

	lang := m.Prefs.Language.Get().Option()
	right := []string{
		s.Subtle.Render("◐ " + m.Prefs.Theme.Get().Label()),
		lang.Flag + " " + strings.ToUpper(string(lang.Code)),
	}
	if m.Pending != "" {
		right = append([]string{m.Spinner.View()}, right...)
	}
	if u := m.Session.User(); u != nil {
		right = append(right, s.Badge.Render("("+u.Initials()+")")+" "+u.Name)
	}
	rightStr := strings.Join(right, "  ")

	// inner width excludes the horizontal padding of the bar
	inner := width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(search) - lipgloss.Width(rightStr)
	var line string
	if gap >= 4 {
		lpad := gap / 2
		line = left + strings.Repeat(" ", lpad) + search + strings.Repeat(" ", gap-lpad) + rightStr
	} else {
		gap = max(inner-lipgloss.Width(left)-lipgloss.Width(rightStr), 1)
		line = ansi.Truncate(left+strings.Repeat(" ", gap)+rightStr, inner, "…")
	}
	return s.TopBar.Width(width).Render(line)
}

// renderSidebar draws the navigation menu for the current route and mode
func (m Model) renderSidebar(height int) string {
	s := m.styles()
	tree := m.menuTree()

	width := sidebarWidth
	if tree.Collapsed {
		width = collapsedSidebarWidth
	}
	inner := width - 4

	var lines []string
	row := 0
	for _, sec := range tree.Sections {
		if !tree.Collapsed {
			lines = append(lines, s.Section.Render(ansi.Truncate(strings.ToUpper(sec.Title), inner, "…")))
		}
		for _, item := range sec.Items {
			lines = append(lines, m.sidebarLine(item, row, tree.Collapsed, inner))
			row++
			for _, child := range item.Children {
				lines = append(lines, m.sidebarLine(child, row, false, inner))
				row++
			}
		}
		if !tree.Collapsed {
			lines = append(lines, "")
		}
	}

	body := clipAround(lines, m.sidebarCursorLine(tree), height-2)
	panel := s.Panel
	if m.Focus == FocusSidebar {
		panel = s.ActivePanel
	}
	return panel.Width(width - 2).Height(height - 2).Render(strings.Join(body, "\n"))
}

// sidebarCursorLine maps the sidebar cursor to its line, counting headers
func (m Model) sidebarCursorLine(tree menu.Tree) int {
	line, row := 0, 0
	for _, sec := range tree.Sections {
		if !tree.Collapsed {
			line++
		}
		for _, item := range sec.Items {
			for range 1 + len(item.Children) {
				if row == m.SidebarCursor {
					return line
				}
				row++
				line++
			}
		}
		if !tree.Collapsed {
			line++
		}
	}
	return 0
}

func (m Model) sidebarLine(item menu.Item, row int, collapsed bool, width int) string {
	s := m.styles()
	selected := m.Focus == FocusSidebar && row == m.SidebarCursor

	glyph := nav.Glyph(item.Icon)
	if collapsed {
		line := " " + glyph
		if item.Badge != "" || item.IsNew {
			line += s.Badge.Render("•")
		}
		switch {
		case selected:
			return s.Selected.Render(line)
		case item.Highlight:
			return s.Active.Render(line)
		}
		return line
	}

	chevron := " "
	if item.Expandable {
		chevron = "▸"
		if item.Expanded {
			chevron = "▾"
		}
	}
	var tags []string
	if item.Badge != "" {
		tags = append(tags, s.Badge.Render(item.Badge))
	}
	if item.IsNew {
		tags = append(tags, s.New.Render("New"))
	}
	suffix := strings.Join(tags, " ")

	indent := strings.Repeat("  ", item.Depth)
	labelWidth := width - lipgloss.Width(indent) - 4 - lipgloss.Width(suffix)
	label := indent + glyph + " " + ansi.Truncate(item.DisplayName, max(labelWidth, 3), "…")

	switch {
	case selected:
		label = s.Selected.Render(label)
	case item.IsActive:
		label = s.Active.Render(label)
	case item.Highlight:
		label = s.Title.Render(label)
	}
	line := label
	if suffix != "" {
		line += " " + suffix
	}
	if item.Expandable {
		pad := width - lipgloss.Width(line) - 1
		line += strings.Repeat(" ", max(pad, 1)) + s.Subtle.Render(chevron)
	}
	return line
}

func (m Model) renderFooter(width int) string {
	s := m.styles()
	if m.StatusMessage != "" {
		style := s.Success
		if m.StatusIsError {
			style = s.Error
		}
		msg := ansi.Truncate(m.StatusMessage, max(width-16, 10), "…")
		return style.Render(" "+msg) + s.Help.Render("  x dismiss")
	}

	if pending := m.Keymap.PendingKey(); pending != "" {
		return s.Help.Render(" " + pending + "-")
	}

	var hints string
	switch m.currentContext() {
	case keymap.ContextSidebar:
		hints = "j/k move  enter open  [ collapse  tab page  ctrl+k search  ? help  q quit"
	case keymap.ContextFilter:
		hints = "type to filter  enter keep  esc clear"
	case keymap.ContextContent:
		hints = m.contentHints()
	default:
		hints = "? help  q quit"
	}
	return s.Help.Render(" " + ansi.Truncate(hints, max(width-2, 10), "…"))
}

func (m Model) contentHints() string {
	base := "tab sidebar  ? help  q quit"
	switch m.Route.Page {
	case router.PageTables:
		return "j/k row  / filter  ] table  y copy  " + base
	case router.PageProfile:
		return "e edit  " + base
	case router.PageAskQuestions:
		return "enter open  n new  " + base
	case router.PageNotFound:
		return "enter choose  q quit"
	}
	if m.contentRows() > 0 {
		return "j/k move  enter open  " + base
	}
	return base
}

// renderAuthPage draws a sign-in page centered on screen
func (m Model) renderAuthPage(width, height int) string {
	s := m.styles()
	a := m.Auth
	var sb strings.Builder

	sb.WriteString(s.Brand.Render(m.Nav.Brand.Name) + "\n")
	if m.Nav.Brand.FullName != "" {
		sb.WriteString(s.Subtle.Render(m.Nav.Brand.FullName) + "\n")
	}
	sb.WriteString("\n")

	switch {
	case a == nil:
	case a.Sent:
		sb.WriteString(s.Success.Render("✓ Check your email") + "\n")
		sb.WriteString(fmt.Sprintf("We've sent a password reset link to %s\n", s.Title.Render(a.SentTo)))
		sb.WriteString(s.Subtle.Render("Didn't receive the email? Check your spam folder.") + "\n")
	default:
		sb.WriteString(a.Form.View() + "\n")
	}

	if m.Pending != "" {
		sb.WriteString("\n" + m.Spinner.View() + " " + pendingLabel(m.Pending) + s.Help.Render("  esc cancel") + "\n")
	}

	sb.WriteString("\n")
	var links []string
	hint := func(cmd keymap.Command, label string) {
		if key := m.Keymap.KeyForCommand(cmd, keymap.ContextAuth); key != "" {
			links = append(links, s.Help.Render(key)+" "+label)
		}
	}
	switch m.Route.Page {
	case router.PageLogin:
		hint(keymap.CmdGoogleLogin, "Continue with Google")
		hint(keymap.CmdGitHubLogin, "Continue with GitHub")
		hint(keymap.CmdGoForgotPass, "Forgot password?")
		hint(keymap.CmdGoRegister, "Don't have an account? Sign up")
	case router.PageRegister:
		hint(keymap.CmdGoogleLogin, "Sign up with Google")
		hint(keymap.CmdGitHubLogin, "Sign up with GitHub")
		hint(keymap.CmdGoLogin, "Already have an account? Sign in")
	case router.PageForgotPassword:
		hint(keymap.CmdGoLogin, "Back to sign in")
	}
	sb.WriteString(strings.Join(links, "\n"))

	card := s.Modal.Width(min(60, width-4)).Render(sb.String())
	footer := m.renderFooter(width)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.Place(width, height-lipgloss.Height(footer), lipgloss.Center, lipgloss.Center, card),
		footer)
}

func pendingLabel(op models.EventKind) string {
	switch op {
	case models.EventRegister:
		return "Creating account..."
	case models.EventRecover:
		return "Sending reset email..."
	default:
		return "Signing in..."
	}
}

// renderOverlay draws the open modal
func (m Model) renderOverlay(width int) string {
	s := m.styles()
	modalWidth := min(64, width-4)

	var body string
	switch m.Overlay {
	case OverlayHelp:
		body = s.Title.Render("Keyboard shortcuts") + "\n" + m.Keymap.GenerateHelp()

	case OverlaySearch:
		var sb strings.Builder
		sb.WriteString(m.SearchInput.View() + "\n\n")
		if len(m.SearchMatches) == 0 {
			sb.WriteString(s.Subtle.Render("No matching pages"))
		}
		for i, item := range m.SearchMatches {
			line := nav.Glyph(item.Icon) + " " + item.DisplayName + "  " + s.Subtle.Render(item.Path)
			if i == m.SearchCursor {
				line = s.Selected.Render("> " + line)
			} else {
				line = "  " + line
			}
			sb.WriteString(line + "\n")
		}
		body = strings.TrimRight(sb.String(), "\n")

	case OverlayTheme:
		current := m.Prefs.Theme.Get()
		labels := make([]string, len(models.Themes))
		for i, t := range models.Themes {
			labels[i] = t.Label()
			if t == current {
				labels[i] += " ✓"
			}
		}
		body = s.Title.Render("Theme") + "\n\n" + m.pickerList(labels)

	case OverlayLanguage:
		current := m.Prefs.Language.Get()
		labels := make([]string, len(models.Languages))
		for i, opt := range models.Languages {
			labels[i] = opt.Flag + " " + opt.Name
			if opt.Code == current {
				labels[i] += " ✓"
			}
		}
		body = s.Title.Render("Language") + "\n\n" + m.pickerList(labels)

	case OverlayUserMenu:
		var header string
		if u := m.Session.User(); u != nil {
			header = s.Title.Render(u.Name) + "\n" + s.Subtle.Render(u.Email)
		}
		labels := make([]string, len(userMenu))
		for i, e := range userMenu {
			labels[i] = e.Label
		}
		body = header + "\n\n" + m.pickerList(labels)

	case OverlayForm:
		if m.Form != nil {
			body = m.Form.Form.View() + "\n" + s.Help.Render("enter next  esc discard")
		}
	}
	return s.Modal.Width(modalWidth).Render(body)
}

func (m Model) pickerList(labels []string) string {
	s := m.styles()
	lines := make([]string, len(labels))
	for i, l := range labels {
		if i == m.PickerCursor {
			lines[i] = s.Selected.Render("> " + l)
		} else {
			lines[i] = "  " + l
		}
	}
	return strings.Join(lines, "\n")
}

// clipLines keeps the first n lines of text
func clipLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if n > 0 && len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// clipAround returns at most n lines, scrolled so line focus stays visible
func clipAround(lines []string, focus, n int) []string {
	if n <= 0 || len(lines) <= n {
		return lines
	}
	start := 0
	if focus >= n {
		start = focus - n + 1
	}
	return lines[start : start+n]
}
