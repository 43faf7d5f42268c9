package shell

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/dash/internal/menu"
	"github.com/marcus/dash/internal/router"
	"github.com/marcus/dash/internal/session"
	"github.com/marcus/dash/pkg/shell/keymap"
)

// handleKey processes key input using the centralized keymap registry
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.currentContext()

	switch ctx {
	case keymap.ContextSearch:
		if cmd, found := m.Keymap.Lookup(msg, ctx); found {
			return m.executeCommand(cmd)
		}
		var inputCmd tea.Cmd
		m.SearchInput, inputCmd = m.SearchInput.Update(msg)
		m.refreshSearch()
		return m, inputCmd

	case keymap.ContextFilter:
		if cmd, found := m.Keymap.Lookup(msg, ctx); found {
			return m.executeCommand(cmd)
		}
		var inputCmd tea.Cmd
		m.FilterInput, inputCmd = m.FilterInput.Update(msg)
		m.clampContentCursor()
		return m, inputCmd

	case keymap.ContextAuth:
		if cmd, found := m.Keymap.Lookup(msg, ctx); found {
			return m.executeCommand(cmd)
		}
		if msg.Type == tea.KeyEsc && m.Pending != "" {
			m.cancelSession()
			return m, nil
		}
		return m.updateAuthForm(msg)
	}

	cmd, found := m.Keymap.Lookup(msg, ctx)
	if !found {
		return m, nil
	}
	return m.executeCommand(cmd)
}

// executeCommand runs a keymap command against the current state
func (m Model) executeCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	ctx := m.currentContext()

	switch cmd {
	case keymap.CmdQuit:
		m.cancelSession()
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		if m.Overlay == OverlayHelp {
			m.Overlay = OverlayNone
		} else {
			m.Overlay = OverlayHelp
		}
		return m, nil

	case keymap.CmdToggleSidebar:
		m.Prefs.SidebarCollapsed.Set(!m.collapsed())
		m.syncSidebarCursor()
		return m, nil

	case keymap.CmdFocusNext:
		if m.Focus == FocusSidebar {
			m.Focus = FocusContent
		} else {
			m.Focus = FocusSidebar
		}
		return m, nil

	case keymap.CmdOpenSearch:
		m.Overlay = OverlaySearch
		m.SearchInput.SetValue("")
		m.refreshSearch()
		return m, tea.Batch(m.SearchInput.Focus(), textinput.Blink)

	case keymap.CmdThemePicker:
		m.openThemePicker()
		return m, nil

	case keymap.CmdLanguagePicker:
		m.openLanguagePicker()
		return m, nil

	case keymap.CmdUserMenu:
		if m.Session.IsAuthenticated() {
			m.Overlay = OverlayUserMenu
			m.PickerCursor = 0
		}
		return m, nil

	case keymap.CmdDismiss:
		m.StatusMessage = ""
		m.StatusIsError = false
		return m, nil

	case keymap.CmdGoDashboard:
		return m, m.navigate(router.HomePath)
	case keymap.CmdGoProfile:
		return m, m.navigate(router.ProfilePath)
	case keymap.CmdGoSettings:
		return m, m.navigate("/settings")
	case keymap.CmdGoHelp:
		return m, m.navigate("/help")
	case keymap.CmdBack:
		return m, m.back()

	case keymap.CmdCursorDown, keymap.CmdCursorUp, keymap.CmdCursorTop, keymap.CmdCursorBottom:
		m.moveCursor(ctx, cmd)
		return m, nil

	case keymap.CmdSelect:
		if ctx == keymap.ContextSidebar {
			return m, m.activateSidebar()
		}
		return m, m.activateContent()

	case keymap.CmdConfirm:
		switch ctx {
		case keymap.ContextSearch:
			return m, m.openSearchMatch()
		case keymap.ContextPicker:
			return m, m.confirmPicker()
		}
		return m, nil

	case keymap.CmdCancel:
		switch m.Overlay {
		case OverlaySearch:
			m.SearchInput.Blur()
		case OverlayForm:
			m.Form = nil
		}
		m.Overlay = OverlayNone
		return m, nil

	case keymap.CmdFilter:
		if m.Route.Page != router.PageTables {
			return m, nil
		}
		m.Filtering = true
		return m, tea.Batch(m.FilterInput.Focus(), textinput.Blink)

	case keymap.CmdFilterDone:
		m.Filtering = false
		m.FilterInput.Blur()
		return m, nil

	case keymap.CmdFilterQuit:
		m.Filtering = false
		m.FilterInput.Blur()
		m.FilterInput.SetValue("")
		m.clampContentCursor()
		return m, nil

	case keymap.CmdNextTable:
		if m.Route.Page == router.PageTables {
			m.Table = (m.Table + 1) % 2
			m.ContentCursor = 0
		}
		return m, nil

	case keymap.CmdCopyRow:
		if m.Route.Page == router.PageTables {
			return m.copySelectedRow()
		}
		return m, nil

	case keymap.CmdEdit:
		if m.Route.Page == router.PageProfile {
			return m, m.editProfile()
		}
		return m, nil

	case keymap.CmdNewEntry:
		if m.Route.Page == router.PageAskQuestions {
			if m.ContentCursor == 1 {
				return m, m.openForm(NewFormState(FormProject))
			}
			return m, m.openForm(NewFormState(FormQuestion))
		}
		return m, nil

	case keymap.CmdGoogleLogin:
		return m, m.providerLogin(session.ProviderGoogle)
	case keymap.CmdGitHubLogin:
		return m, m.providerLogin(session.ProviderGitHub)
	case keymap.CmdGoRegister:
		return m, m.authNavigate(router.RegisterPath)
	case keymap.CmdGoLogin:
		return m, m.authNavigate(router.LoginPath)
	case keymap.CmdGoForgotPass:
		return m, m.authNavigate(router.ForgotPasswordPath)
	}

	return m, nil
}

// authNavigate moves between sign-in pages unless an operation is pending
func (m *Model) authNavigate(path string) tea.Cmd {
	if m.Pending != "" {
		return nil
	}
	return m.navigate(path)
}

// moveCursor applies a cursor command to the list owned by ctx
func (m *Model) moveCursor(ctx keymap.Context, cmd keymap.Command) {
	var cursor *int
	var n int
	switch ctx {
	case keymap.ContextSearch:
		cursor, n = &m.SearchCursor, len(m.SearchMatches)
	case keymap.ContextPicker:
		cursor, n = &m.PickerCursor, m.pickerLen()
	case keymap.ContextSidebar:
		cursor, n = &m.SidebarCursor, len(m.menuTree().Rows())
	default:
		cursor, n = &m.ContentCursor, m.contentRows()
	}

	switch cmd {
	case keymap.CmdCursorDown:
		*cursor++
	case keymap.CmdCursorUp:
		*cursor--
	case keymap.CmdCursorTop:
		*cursor = 0
	case keymap.CmdCursorBottom:
		*cursor = n - 1
	}
	*cursor = clamp(*cursor, n)
}

// activateSidebar applies a click on the row under the cursor
func (m *Model) activateSidebar() tea.Cmd {
	rows := m.menuTree().Rows()
	if len(rows) == 0 {
		return nil
	}
	item := rows[clamp(m.SidebarCursor, len(rows))]
	action := menu.Activate(item, m.collapsed(), m.Expansion)
	if action.Kind == menu.ActionToggle {
		// keep the cursor on the toggled parent
		if i := rowIndex(m.menuTree().Rows(), item.ID); i >= 0 {
			m.SidebarCursor = i
		}
		return nil
	}
	return m.navigate(action.Path)
}

func rowIndex(rows []menu.Item, id string) int {
	for i, r := range rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}
