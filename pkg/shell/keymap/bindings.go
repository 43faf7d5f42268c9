package keymap

// DefaultBindings returns the default key bindings of the shell
func DefaultBindings() []Binding {
	return []Binding{
		// Global
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},

		// Signed-in shell (sidebar and content inherit these)
		{Key: "q", Command: CmdQuit, Context: ContextMain, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextMain, Description: "Toggle help"},
		{Key: "tab", Command: CmdFocusNext, Context: ContextMain, Description: "Switch sidebar / content"},
		{Key: "shift+tab", Command: CmdFocusNext, Context: ContextMain, Description: "Switch sidebar / content"},
		{Key: "[", Command: CmdToggleSidebar, Context: ContextMain, Description: "Collapse / expand sidebar"},
		{Key: "ctrl+k", Command: CmdOpenSearch, Context: ContextMain, Description: "Search pages"},
		{Key: "T", Command: CmdThemePicker, Context: ContextMain, Description: "Theme"},
		{Key: "L", Command: CmdLanguagePicker, Context: ContextMain, Description: "Language"},
		{Key: "U", Command: CmdUserMenu, Context: ContextMain, Description: "User menu"},
		{Key: "x", Command: CmdDismiss, Context: ContextMain, Description: "Dismiss notification"},
		{Key: "g d", Command: CmdGoDashboard, Context: ContextMain, Description: "Go to dashboard"},
		{Key: "g p", Command: CmdGoProfile, Context: ContextMain, Description: "Go to profile"},
		{Key: "g s", Command: CmdGoSettings, Context: ContextMain, Description: "Go to settings"},
		{Key: "g h", Command: CmdGoHelp, Context: ContextMain, Description: "Go to help"},
		{Key: "backspace", Command: CmdBack, Context: ContextMain, Description: "Previous page"},

		// Sidebar
		{Key: "j", Command: CmdCursorDown, Context: ContextSidebar, Description: "Move down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextSidebar, Description: "Move down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextSidebar, Description: "Move up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextSidebar, Description: "Move up"},
		{Key: "g g", Command: CmdCursorTop, Context: ContextSidebar, Description: "Go to top"},
		{Key: "G", Command: CmdCursorBottom, Context: ContextSidebar, Description: "Go to bottom"},
		{Key: "enter", Command: CmdSelect, Context: ContextSidebar, Description: "Open page / expand group"},
		{Key: "space", Command: CmdSelect, Context: ContextSidebar, Description: "Open page / expand group"},
		{Key: "l", Command: CmdSelect, Context: ContextSidebar, Description: "Open page / expand group"},

		// Content
		{Key: "j", Command: CmdCursorDown, Context: ContextContent, Description: "Next row / card"},
		{Key: "down", Command: CmdCursorDown, Context: ContextContent, Description: "Next row / card"},
		{Key: "k", Command: CmdCursorUp, Context: ContextContent, Description: "Previous row / card"},
		{Key: "up", Command: CmdCursorUp, Context: ContextContent, Description: "Previous row / card"},
		{Key: "g g", Command: CmdCursorTop, Context: ContextContent, Description: "First row"},
		{Key: "G", Command: CmdCursorBottom, Context: ContextContent, Description: "Last row"},
		{Key: "enter", Command: CmdSelect, Context: ContextContent, Description: "Activate"},
		{Key: "/", Command: CmdFilter, Context: ContextContent, Description: "Filter table"},
		{Key: "]", Command: CmdNextTable, Context: ContextContent, Description: "Switch table"},
		{Key: "y", Command: CmdCopyRow, Context: ContextContent, Description: "Copy row"},
		{Key: "e", Command: CmdEdit, Context: ContextContent, Description: "Edit"},
		{Key: "n", Command: CmdNewEntry, Context: ContextContent, Description: "New question / project"},

		// Table filter input
		{Key: "enter", Command: CmdFilterDone, Context: ContextFilter, Description: "Keep filter"},
		{Key: "esc", Command: CmdFilterQuit, Context: ContextFilter, Description: "Clear filter"},

		// Page search
		{Key: "enter", Command: CmdConfirm, Context: ContextSearch, Description: "Open page"},
		{Key: "esc", Command: CmdCancel, Context: ContextSearch, Description: "Close search"},
		{Key: "down", Command: CmdCursorDown, Context: ContextSearch, Description: "Next match"},
		{Key: "ctrl+n", Command: CmdCursorDown, Context: ContextSearch, Description: "Next match"},
		{Key: "up", Command: CmdCursorUp, Context: ContextSearch, Description: "Previous match"},
		{Key: "ctrl+p", Command: CmdCursorUp, Context: ContextSearch, Description: "Previous match"},

		// Pickers and menus
		{Key: "j", Command: CmdCursorDown, Context: ContextPicker, Description: "Next option"},
		{Key: "down", Command: CmdCursorDown, Context: ContextPicker, Description: "Next option"},
		{Key: "k", Command: CmdCursorUp, Context: ContextPicker, Description: "Previous option"},
		{Key: "up", Command: CmdCursorUp, Context: ContextPicker, Description: "Previous option"},
		{Key: "enter", Command: CmdConfirm, Context: ContextPicker, Description: "Choose"},
		{Key: "esc", Command: CmdCancel, Context: ContextPicker, Description: "Close"},
		{Key: "q", Command: CmdCancel, Context: ContextPicker, Description: "Close"},

		// Modal forms
		{Key: "esc", Command: CmdCancel, Context: ContextForm, Description: "Discard form"},

		// Sign-in pages
		{Key: "ctrl+g", Command: CmdGoogleLogin, Context: ContextAuth, Description: "Continue with Google"},
		{Key: "ctrl+o", Command: CmdGitHubLogin, Context: ContextAuth, Description: "Continue with GitHub"},
		{Key: "ctrl+r", Command: CmdGoRegister, Context: ContextAuth, Description: "Create an account"},
		{Key: "ctrl+l", Command: CmdGoLogin, Context: ContextAuth, Description: "Back to sign in"},
		{Key: "ctrl+f", Command: CmdGoForgotPass, Context: ContextAuth, Description: "Forgot password"},

		// Help overlay
		{Key: "?", Command: CmdToggleHelp, Context: ContextHelp, Description: "Close help"},
		{Key: "esc", Command: CmdToggleHelp, Context: ContextHelp, Description: "Close help"},
		{Key: "q", Command: CmdToggleHelp, Context: ContextHelp, Description: "Close help"},
	}
}

// RegisterDefaults registers the default bindings and context hierarchy
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
	r.SetParent(ContextSidebar, ContextMain)
	r.SetParent(ContextContent, ContextMain)
}

// TextEntry reports whether printable keys in ctx belong to an input widget
// rather than the registry.
func TextEntry(ctx Context) bool {
	switch ctx {
	case ContextFilter, ContextSearch, ContextForm, ContextAuth:
		return true
	}
	return false
}
