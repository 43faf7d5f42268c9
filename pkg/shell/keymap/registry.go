package keymap

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const sequenceTimeout = 500 * time.Millisecond

// Context represents a UI context for keybindings
type Context string

const (
	ContextGlobal  Context = "global"
	ContextMain    Context = "main"    // signed-in shell, no overlay open
	ContextSidebar Context = "sidebar" // sidebar focused
	ContextContent Context = "content" // page content focused
	ContextFilter  Context = "filter"  // table filter input focused (text entry)
	ContextSearch  Context = "search"  // page search overlay (text entry)
	ContextPicker  Context = "picker"  // theme, language or user menu open
	ContextForm    Context = "form"    // modal form open (text entry)
	ContextAuth    Context = "auth"    // sign-in pages (text entry)
	ContextHelp    Context = "help"    // help overlay open
)

// Command represents a named command that can be triggered by key bindings
type Command string

const (
	// Global
	CmdQuit       Command = "quit"
	CmdToggleHelp Command = "toggle-help"

	// Shell
	CmdToggleSidebar  Command = "toggle-sidebar"
	CmdFocusNext      Command = "focus-next"
	CmdOpenSearch     Command = "open-search"
	CmdThemePicker    Command = "theme-picker"
	CmdLanguagePicker Command = "language-picker"
	CmdUserMenu       Command = "user-menu"
	CmdDismiss        Command = "dismiss-notification"
	CmdGoDashboard    Command = "go-dashboard"
	CmdGoProfile      Command = "go-profile"
	CmdGoSettings     Command = "go-settings"
	CmdGoHelp         Command = "go-help"
	CmdBack           Command = "back"

	// Cursor
	CmdCursorDown   Command = "cursor-down"
	CmdCursorUp     Command = "cursor-up"
	CmdCursorTop    Command = "cursor-top"
	CmdCursorBottom Command = "cursor-bottom"
	CmdSelect       Command = "select"

	// Page actions
	CmdFilter     Command = "filter"
	CmdNextTable  Command = "next-table"
	CmdCopyRow    Command = "copy-row"
	CmdEdit       Command = "edit"
	CmdNewEntry   Command = "new-entry"
	CmdFilterDone Command = "filter-done"
	CmdFilterQuit Command = "filter-clear"

	// Overlays
	CmdConfirm Command = "confirm"
	CmdCancel  Command = "cancel"

	// Auth pages
	CmdGoogleLogin  Command = "google-login"
	CmdGitHubLogin  Command = "github-login"
	CmdGoRegister   Command = "go-register"
	CmdGoLogin      Command = "go-login"
	CmdGoForgotPass Command = "go-forgot-password"
)

// Binding maps a key or key sequence to a command in a specific context
type Binding struct {
	Key         string  // e.g., "tab", "ctrl+d", "g g"
	Command     Command // Command ID
	Context     Context
	Description string // Human-readable description for help text
}

// Registry manages key bindings and command dispatch. Contexts may have a
// parent; lookups walk user overrides, then the context chain, then global.
type Registry struct {
	bindings      map[Context][]Binding
	parents       map[Context]Context
	userOverrides map[string]Command // "context:key" -> command
	pendingKey    string
	pendingTime   time.Time
	now           func() time.Time
	mu            sync.RWMutex
}

// NewRegistry creates a new keymap registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context][]Binding),
		parents:       make(map[Context]Context),
		userOverrides: make(map[string]Command),
		now:           time.Now,
	}
}

// RegisterBinding adds a key binding
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// RegisterBindings adds multiple key bindings
func (r *Registry) RegisterBindings(bindings []Binding) {
	for _, b := range bindings {
		r.RegisterBinding(b)
	}
}

// SetParent makes lookups in child fall through to parent before global
func (r *Registry) SetParent(child, parent Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parents[child] = parent
}

// SetUserOverride sets a user-configured key override for a specific context
func (r *Registry) SetUserOverride(context Context, key string, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[string(context)+":"+key] = cmd
}

// chain returns ctx followed by its ancestors, ending with global
func (r *Registry) chain(ctx Context) []Context {
	var out []Context
	seen := map[Context]bool{}
	for c := ctx; c != "" && c != ContextGlobal && !seen[c]; c = r.parents[c] {
		seen[c] = true
		out = append(out, c)
	}
	return append(out, ContextGlobal)
}

// Lookup finds the command for key in activeContext. The first key of a
// multi-key sequence returns false and is held as pending.
func (r *Registry) Lookup(key tea.KeyMsg, activeContext Context) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyStr := KeyToString(key)

	if r.pendingKey != "" {
		pending := r.pendingKey
		r.pendingKey = ""
		if r.now().Sub(r.pendingTime) < sequenceTimeout {
			if cmd, found := r.findCommand(pending+" "+keyStr, activeContext); found {
				return cmd, true
			}
		}
	}

	if r.isSequenceStart(keyStr, activeContext) {
		r.pendingKey = keyStr
		r.pendingTime = r.now()
		return "", false
	}

	return r.findCommand(keyStr, activeContext)
}

func (r *Registry) findCommand(key string, activeContext Context) (Command, bool) {
	chain := r.chain(activeContext)
	for _, ctx := range chain {
		if cmd, ok := r.userOverrides[string(ctx)+":"+key]; ok {
			return cmd, true
		}
	}
	for _, ctx := range chain {
		for _, b := range r.bindings[ctx] {
			if b.Key == key {
				return b.Command, true
			}
		}
	}
	return "", false
}

func (r *Registry) isSequenceStart(key string, activeContext Context) bool {
	prefix := key + " "
	for _, ctx := range r.chain(activeContext) {
		for _, b := range r.bindings[ctx] {
			if strings.HasPrefix(b.Key, prefix) {
				return true
			}
		}
		for k := range r.userOverrides {
			if strings.HasPrefix(k, string(ctx)+":"+prefix) {
				return true
			}
		}
	}
	return false
}

// ResetPending clears any pending key sequence
func (r *Registry) ResetPending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingKey = ""
}

// PendingKey returns the current pending key (for UI display)
func (r *Registry) PendingKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pendingKey != "" && r.now().Sub(r.pendingTime) < sequenceTimeout {
		return r.pendingKey
	}
	return ""
}

// BindingsForContext returns the bindings visible in context, nearest first
func (r *Registry) BindingsForContext(context Context) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Binding
	for _, ctx := range r.chain(context) {
		result = append(result, r.bindings[ctx]...)
	}
	return result
}

// KeyForCommand returns the first key bound to cmd in context, for hints
func (r *Registry) KeyForCommand(cmd Command, context Context) string {
	for _, b := range r.BindingsForContext(context) {
		if b.Command == cmd {
			return b.Key
		}
	}
	return ""
}

// KeyToString converts a tea.KeyMsg to a binding key string
func KeyToString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		if key.Alt {
			return "alt+" + string(key.Runes)
		}
		return string(key.Runes)
	default:
		// bubbletea names control keys the same way bindings spell them
		return key.String()
	}
}

// IsPrintable reports whether key types a single printable character
func IsPrintable(key tea.KeyMsg) bool {
	if key.Type == tea.KeySpace {
		return true
	}
	if key.Type != tea.KeyRunes || key.Alt || len(key.Runes) != 1 {
		return false
	}
	return key.Runes[0] >= ' '
}
