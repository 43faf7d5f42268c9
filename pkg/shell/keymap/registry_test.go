package keymap

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLookup(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	tests := []struct {
		name    string
		key     tea.KeyMsg
		context Context
		want    Command
		found   bool
	}{
		{"quit with q in sidebar (inherited)", runes("q"), ContextSidebar, CmdQuit, true},
		{"cursor down with j in sidebar", runes("j"), ContextSidebar, CmdCursorDown, true},
		{"filter with / in content", runes("/"), ContextContent, CmdFilter, true},
		{"slash means nothing in sidebar", runes("/"), ContextSidebar, "", false},
		{"ctrl+c quits anywhere", tea.KeyMsg{Type: tea.KeyCtrlC}, ContextForm, CmdQuit, true},
		{"esc cancels picker", tea.KeyMsg{Type: tea.KeyEsc}, ContextPicker, CmdCancel, true},
		{"enter confirms search", tea.KeyMsg{Type: tea.KeyEnter}, ContextSearch, CmdConfirm, true},
		{"q does not quit from a form", runes("q"), ContextForm, "", false},
		{"ctrl+g on sign-in", tea.KeyMsg{Type: tea.KeyCtrlG}, ContextAuth, CmdGoogleLogin, true},
		{"space selects in sidebar", tea.KeyMsg{Type: tea.KeySpace}, ContextSidebar, CmdSelect, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := r.Lookup(tt.key, tt.context)
			if found != tt.found || got != tt.want {
				t.Errorf("Lookup() = %q,%v want %q,%v", got, found, tt.want, tt.found)
			}
		})
	}
}

func TestSequence(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if _, found := r.Lookup(runes("g"), ContextSidebar); found {
		t.Fatal("first g should be pending")
	}
	if r.PendingKey() != "g" {
		t.Errorf("PendingKey = %q", r.PendingKey())
	}
	cmd, found := r.Lookup(runes("d"), ContextSidebar)
	if !found || cmd != CmdGoDashboard {
		t.Errorf("g d = %q,%v want go-dashboard", cmd, found)
	}

	r.Lookup(runes("g"), ContextContent)
	if cmd, _ := r.Lookup(runes("g"), ContextContent); cmd != CmdCursorTop {
		t.Errorf("g g = %q, want cursor-top", cmd)
	}
}

func TestSequenceTimeout(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	now := time.Now()
	r.now = func() time.Time { return now }

	r.Lookup(runes("g"), ContextSidebar)
	now = now.Add(time.Second)

	// The stale g is dropped and this g starts a new sequence
	if _, found := r.Lookup(runes("g"), ContextSidebar); found {
		t.Error("sequence should not complete after timeout")
	}
	if r.PendingKey() != "g" {
		t.Error("second g should be pending")
	}
}

func TestUserOverride(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	r.SetUserOverride(ContextMain, "j", CmdQuit)
	// Overrides anywhere in the context chain win over default bindings
	if cmd, _ := r.Lookup(runes("j"), ContextSidebar); cmd != CmdQuit {
		t.Errorf("override not applied, got %q", cmd)
	}
	if cmd, _ := r.Lookup(runes("j"), ContextPicker); cmd != CmdCursorDown {
		t.Errorf("override leaked into picker, got %q", cmd)
	}
}

func TestKeyForCommand(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	if got := r.KeyForCommand(CmdOpenSearch, ContextSidebar); got != "ctrl+k" {
		t.Errorf("KeyForCommand = %q", got)
	}
	if got := r.KeyForCommand(CmdGoogleLogin, ContextSidebar); got != "" {
		t.Errorf("auth binding visible from sidebar: %q", got)
	}
}

func TestKeyToString(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{runes("j"), "j"},
		{tea.KeyMsg{Type: tea.KeyCtrlK}, "ctrl+k"},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, "shift+tab"},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, "alt+x"},
	}
	for _, tt := range tests {
		if got := KeyToString(tt.key); got != tt.want {
			t.Errorf("KeyToString(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestTextEntryAndPrintable(t *testing.T) {
	if !TextEntry(ContextSearch) || TextEntry(ContextSidebar) {
		t.Error("TextEntry classification wrong")
	}
	if !IsPrintable(runes("a")) || IsPrintable(tea.KeyMsg{Type: tea.KeyEnter}) {
		t.Error("IsPrintable classification wrong")
	}
}

func TestGenerateHelp(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	help := r.GenerateHelp()

	for _, want := range []string{"SIDEBAR:", "j / down", "Search pages", "SIGN-IN PAGES:"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q", want)
		}
	}
}
