package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/dash/internal/metrics"
	"github.com/marcus/dash/internal/output"
	"github.com/marcus/dash/internal/router"
	"github.com/marcus/dash/pkg/shell"
	"github.com/marcus/dash/pkg/shell/keymap"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive dashboard",
	Long: `Launch the dashboard shell:
- Top bar: brand, page search, theme and language, user menu
- Sidebar: sections and items, collapsible with [
- Content: the page of the current route

Key bindings:
  Tab          Switch sidebar / content
  j/k          Move
  Enter        Open page / expand group / activate
  ctrl+k       Search pages
  T / L / U    Theme, language, user menu
  g d/p/s/h    Go to dashboard, profile, settings, help
  Backspace    Previous page
  ?            Toggle help
  q            Quit`,
	Aliases: []string{"ui"},
	GroupID: "browse",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

func addShellFlags(c *cobra.Command) {
	c.Flags().String("path", router.HomePath, "Start path")
	c.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

func init() {
	addShellFlags(shellCmd)
	rootCmd.AddCommand(shellCmd)
}

// runShell opens the workspace and runs the Bubble Tea program until quit
func runShell(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		err := errors.New("the shell needs an interactive terminal")
		output.Error("%v", err)
		return err
	}

	a, err := openApp()
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer a.Close()

	registry := keymap.NewRegistry()
	keymap.RegisterDefaults(registry)
	if kc, err := keymap.LoadConfig(keymap.ConfigPath(getBaseDir())); err != nil {
		output.Warning("ignoring key bindings: %v", err)
	} else if skipped := keymap.ApplyConfig(registry, kc); len(skipped) > 0 {
		a.logger.Warn("unknown key bindings skipped", "bindings", skipped)
	}

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		stop := serveMetrics(addr, a.registry, a.logger)
		defer stop()
	}

	start, _ := cmd.Flags().GetString("path")
	opts := shell.Options{
		Nav:        a.nav,
		Router:     router.Default(),
		Prefs:      a.prefs,
		Session:    a.session,
		Metrics:    a.metrics,
		Keymap:     registry,
		Logger:     a.logger,
		StartPath:  start,
		SystemDark: lipgloss.HasDarkBackground(),
	}
	if a.db != nil {
		opts.Events = a.db
	}

	p := tea.NewProgram(shell.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running shell: %w", err)
	}
	return nil
}

// serveMetrics exposes the registry on addr until the returned stop is called
func serveMetrics(addr string, gatherer prometheus.Gatherer, logger *slog.Logger) (stop func()) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.Handler(gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "addr", addr, "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
