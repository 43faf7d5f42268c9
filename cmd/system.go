package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/marcus/dash/internal/config"
	"github.com/marcus/dash/internal/db"
	"github.com/marcus/dash/internal/output"
	"github.com/marcus/dash/pkg/shell/keymap"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:     "info",
	Short:   "Show workspace configuration and storage",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		store := config.StoreBackend(cfg)
		schema := 0
		if a.db != nil {
			schema, _ = a.db.GetSchemaVersion()
		}
		navFile := "(built-in)"
		if cfg.NavFile != "" {
			navFile = cfg.NavFile
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			result := map[string]interface{}{
				"workspace":      getBaseDir(),
				"store":          store,
				"schema_version": schema,
				"delay_scale":    config.DelayScale(cfg),
				"log_level":      config.LogLevel(cfg),
				"nav_file":       navFile,
				"brand":          a.nav.Brand,
				"menu_items":     len(a.nav.Items()),
				"signed_in":      a.session.IsAuthenticated(),
			}
			return output.JSON(result)
		}

		fmt.Printf("Workspace:   %s\n", getBaseDir())
		fmt.Printf("Store:       %s\n", store)
		if a.db != nil {
			rel, _ := filepath.Rel(getBaseDir(), db.Path(getBaseDir()))
			fmt.Printf("Database:    %s (schema v%d)\n", rel, schema)
		}
		fmt.Printf("Delay scale: %g\n", config.DelayScale(cfg))
		fmt.Printf("Log level:   %s\n", config.LogLevel(cfg))
		fmt.Printf("Key config:  %s\n", keymap.ConfigPath(getBaseDir()))
		fmt.Println()
		fmt.Printf("Brand:       %s %s\n", a.nav.Brand.Name, a.nav.Brand.FullName)
		fmt.Printf("Navigation:  %s, %d sections, %d items\n", navFile, len(a.nav.Sections), len(a.nav.Items()))
		fmt.Printf("Session:     %s\n", output.FormatUser(a.session.User()))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version",
	GroupID: "system",
	Run: func(cmd *cobra.Command, args []string) {
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Print(version)
			return
		}
		fmt.Printf("dash version %s\n", version)
	},
}

func init() {
	addJSONFlag(infoCmd.Flags())
	versionCmd.Flags().Bool("short", false, "Print the version only")

	rootCmd.AddCommand(infoCmd, versionCmd)
}
