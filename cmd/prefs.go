package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/marcus/dash/internal/models"
	"github.com/marcus/dash/internal/output"
	"github.com/marcus/dash/internal/prefs"
	"github.com/spf13/cobra"
)

// prefValues returns the current value of every preference, keyed by name
func prefValues(set *prefs.Set) map[string]any {
	return map[string]any{
		prefs.KeyAuth:     set.Auth.Get(),
		prefs.KeyTheme:    set.Theme.Get(),
		prefs.KeyLanguage: set.Language.Get(),
		prefs.KeySidebar:  set.SidebarCollapsed.Get(),
	}
}

// setPref parses value for key and stores it. The auth key is owned by the
// session commands.
func setPref(set *prefs.Set, key, value string) error {
	switch key {
	case prefs.KeyTheme:
		theme := models.Theme(strings.ToLower(value))
		if !theme.Valid() {
			return fmt.Errorf("invalid theme %q (light, dark, system)", value)
		}
		set.Theme.Set(theme)
	case prefs.KeyLanguage:
		lang := models.Language(strings.ToLower(value))
		if !lang.Valid() {
			codes := make([]string, len(models.Languages))
			for i, opt := range models.Languages {
				codes[i] = string(opt.Code)
			}
			return fmt.Errorf("invalid language %q (%s)", value, strings.Join(codes, ", "))
		}
		set.Language.Set(lang)
	case prefs.KeySidebar:
		collapsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: want true or false", value, key)
		}
		set.SidebarCollapsed.Set(collapsed)
	case prefs.KeyAuth:
		return fmt.Errorf("%s is managed by login and logout", key)
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	return nil
}

func formatPref(v any) string {
	switch x := v.(type) {
	case models.AuthState:
		if x.IsAuthenticated && x.User != nil {
			return "signed in as " + x.User.Email
		}
		return "anonymous"
	default:
		return fmt.Sprint(x)
	}
}

var prefsCmd = &cobra.Command{
	Use:     "prefs",
	Aliases: []string{"pref"},
	Short:   "Show and change persisted preferences",
	GroupID: "prefs",
}

var prefsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		values := prefValues(a.prefs)
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(values)
		}

		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-18s %s\n", k, formatPref(values[k]))
		}
		return nil
	},
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		v, ok := prefValues(a.prefs)[args[0]]
		if !ok {
			err := fmt.Errorf("unknown preference %q", args[0])
			output.Error("%v", err)
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(v)
		}
		fmt.Println(formatPref(v))
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "Change one preference",
	Example: "  dash prefs set theme dark\n  dash prefs set sidebar true",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		if err := setPref(a.prefs, args[0], args[1]); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("%s = %s", args[0], formatPref(prefValues(a.prefs)[args[0]]))
		return nil
	},
}

func init() {
	addJSONFlag(prefsListCmd.Flags())
	addJSONFlag(prefsGetCmd.Flags())

	prefsCmd.AddCommand(prefsListCmd, prefsGetCmd, prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}
