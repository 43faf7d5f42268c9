package cmd

import (
	"fmt"

	"github.com/marcus/dash/internal/menu"
	"github.com/marcus/dash/internal/output"
	"github.com/marcus/dash/internal/router"
	"github.com/marcus/dash/internal/sample"
	"github.com/spf13/cobra"
)

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Print the sidebar menu for a path",
	Long: `Print the sidebar as the shell would draw it at --path. Groups containing
the current page are expanded. The collapsed state defaults to the persisted
sidebar preference.`,
	GroupID: "browse",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		path, _ := cmd.Flags().GetString("path")
		path = router.Clean(path)
		collapsed := a.prefs.SidebarCollapsed.Get()
		if cmd.Flags().Changed("collapsed") {
			collapsed, _ = cmd.Flags().GetBool("collapsed")
		}

		exp := menu.NewExpansion(a.nav.Sections, path)
		tree := menu.Render(a.nav.Sections, path, collapsed, exp)

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(tree)
		}
		fmt.Println(output.FormatMenu(tree, 40))
		return nil
	},
}

var routeCmd = &cobra.Command{
	Use:   "route <path>",
	Short: "Resolve a path against the route table and the current session",
	Args:  cobra.ExactArgs(1),
	Example: `  dash route /tables
  dash route /auth/login --json`,
	GroupID: "browse",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		res := router.Default().Resolve(args[0], a.session.IsAuthenticated())
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(res)
		}

		switch {
		case res.NotFound:
			fmt.Printf("%s -> not found\n", res.Requested)
		case res.Redirected:
			fmt.Printf("%s -> %s (%s, redirected by %s)\n", res.Requested, res.Path, res.Page, res.Guard)
		default:
			fmt.Printf("%s -> %s\n", res.Path, res.Page)
		}
		if title := a.nav.Title(res.Path); title != res.Path {
			fmt.Printf("title: %s\n", title)
		}
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:     "users",
	Short:   "Print the sample users table",
	GroupID: "browse",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")
		users := sample.FilterUsers(sample.Users, filter)
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(users)
		}
		fmt.Println(output.FormatUsersTable(users))
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:     "orders",
	Short:   "Print the sample orders table",
	GroupID: "browse",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")
		orders := sample.FilterOrders(sample.Orders, filter)
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(orders)
		}
		fmt.Println(output.FormatOrdersTable(orders))
		return nil
	},
}

func init() {
	navCmd.Flags().String("path", router.HomePath, "Current path")
	navCmd.Flags().Bool("collapsed", false, "Render the collapsed sidebar")
	addJSONFlag(navCmd.Flags())

	addJSONFlag(routeCmd.Flags())

	for _, c := range []*cobra.Command{usersCmd, ordersCmd} {
		c.Flags().StringP("filter", "f", "", "Case-insensitive filter")
		addJSONFlag(c.Flags())
	}

	rootCmd.AddCommand(navCmd, routeCmd, usersCmd, ordersCmd)
}
