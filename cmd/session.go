package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/marcus/dash/internal/output"
	"github.com/marcus/dash/internal/session"
	"github.com/marcus/dash/pkg/shell"
	"github.com/spf13/cobra"
)

var errAlreadySignedIn = errors.New("already signed in (run dash logout first)")

// runSessionOp opens the workspace, runs op with ctrl+c cancellation and
// reports its result. Sign-in operations refuse to run over a live session.
func runSessionOp(signIn bool, success string, op func(ctx context.Context, a *app) session.Result) error {
	a, err := openApp()
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer a.Close()

	if signIn && a.session.IsAuthenticated() {
		output.Error("%v", errAlreadySignedIn)
		return errAlreadySignedIn
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res := op(ctx, a)
	if !res.Success {
		output.Error("%s", res.Error)
		return errors.New(res.Error)
	}
	output.Success("%s", success)
	if u := a.session.User(); u != nil {
		fmt.Println(output.FormatUser(u))
	}
	return nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with an email or an identity provider",
	Example: `  dash login --email jane@example.com --password secret
  dash login --provider github`,
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if name, _ := cmd.Flags().GetString("provider"); name != "" {
			provider := session.Provider(strings.ToLower(name))
			return runSessionOp(true, fmt.Sprintf("Signed in with %s", provider.Label()), func(ctx context.Context, a *app) session.Result {
				return a.session.LoginWithProvider(ctx, provider)
			})
		}

		email := trimmedFlag(cmd, "email")
		password, _ := cmd.Flags().GetString("password")
		if err := shell.ValidateLogin(email, password); err != nil {
			output.Error("%v", err)
			return err
		}
		return runSessionOp(true, "Welcome back!", func(ctx context.Context, a *app) session.Result {
			return a.session.Login(ctx, email, password)
		})
	},
}

// trimmedFlag reads a string flag without surrounding whitespace, matching
// what the shell's sign-in forms submit
func trimmedFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return strings.TrimSpace(v)
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Create an account and sign in",
	Example: `  dash register --name "Jane Doe" --email jane@example.com --password secret1 --confirm secret1`,
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := trimmedFlag(cmd, "name")
		email := trimmedFlag(cmd, "email")
		password, _ := cmd.Flags().GetString("password")
		confirm, _ := cmd.Flags().GetString("confirm")
		if err := shell.ValidateRegistration(name, email, password, confirm); err != nil {
			output.Error("%v", err)
			return err
		}
		return runSessionOp(true, "Account created!", func(ctx context.Context, a *app) session.Result {
			return a.session.Register(ctx, email, password, name)
		})
	},
}

var recoverCmd = &cobra.Command{
	Use:     "recover",
	Short:   "Send a password reset email",
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := trimmedFlag(cmd, "email")
		if err := shell.ValidateRecovery(email); err != nil {
			output.Error("%v", err)
			return err
		}
		return runSessionOp(false, "Reset email sent to "+email, func(ctx context.Context, a *app) session.Result {
			return a.session.RecoverPassword(ctx, email)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Sign out",
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		if !a.session.IsAuthenticated() {
			output.Info("Not signed in")
			return nil
		}
		a.session.Logout()
		output.Success("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the signed-in user",
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(a.session.State())
		}
		fmt.Println(output.FormatSession(a.session.State()))
		return nil
	},
}

var activityCmd = &cobra.Command{
	Use:     "activity",
	Short:   "List recent session events",
	GroupID: "session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer a.Close()

		if a.db == nil {
			output.Warning("session events are only recorded with the sqlite store")
			return nil
		}
		limit, _ := cmd.Flags().GetInt("limit")
		events, err := a.db.RecentSessionEvents(limit)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(events)
		}
		if len(events) == 0 {
			output.Info("No session activity yet.")
			return nil
		}
		for _, ev := range events {
			fmt.Println(output.FormatEvent(ev))
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("password", "", "Password")
	loginCmd.Flags().String("provider", "", "Identity provider (google, github)")
	loginCmd.MarkFlagsMutuallyExclusive("provider", "email")

	registerCmd.Flags().String("name", "", "Full name")
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("password", "", "Password (at least 6 characters)")
	registerCmd.Flags().String("confirm", "", "Password confirmation")

	recoverCmd.Flags().String("email", "", "Email address")

	addJSONFlag(whoamiCmd.Flags())

	activityCmd.Flags().Int("limit", 20, "Maximum number of events")
	addJSONFlag(activityCmd.Flags())

	rootCmd.AddCommand(loginCmd, registerCmd, recoverCmd, logoutCmd, whoamiCmd, activityCmd)
}
