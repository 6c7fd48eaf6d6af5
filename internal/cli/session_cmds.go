package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mindtrack/internal/access"
	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/session"
)

func newLoginCmd(rt *runtime) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		Long: `Log in with email and password. Without --password the password is read
from the first line of stdin.

Examples:
  mindtrack login --email ana@example.com
  echo "$PASS" | mindtrack login --email ana@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = line
			}

			intent, err := rt.store.Login(cmd.Context(), entity.Credentials{Email: email, Password: password})
			if err != nil {
				return userError(err)
			}

			snap := rt.store.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", snap.Identity.DisplayName, snap.Role())
			printIntent(cmd.OutOrStdout(), intent)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			intent, err := rt.store.Logout(cmd.Context())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", errs.Message(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			printIntent(cmd.OutOrStdout(), intent)
			return nil
		},
	}
}

func newWhoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := rt.store.Snapshot()
			out := cmd.OutOrStdout()
			if !snap.Authenticated() {
				fmt.Fprintln(out, "Not logged in")
				printIntent(out, session.IntentNavigateLogin)
				return nil
			}
			id := snap.Identity
			fmt.Fprintf(out, "%s <%s>\nrole: %s\nid:   %s\n", id.DisplayName, id.Email, id.Role, id.ID)
			return nil
		},
	}
}

func newOpenCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Ask the access guard what opening a view would do",
		Long: `Resolve a view path against the route table and the current session.

Examples:
  mindtrack open /reports
  mindtrack open /admin-panel`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := access.Navigate(rt.store.Snapshot(), args[0])
			printDecision(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func newProfileCmd(rt *runtime) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change display name or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch entity.IdentityPatch
			if cmd.Flags().Changed("name") {
				patch.DisplayName = &name
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass --name and/or --email")
			}

			if err := rt.store.UpdateProfile(cmd.Context(), patch); err != nil {
				return userError(err)
			}

			id := rt.store.Snapshot().Identity
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s <%s>\n", id.DisplayName, id.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	return cmd
}

func printIntent(w io.Writer, intent session.Intent) {
	if target := intent.Target(); target != "" {
		fmt.Fprintf(w, "-> %s\n", target)
	}
}

func printDecision(w io.Writer, d access.Decision) {
	switch d.Verdict {
	case access.Allow:
		fmt.Fprintf(w, "allow %s\n", d.Target)
	case access.Deferred:
		fmt.Fprintln(w, "deferred: session still resolving")
	default:
		fmt.Fprintf(w, "%s -> %s\n", d.Verdict, d.Target)
	}
}

// userError turns an error into its user-facing message
func userError(err error) error {
	return fmt.Errorf("%s", errs.Message(err))
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
