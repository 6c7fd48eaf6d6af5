// Package cli is the mindtrack command-line client. Every command restores
// the saved session first and reports the navigation the session asks for.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mindtrack/internal/client"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/session"
	"mindtrack/internal/tracker"
)

const (
	envServerURL   = "MINDTRACK_API_URL"
	envSessionFile = "MINDTRACK_SESSION_FILE"
)

// runtime is built once per invocation before the command runs
type runtime struct {
	serverURL   string
	sessionFile string
	verbose     bool

	logger  *zap.Logger
	client  *client.Client
	store   *session.Store
	tracker *tracker.Tracker
}

// NewRootCommand builds the mindtrack command tree
func NewRootCommand() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "mindtrack",
		Short: "Track habits and mood from the terminal",
		Long: `mindtrack talks to the MindTrack service: log in, inspect the dashboard
summary and see how your habits relate to your mood.

The session cookie is kept in a session file between invocations.`,
		SilenceUsage:      true,
		PersistentPreRunE: rt.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return rt.persist()
		},
	}

	root.PersistentFlags().StringVar(&rt.serverURL, "server", envOr(envServerURL, "http://localhost:8080"), "MindTrack API URL")
	root.PersistentFlags().StringVar(&rt.sessionFile, "session-file", envOr(envSessionFile, defaultSessionFile()), "file holding the session cookie")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "log client activity to stderr")

	root.AddCommand(
		newLoginCmd(rt),
		newLogoutCmd(rt),
		newWhoamiCmd(rt),
		newOpenCmd(rt),
		newProfileCmd(rt),
		newSummaryCmd(rt),
		newCorrelateCmd(rt),
		newDailyCmd(rt),
		newUsersCmd(rt),
	)
	return root
}

// setup wires client, session store and tracker, then restores the saved session
func (rt *runtime) setup(cmd *cobra.Command, _ []string) error {
	rt.logger = zap.NewNop()
	if rt.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		rt.logger = logger
	}

	token, err := loadToken(rt.sessionFile)
	if err != nil {
		return err
	}

	rt.client = client.New(rt.serverURL, client.WithToken(token), client.WithLogger(rt.logger))
	rt.store = session.NewStore(rt.client, rt.logger)
	rt.tracker = tracker.New(rt.store, rt.client, rt.logger)

	if err := rt.store.Initialize(cmd.Context()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", errs.Message(err))
	}
	return nil
}

// persist writes the current cookie back, or removes the file when the session ended
func (rt *runtime) persist() error {
	if rt.client == nil {
		return nil
	}
	_ = rt.logger.Sync()
	return saveToken(rt.sessionFile, rt.client.Token())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".mindtrack-session"
	}
	return filepath.Join(dir, "mindtrack", "session")
}
