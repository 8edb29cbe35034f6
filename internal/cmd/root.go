package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/campuskit/campusctl/internal/api"
	"github.com/campuskit/campusctl/internal/config"
	"github.com/campuskit/campusctl/internal/errors"
	"github.com/campuskit/campusctl/internal/log"
	"github.com/campuskit/campusctl/internal/session"
	"github.com/campuskit/campusctl/internal/tui"
)

var (
	flagVerbose bool
	flagAPIURL  string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "campusctl",
	Short: "Campus client for students, teachers, and administrators",
	Long: `campusctl is the terminal client for the campus platform.

Run it without arguments to start the interactive app: it restores your
stored session and lands you on the screen for your role. Students browse
and enroll in courses and follow the leaderboard, teachers manage the
student roster and assign points, and administrators manage the course
catalog.

Every screen is also available as a plain subcommand for scripting:

  campusctl auth login --email user@campus.edu
  campusctl courses list
  campusctl students rank`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, client, err := newManager()
		if err != nil {
			return err
		}
		return tui.Run(mgr, client)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		if flagAPIURL != "" {
			cfg.API.BaseURL = flagAPIURL
		}

		logCfg := log.DefaultConfig()
		if cfg.Logging.Level != "" {
			logCfg.Level = log.ParseLevel(cfg.Logging.Level)
		}
		if cfg.Logging.Format != "" {
			logCfg.Format = log.ParseFormat(cfg.Logging.Format)
		}
		if flagVerbose {
			logCfg = log.DebugConfig()
		}
		log.SetDefaultLogger(log.New(logCfg))
		return nil
	},
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Campus API base URL (overrides config and CAMPUS_API_URL)")
}

// newClient builds the API client from the effective configuration
func newClient() *api.Client {
	client := api.NewClient(cfg.API.BaseURL)
	if cfg.API.TimeoutSeconds > 0 {
		client.HTTPClient.Timeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second
	}
	return client
}

// newManager builds the session stack: API client, state container, and the
// keyring-backed persisted store under the config directory.
func newManager() (*session.Manager, *api.Client, error) {
	client := newClient()

	dir, err := config.Dir()
	if err != nil {
		return nil, nil, err
	}
	persisted, err := session.OpenKeyringStore(dir)
	if err != nil {
		return nil, nil, err
	}

	mgr := session.NewManager(client, session.NewStore(), persisted, log.DefaultLogger())
	return mgr, client, nil
}

// requireSession hydrates the stored session and fails when nobody is
// signed in
func requireSession(mgr *session.Manager) (session.State, error) {
	mgr.CheckSession()
	state := mgr.State().Current()
	if !state.Authenticated() {
		return state, errors.NewNotAuthenticatedError()
	}
	return state, nil
}
