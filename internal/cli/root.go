package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/artihcus/portal/internal/app"
	"github.com/artihcus/portal/internal/config"
	"github.com/artihcus/portal/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCommand is the portal binary: serving by default, with a migrate subcommand.
type RootCommand struct {
	cmd        *cobra.Command
	configPath string
	cfg        config.Application
}

func NewRootCommand() *RootCommand {
	root := &RootCommand{}

	root.cmd = &cobra.Command{
		Use:   "portal",
		Short: "Employee portal backend",
		Long: `Employee portal backend: login and sign-up through the auth service,
the dashboard and the timesheet editor.

CONFIGURATION:
  Values are read from the config file and overridden by PORTAL_ environment
  variables, e.g. PORTAL_AUTH_BASEURL or PORTAL_DB_DRIVER=sqlite.
  Set LOG_LEVEL to change the log level.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			root.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.serve(cmd.Context())
		},
	}

	root.cmd.PersistentFlags().StringVarP(&root.configPath, "config", "c", config.DefaultPath, "Path to the configuration file")
	root.addSubcommands()

	return root
}

func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.serve(cmd.Context())
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the session storage migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.Migrate(r.cfg.Database)
		},
	}

	r.cmd.AddCommand(serveCmd, migrateCmd)
}

// Execute runs the command until it finishes or the process is interrupted.
func (r *RootCommand) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) serve(ctx context.Context) error {
	application, err := app.NewApplication(r.cfg)
	if err != nil {
		log.Errorf("failed to initialize application: %v", err)
		return err
	}
	return application.Run(ctx)
}
