package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/studybuddy/core/internal/adapters/aibackend"
	"github.com/studybuddy/core/internal/application/scheduler"
	"github.com/studybuddy/core/internal/infrastructure/config"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/infrastructure/metrics"
	"github.com/studybuddy/core/internal/infrastructure/server"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the StudyBuddy API server",
		Long:  "Start the StudyBuddy API server, apply pending migrations and run the background scheduler when enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*configFile)
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand(configFile *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	var steps int
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, *configFile, "up", steps)
		},
	}
	upCmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply (0 = all)")

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Revert migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, *configFile, "down", steps)
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to revert (0 = all)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showMigrationVersion(cmd, *configFile)
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	return migrateCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print StudyBuddy version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "StudyBuddy %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go: %s\n", runtime.Version())
		},
	}
}

// openDatabase loads configuration and connects to the configured database
func openDatabase(configFile string) (*config.Config, *database.DB, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

func runServer(configFile string) error {
	cfg, db, err := openDatabase(configFile)
	if err != nil {
		return err
	}
	defer db.Close()

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()
	db.SetLogger(appLogger)

	if err := database.Migrate(db); err != nil {
		return err
	}
	appLogger.Infow("Database ready", "driver", db.Driver())

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	ai := metrics.InstrumentAIBackend(aibackend.NewClient(cfg.AIBackend, appLogger), m)

	svcs, err := server.NewServices(cfg, db, ai, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	srv := server.New(cfg, db, svcs, m, appLogger)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(cfg.Scheduler, svcs.Timetable, svcs.Todos, appLogger)
		if err != nil {
			return err
		}
		sched.Start()
		appLogger.Infow("Scheduler started", "jobs", sched.Jobs())
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Infow("Starting StudyBuddy API server",
			"port", cfg.Server.Port,
			"environment", cfg.App.Environment,
			"ai_backend", cfg.AIBackend.BaseURL,
		)
		errCh <- srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		appLogger.Infow("Shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(ctx); err != nil {
			appLogger.Warnw("Scheduler did not stop in time", "error", err)
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLogger.Infow("Server exited gracefully")
	return nil
}

func runMigration(cmd *cobra.Command, configFile, direction string, steps int) error {
	_, db, err := openDatabase(configFile)
	if err != nil {
		return err
	}
	defer db.Close()

	mg, err := database.NewMigrator(db)
	if err != nil {
		return err
	}

	switch {
	case direction == "up" && steps > 0:
		err = mg.Steps(steps)
	case direction == "up":
		err = mg.Up()
	case steps > 0:
		err = mg.Steps(-steps)
	default:
		err = mg.Down()
	}
	if err != nil {
		return err
	}

	version, _, err := mg.Version()
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migration %s completed, schema version %d\n", direction, version)
	return nil
}

func showMigrationVersion(cmd *cobra.Command, configFile string) error {
	_, db, err := openDatabase(configFile)
	if err != nil {
		return err
	}
	defer db.Close()

	mg, err := database.NewMigrator(db)
	if err != nil {
		return err
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "Dirty: %t\n", dirty)
	return nil
}
