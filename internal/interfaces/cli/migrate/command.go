package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"f3manager/internal/infrastructure/database"
	"f3manager/internal/infrastructure/migration"
	"f3manager/internal/interfaces/cli/bootstrap"
)

const defaultScriptsDir = "./internal/infrastructure/migration/scripts"

var (
	opts       bootstrap.Options
	name       string
	scriptsDir string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	opts.AddFlags(cmd)

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations. SQLite databases are migrated from the gorm models.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the status of every versioned migration.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new, empty SQL migration file with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&scriptsDir, "dir", defaultScriptsDir, "Directory the migration file is written to")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func openManager() (*bootstrap.Runtime, *migration.Manager, error) {
	rt, err := bootstrap.Init(opts)
	if err != nil {
		return nil, nil, err
	}
	if err := rt.OpenDatabase(); err != nil {
		return nil, nil, err
	}
	return rt, migration.NewManager(rt.Config.Database.Driver), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	rt, manager, err := openManager()
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.Logger.Infow("running up migrations",
		"environment", opts.Env,
		"strategy", manager.GetStrategy().GetName())

	if err := manager.Migrate(database.Get()); err != nil {
		rt.Logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	rt.Logger.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	rt, manager, err := openManager()
	if err != nil {
		return err
	}
	defer rt.Close()

	goose, ok := manager.Goose()
	if !ok {
		return fmt.Errorf("down migration is only supported with goose strategy")
	}

	rt.Logger.Infow("running down migrations", "environment", opts.Env, "steps", steps)
	if err := goose.MigrateDown(database.Get(), steps); err != nil {
		rt.Logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	rt.Logger.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, manager, err := openManager()
	if err != nil {
		return err
	}
	defer rt.Close()

	goose, ok := manager.Goose()
	if !ok {
		return fmt.Errorf("status check is only supported with goose strategy")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nMigration Status:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Environment: %s\n", opts.Env)
	fmt.Fprintf(cmd.OutOrStdout(), "  Database:    %s\n", rt.Config.Database.Database)

	if err := goose.Status(database.Get()); err != nil {
		rt.Logger.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Init(opts)
	if err != nil {
		return err
	}

	rt.Logger.Infow("creating new migration", "name", name, "dir", scriptsDir)

	if err := migration.NewGooseStrategy().Create(scriptsDir, name); err != nil {
		rt.Logger.Errorw("failed to create migration", "error", err)
		return fmt.Errorf("failed to create migration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, scriptsDir)
	return nil
}
