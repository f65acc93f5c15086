// Package bootstrap holds the start-up steps shared by every CLI command.
package bootstrap

import (
	"fmt"

	"github.com/spf13/cobra"

	"f3manager/internal/infrastructure/config"
	"f3manager/internal/infrastructure/database"
	httpRouter "f3manager/internal/interfaces/http"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/logger"
)

// Options are the flags every command accepts.
type Options struct {
	Env        string
	ConfigPath string
}

// AddFlags registers --env and --config as persistent flags on cmd.
func (o *Options) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

// Runtime is the initialized process state of a command.
type Runtime struct {
	Config *config.Config
	Logger logger.Interface
}

// Init loads configuration, then sets up the logger and the business
// timezone. It does not touch the database.
func Init(opts Options) (*Runtime, error) {
	cfg, err := config.Load(MapEnvToGinMode(opts.Env), opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize business timezone for date boundary calculations
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return &Runtime{Config: cfg, Logger: logger.NewLogger()}, nil
}

// OpenDatabase connects the process-wide database handle.
func (r *Runtime) OpenDatabase() error {
	if err := database.Init(&r.Config.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

// Container wires the application over the open database. Callers own the
// returned container and must Shutdown it.
func (r *Runtime) Container() (*httpRouter.Container, error) {
	return httpRouter.NewContainer(database.Get(), r.Config, r.Logger)
}

// Close releases the database handle.
func (r *Runtime) Close() {
	if err := database.Close(); err != nil {
		r.Logger.Warnw("failed to close database", "error", err)
	}
}

// MapEnvToGinMode translates deployment environment names into gin modes.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
