package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"f3manager/internal/infrastructure/database"
	"f3manager/internal/infrastructure/migration"
	"f3manager/internal/interfaces/cli/bootstrap"
	httpRouter "f3manager/internal/interfaces/http"
	"f3manager/internal/shared/goroutine"
	"f3manager/internal/shared/version"
)

var (
	opts        bootstrap.Options
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the F3 Manager HTTP API with the specified configuration.`,
		RunE:  run,
	}

	opts.AddFlags(cmd)
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		opts.Env = envVar
	}

	rt, err := bootstrap.Init(opts)
	if err != nil {
		return err
	}
	cfg := rt.Config
	log := rt.Logger

	log.Infow("starting server",
		"environment", opts.Env,
		"version", version.String(),
		"auto_migrate", autoMigrate,
		"timezone", cfg.Server.Timezone)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := rt.OpenDatabase(); err != nil {
		return err
	}
	defer rt.Close()

	if autoMigrate {
		if cfg.Server.Mode == gin.ReleaseMode {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}
		if err := migration.NewManager(cfg.Database.Driver).Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	router, err := httpRouter.NewRouter(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	router.SetupRoutes()

	log.Infow("server starting",
		"address", cfg.Server.GetAddr(),
		"mode", cfg.Server.Mode)
	serveErr := goroutine.Go(log, "http-server", func() error {
		return router.Run(cfg.Server.GetAddr())
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		router.Container.Shutdown()
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infow("shutting down server...", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := router.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}
