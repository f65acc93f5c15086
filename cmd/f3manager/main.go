package main

import (
	"os"

	"github.com/spf13/cobra"

	"f3manager/internal/interfaces/cli/migrate"
	"f3manager/internal/interfaces/cli/remind"
	"f3manager/internal/interfaces/cli/seed"
	"f3manager/internal/interfaces/cli/server"
	"f3manager/internal/interfaces/cli/staff"
	"f3manager/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "f3manager",
		Short:   "F3 Manager - gym membership management",
		Long:    `F3 Manager tracks members, plans, subscriptions, payments and attendance for a single gym.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		remind.NewCommand(),
		staff.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
