package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"f3manager/internal/interfaces/cli/bootstrap"
)

var opts bootstrap.Options

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
	}

	opts.AddFlags(cmd)
	cmd.AddCommand(newPlansCommand())

	return cmd
}

func newPlansCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "plans <file.yaml>",
		Short:   "Create membership plans from a YAML file",
		Long:    `Create the plans listed in a YAML file. Plans whose name already exists are skipped.`,
		Example: `  f3manager seed plans configs/plans.example.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runPlans,
	}
}

func runPlans(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open plans file: %w", err)
	}
	defer f.Close()

	seeds, err := LoadPlans(f)
	if err != nil {
		return err
	}

	rt, err := bootstrap.Init(opts)
	if err != nil {
		return err
	}
	if err := rt.OpenDatabase(); err != nil {
		return err
	}
	defer rt.Close()

	container, err := rt.Container()
	if err != nil {
		return err
	}
	defer container.Shutdown()

	seeder := NewPlanSeeder(container.CreatePlanUseCase(), container.ListPlansUseCase(), rt.Logger)
	result, err := seeder.Seed(cmd.Context(), seeds)
	if result != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "created: %d, skipped: %d\n", len(result.Created), len(result.Skipped))
	}
	return err
}
