package remind

import (
	"fmt"

	"github.com/spf13/cobra"

	notificationUsecases "f3manager/internal/application/notification/usecases"
	"f3manager/internal/interfaces/cli/bootstrap"
)

var (
	opts   bootstrap.Options
	days   int
	dryRun bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Email members whose subscription expires soon",
		Long: `Send an expiry reminder to every active member with an email address whose
subscription ends within the given number of days.`,
		RunE: run,
	}

	opts.AddFlags(cmd)
	cmd.Flags().IntVarP(&days, "days", "d", 0, "Look-ahead window in days (default: membership.expiring_window_days)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the reminders without sending email")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
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

	result, err := container.ReminderUseCase().Execute(cmd.Context(), notificationUsecases.SendRemindersCommand{
		Days:   days,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintf(out, "dry run: %d candidates, %d would be emailed, %d skipped\n",
			result.Candidates, result.Sent, result.Skipped)
		return nil
	}
	fmt.Fprintf(out, "sent: %d, failed: %d, skipped: %d\n", result.Sent, result.Failed, result.Skipped)
	if result.Failed > 0 {
		return fmt.Errorf("%d reminders could not be sent", result.Failed)
	}
	return nil
}
