package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/gym-scheduler/internal/config"
	"github.com/example/gym-scheduler/internal/logging"
	"github.com/example/gym-scheduler/internal/scheduler"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the daily booking trigger in-process",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.SettingsFromEnv()
			if err != nil {
				return err
			}
			log := logging.New(logging.FromEnv())
			loc, err := settings.Location()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d := &scheduler.Daily{
				RunAt:    settings.RunAt,
				Location: loc,
				Log:      log,
				Run: func(ctx context.Context, now time.Time) {
					executeRun(ctx, settings, log, now)
				},
			}
			log.Info("daemon started", "run_at", settings.RunAt, "tz", settings.Timezone)
			if err := d.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info("daemon stopped")
			return nil
		},
	}
}
