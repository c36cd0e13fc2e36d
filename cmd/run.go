package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/gym-scheduler/internal/booking"
	"github.com/example/gym-scheduler/internal/config"
	"github.com/example/gym-scheduler/internal/logging"
	"github.com/example/gym-scheduler/internal/wellness"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Perform one booking run now",
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
			// Individual booking failures are logged, never surfaced as a
			// process error: the run itself completing is the contract.
			executeRun(cmd.Context(), settings, log, time.Now().In(loc))
			return nil
		},
	}
}

// executeRun loads a fresh configuration snapshot, builds the remote client
// and drives one booking pass. Shared by the run command and the daemon.
func executeRun(ctx context.Context, settings config.Settings, log *slog.Logger, now time.Time) {
	runLog := logging.WithRunID(log)
	runLog.Info("booking run started", "date", now.Format("2006-01-02"))

	cfg, err := config.NewLoader(settings, runLog).Load(ctx)
	if err != nil {
		runLog.Error("configuration load failed", "error", err)
		return
	}

	client := wellness.New(wellness.Identity{
		AppID:         cfg.AppID,
		Client:        cfg.Client,
		ClientVersion: cfg.ClientVersion,
	})

	booking.NewRunner(client, runLog).Run(ctx, cfg, now)
	runLog.Info("booking run finished")
}
