package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/gym-scheduler/internal/config"
	"github.com/example/gym-scheduler/internal/logging"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the booking configuration",
	}
	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate configuration, print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.SettingsFromEnv()
			if err != nil {
				return err
			}
			log := logging.New(logging.FromEnv())
			cfg, err := config.NewLoader(settings, log).Load(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "configuration OK: facility=%s users=%d classes=%d lookahead_days=%d\n",
				cfg.FacilityID, len(cfg.Users), len(cfg.Classes), cfg.LookaheadDays)
			for _, c := range cfg.Classes {
				fmt.Fprintf(os.Stdout, "  class %q on %s for %d user(s)\n", c.Name, c.Weekday, len(c.UserNames))
			}
			return nil
		},
	}
}
