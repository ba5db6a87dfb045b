package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"stockwatch/internal/app"
	"stockwatch/internal/scheduler"
	logx "stockwatch/pkg/logx"
	"stockwatch/pkg/systemd"
)

func newWatchCommand(cc *commandContext) *cobra.Command {
	var schedule string
	var noInitial bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run check cycles on a schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}
			log := cc.logger()

			sc := scheduler.Config{
				Schedule:   cfg.Watch.Schedule,
				Timezone:   cfg.Watch.Timezone,
				RunOnStart: cfg.Watch.RunOnStart && !noInitial,
			}
			if s := strings.TrimSpace(schedule); s != "" {
				sc.Schedule = s
			}
			sched, err := scheduler.New(sc, log.With(logx.String("comp", "scheduler")))
			if err != nil {
				return err
			}

			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := systemd.Ready(); err != nil {
				log.Warn("systemd notify failed", logx.Err(err))
			}
			err = sched.Run(cmd.Context(), func(ctx context.Context) {
				run := a.RunOnce(ctx)
				_, _ = systemd.Status("last check %s: %s",
					run.Started.Format("15:04:05"), run.Result.Outcome)
			})
			if _, nerr := systemd.Stopping(); nerr != nil {
				log.Warn("systemd notify failed", logx.Err(nerr))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "Override watch.schedule (cron expression or duration)")
	cmd.Flags().BoolVar(&noInitial, "no-initial", false, "Wait for the first tick instead of checking immediately")
	return cmd
}
