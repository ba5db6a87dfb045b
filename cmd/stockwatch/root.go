package main

import (
	"github.com/spf13/cobra"

	"stockwatch/internal/app"
	logx "stockwatch/pkg/logx"
)

func newRootCommand(cc *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stockwatch",
		Short:         "Check store stock and report changes to Telegram",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := cc.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, cc)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configFlag, "config", "c", "", "Configuration file path (json, yaml or toml; falls back to $STOCKWATCH_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&cc.envFileFlag, "env-file", cc.envFileFlag, "KEY=VALUE file loaded into the environment; missing file is ignored")

	rootCmd.AddCommand(newWatchCommand(cc))
	rootCmd.AddCommand(newShowCommand(cc))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// runOnce performs a single cycle. A failed check is reported through the
// notifier, so only bootstrap errors reach the exit status.
func runOnce(cmd *cobra.Command, cc *commandContext) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	log := cc.logger()

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	run := a.RunOnce(cmd.Context())
	log.Debug("cycle done", logx.String("run_id", run.ID), logx.String("outcome", run.Result.Outcome.String()))
	return nil
}
