package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"stockwatch/internal/app"
)

func newShowCommand(cc *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the last recorded stock status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}
			store, err := app.OpenHistory(cfg, cc.logger())
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}

			out := cmd.OutOrStdout()
			if rec == nil {
				fmt.Fprintf(out, "No status recorded yet (%s %s)\n", cfg.History.Driver, cfg.History.Path)
				return nil
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			rows := [][]string{
				{"Store", rec.StoreTitle},
				{"Status", rec.Status.String()},
				{"Stock", rec.StockText},
				{"Source", cfg.History.Path},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the record as JSON")
	return cmd
}
