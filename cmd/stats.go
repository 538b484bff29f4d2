package main

import (
	"github.com/spf13/cobra"

	"github.com/vaanisetu/scheme-cli/internal/monitoring"
)

var statsLookbackHours int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recent query log activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		snap, err := monitoring.NewCollector(st).Collect(ctx, statsLookbackHours)
		if err != nil {
			return err
		}
		return printJSON(snap)
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsLookbackHours, "lookback-hours", 24, "window of query history to cover (0 = all)")
	rootCmd.AddCommand(statsCmd)
}
