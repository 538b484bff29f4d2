package main

import (
	"github.com/spf13/cobra"

	"github.com/vaanisetu/scheme-cli/internal/model"
)

var schemesType string

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List the loaded scheme catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		schemes := env.Catalog.Schemes()
		if schemesType != "" {
			filtered := make([]model.Scheme, 0, len(schemes))
			for _, s := range schemes {
				if s.SchemeType == schemesType {
					filtered = append(filtered, s)
				}
			}
			schemes = filtered
		}

		return printJSON(map[string]any{
			"status":  env.Catalog.Status(),
			"count":   len(schemes),
			"schemes": schemes,
		})
	},
}

var schemesReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the catalog and report its status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		env.Catalog.Reload(ctx)
		return printJSON(map[string]any{
			"status": env.Catalog.Status(),
			"count":  env.Catalog.Len(),
		})
	},
}

func init() {
	schemesCmd.Flags().StringVar(&schemesType, "type", "", "filter by scheme type")
	schemesCmd.AddCommand(schemesReloadCmd)
	rootCmd.AddCommand(schemesCmd)
}
