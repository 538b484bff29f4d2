package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/vaanisetu/scheme-cli/internal/catalog"
)

var (
	seedFile    string
	seedReplace bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load scheme records from a JSON snapshot into the catalog database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Catalog.DatabaseURL == "" {
			return eris.New("seed: catalog.database_url is required")
		}

		file := seedFile
		if file == "" {
			file = cfg.Catalog.FallbackPath
		}
		schemes, err := catalog.FileSource{Path: file}.FetchAll(ctx)
		if err != nil {
			return err
		}
		if len(schemes) == 0 {
			return eris.Errorf("seed: no schemes in %s", file)
		}

		pool, err := pgxpool.New(ctx, cfg.Catalog.DatabaseURL)
		if err != nil {
			return eris.Wrap(err, "seed: create pool")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return eris.Wrap(err, "seed: ping")
		}

		if err := catalog.Migrate(ctx, pool); err != nil {
			return err
		}
		n, err := catalog.Seed(ctx, pool, schemes, seedReplace)
		if err != nil {
			return err
		}

		return printJSON(map[string]any{
			"status": "ok",
			"file":   file,
			"rows":   n,
		})
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "JSON snapshot to load (defaults to the bundled fallback)")
	seedCmd.Flags().BoolVar(&seedReplace, "replace", false, "truncate and reload instead of upserting")
	schemesCmd.AddCommand(seedCmd)
}
