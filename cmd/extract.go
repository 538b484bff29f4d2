package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaanisetu/scheme-cli/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [query]",
	Short: "Extract a structured profile from a query without matching",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := initLexicon()
		if err != nil {
			return err
		}

		extractor := extract.New(lex)
		profile := extractor.Extract(strings.Join(args, " "))

		return printJSON(map[string]any{
			"profile": profile,
			"summary": extract.Summary(profile),
		})
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
