package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaanisetu/scheme-cli/internal/analysis"
	"github.com/vaanisetu/scheme-cli/internal/model"
)

var (
	analyzeLanguage  string
	analyzeStateHint string
	analyzeDemo      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [query]",
	Short: "Run the full analysis pipeline for one query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if analyzeDemo {
			return printJSON(analysis.Demo())
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		resp := env.Service.Analyze(ctx, model.AnalysisRequest{
			Query:     strings.Join(args, " "),
			Language:  analyzeLanguage,
			StateHint: analyzeStateHint,
		})
		return printJSON(resp)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "en", "response language (en, hi, ta, te)")
	analyzeCmd.Flags().StringVar(&analyzeStateHint, "state-hint", "", "state to assume when the query names none")
	analyzeCmd.Flags().BoolVar(&analyzeDemo, "demo", false, "return the fixed demo response")
	rootCmd.AddCommand(analyzeCmd)
}
