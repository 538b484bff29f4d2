package main

import (
	"bufio"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vaanisetu/scheme-cli/internal/model"
)

var (
	batchConcurrency int
	batchLanguage    string
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Analyze a file of queries, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		queries, err := readQueries(args[0])
		if err != nil {
			return err
		}
		if len(queries) == 0 {
			zap.L().Info("no queries found in input file")
			return nil
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		zap.L().Info("processing batch",
			zap.Int("queries", len(queries)),
			zap.Int("concurrency", batchConcurrency),
		)

		responses := make([]model.AnalysisResponse, len(queries))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchConcurrency)
		for i, query := range queries {
			g.Go(func() error {
				responses[i] = env.Service.Analyze(gctx, model.AnalysisRequest{
					Query:    query,
					Language: batchLanguage,
				})
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "batch processing")
		}

		return printJSON(responses)
	},
}

// readQueries loads non-empty lines from the input file. Lines starting
// with # are comments.
func readQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	return queries, eris.Wrapf(scanner.Err(), "read %s", path)
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "max concurrent analyses")
	batchCmd.Flags().StringVar(&batchLanguage, "language", "en", "response language")
	rootCmd.AddCommand(batchCmd)
}
