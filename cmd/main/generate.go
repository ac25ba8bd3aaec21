package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/CTAG07/markovwords/pkg/markov"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

// generateArgs holds the flags of the generate command.
type generateArgs struct {
	source    sourceArgs
	count     int
	start     string
	seed      uint64
	maxLength int
	output    string
}

// NewGenerateCommand returns the generate command.
func NewGenerateCommand(a *app) *cobra.Command {
	var args generateArgs

	cmd := &cobra.Command{
		Use:   "generate [wordlist-file]",
		Short: "Train on a wordlist and print new words",
		Long: `
Train a model on a wordlist (one word per line) and print new words, one
per line. Without a file argument the wordlist from the config is used,
or a stored list when --list is given.
	`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			ctx := cmd.Context()
			cfg := a.config

			count := args.count
			if !cmd.Flags().Changed("count") {
				count = cfg.Generate.Count
			}
			maxLength := args.maxLength
			if !cmd.Flags().Changed("max-length") {
				maxLength = cfg.Generate.MaxLength
			}
			seed := args.seed
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Generate.Seed
			}

			model, err := a.buildModel(ctx, args.source.resolve(cfg, posArgs))
			if err != nil {
				return err
			}

			var src markov.Source
			if seed != 0 {
				src = markov.NewSeededSource(seed)
			}
			gen := markov.NewGenerator(model, src)
			gen.SetLogger(a.logger)

			opts := []markov.GenerateOption{markov.WithMaxLength(maxLength)}
			if args.start != "" {
				opts = append(opts, markov.WithStart(args.start))
			}

			words, err := gen.GenerateN(ctx, count, opts...)
			if err != nil {
				return fmt.Errorf("generation failed after %d words: %w", len(words), err)
			}

			var sb strings.Builder
			for _, w := range words {
				sb.WriteString(w)
				sb.WriteByte('\n')
			}

			if args.output != "" {
				if err = atomic.WriteFile(args.output, strings.NewReader(sb.String())); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				a.logger.Info("Words written", slog.String("path", args.output), slog.Int("count", len(words)))
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return err
		},
	}

	addSourceFlags(cmd, &args.source)
	cmd.Flags().
		IntVarP(&args.count, "count", "n", 10, "Number of words to generate")
	cmd.Flags().
		StringVarP(&args.start, "start", "s", "", "Start every word with this ngram instead of a random one")
	cmd.Flags().
		Uint64Var(&args.seed, "seed", 0, "Seed for reproducible output (0 picks a random seed)")
	cmd.Flags().
		IntVar(&args.maxLength, "max-length", markov.DefaultMaxLength, "Maximum characters added to a word before giving up (0 disables)")
	cmd.Flags().
		StringVarP(&args.output, "output", "o", "", "Write the words to this file instead of stdout")
	return cmd
}

// NewStatsCommand returns the stats command.
func NewStatsCommand(a *app) *cobra.Command {
	var source sourceArgs

	cmd := &cobra.Command{
		Use:   "stats [wordlist-file]",
		Short: "Train on a wordlist and print model statistics as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			model, err := a.buildModel(cmd.Context(), source.resolve(a.config, posArgs))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), model.Stats())
		},
	}

	addSourceFlags(cmd, &source)
	return cmd
}
