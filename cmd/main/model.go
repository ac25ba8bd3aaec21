package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CTAG07/markovwords/pkg/markov"
	"github.com/CTAG07/markovwords/pkg/wordlist"
	"github.com/spf13/cobra"
)

// sourceArgs selects the training data of a command.
type sourceArgs struct {
	path      string
	list      string
	filter    string
	order     int
	endMarker string
}

// addSourceFlags registers the training source flags on cmd.
func addSourceFlags(cmd *cobra.Command, s *sourceArgs) {
	cmd.Flags().
		StringVarP(&s.list, "list", "l", "", "Train from a wordlist stored in the database instead of a file")
	cmd.Flags().
		StringVarP(&s.filter, "filter", "f", "", "Only train on lines matching this regular expression")
	cmd.Flags().
		IntVarP(&s.order, "ngram-size", "k", 0, "Ngram size; overrides the config file")
	cmd.Flags().
		StringVar(&s.endMarker, "end-marker", "", "End-of-word marker; overrides the config file")
}

// resolve fills unset values from the config and positional arguments.
func (s sourceArgs) resolve(config *Config, args []string) sourceArgs {
	if len(args) > 0 {
		s.path = args[0]
	} else if s.path == "" {
		s.path = config.Wordlist.Path
	}
	if s.filter == "" {
		s.filter = config.Wordlist.Filter
	}
	if s.order == 0 {
		s.order = config.Model.NgramSize
	}
	if s.endMarker == "" {
		s.endMarker = config.Model.EndMarker
	}
	return s
}

// buildModel trains a model from a stored list or a wordlist file.
// It fails rather than return a model that cannot generate.
func (a *app) buildModel(ctx context.Context, s sourceArgs) (*markov.Model, error) {
	opts, err := (&ModelConfig{NgramSize: s.order, EndMarker: s.endMarker}).BuilderOptions()
	if err != nil {
		return nil, err
	}
	builder, err := markov.NewBuilder(opts...)
	if err != nil {
		return nil, err
	}
	builder.SetLogger(a.logger)

	addWord := func(word string) error {
		builder.AddWord(word)
		return nil
	}

	var source string
	var words int
	if s.list != "" {
		source = "list:" + s.list
		h, err := a.openStore()
		if err != nil {
			return nil, err
		}
		defer h.Close()

		list, err := h.lookupList(ctx, s.list)
		if err != nil {
			return nil, err
		}
		filter, err := wordlist.NewFilter(s.filter)
		if err != nil {
			return nil, err
		}
		err = h.store.Words(ctx, list, func(word string) error {
			if !filter.Allow(word) {
				return nil
			}
			words++
			return addWord(word)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read wordlist %q: %w", s.list, err)
		}
	} else {
		source = s.path
		filter, err := wordlist.NewFilter(s.filter)
		if err != nil {
			return nil, err
		}
		if words, err = wordlist.ReadFile(ctx, s.path, filter, addWord); err != nil {
			return nil, err
		}
	}

	model := builder.Build()
	a.logger.Info("Model trained",
		slog.String("source", source),
		slog.Int("words", words),
		slog.Int("order", model.Order()),
		slog.Int("keys", model.Len()),
	)
	if model.Empty() {
		return nil, fmt.Errorf("training source %q produced no ngrams: %w", source, markov.ErrEmptyModel)
	}
	return model, nil
}
