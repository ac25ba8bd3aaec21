package markov

import (
	"context"
	"log/slog"
)

// DefaultMaxLength is the default cap on characters appended by a single walk.
const DefaultMaxLength = 10000

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	start     string
	hasStart  bool
	maxLength int
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in generation functions like Generate and GenerateStream.
type GenerateOption func(*generateOptions)

// WithStart makes the walk begin at key instead of a random starting key.
// The key should come from the model; a key whose last ngram is unknown
// makes the call fail with a *KeyNotFoundError.
func WithStart(key string) GenerateOption {
	return func(o *generateOptions) {
		o.start = key
		o.hasStart = true
	}
}

// WithMaxLength caps the number of characters a walk may append to its start
// key. A walk that exceeds it fails with ErrMaxLengthExceeded. A value of 0
// or less disables the cap.
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) { o.maxLength = n }
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Generate walks the model once and returns the new word, which never
// contains the end marker.
func (g *Generator) Generate(ctx context.Context, opts ...GenerateOption) (string, error) {
	return g.generateWord(ctx, newGenerateOptions(opts))
}

// GenerateN returns n words, stopping at the first error.
func (g *Generator) GenerateN(ctx context.Context, n int, opts ...GenerateOption) ([]string, error) {
	options := newGenerateOptions(opts)
	words := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		word, err := g.generateWord(ctx, options)
		if err != nil {
			return words, err
		}
		words = append(words, word)
	}
	return words, nil
}

// generateWord contains the main loop of the random walk.
func (g *Generator) generateWord(ctx context.Context, options *generateOptions) (string, error) {
	m := g.model

	start := options.start
	if !options.hasStart {
		if m.Empty() {
			return "", ErrEmptyModel
		}
		start = m.beginnings[g.src.IntN(len(m.beginnings))]
	}

	result := []rune(start)
	appended := 0
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		key := string(result[max(len(result)-m.order, 0):])
		choices, ok := m.transitions[key]
		if !ok || len(choices) == 0 {
			g.logger.DebugContext(ctx, "Generation failed on unknown key",
				slog.String("start", start),
				slog.String("key", key),
				slog.Int("generated_length", appended),
			)
			return "", &KeyNotFoundError{Key: key}
		}

		next := choices[g.src.IntN(len(choices))]
		if next == m.end {
			break
		}

		if options.maxLength > 0 && appended >= options.maxLength {
			g.logger.WarnContext(ctx, "Generation exceeded max length",
				slog.String("start", start),
				slog.Int("max_length", options.maxLength),
			)
			return "", ErrMaxLengthExceeded
		}
		result = append(result, next)
		appended++
	}

	g.logger.DebugContext(ctx, "Generation terminated by end marker",
		slog.String("start", start),
		slog.Int("generated_length", appended),
	)
	return string(result), nil
}
