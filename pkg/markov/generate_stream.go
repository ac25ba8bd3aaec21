package markov

import (
	"context"
	"log/slog"
)

// Word is a single result delivered by GenerateStream. When Err is set the
// walk failed, Text is empty, and the stream closes after it.
type Word struct {
	Text string
	Err  error
}

// GenerateStream generates words in the background and returns a read-only
// channel of them. It produces n words, or words without limit when n is 0 or
// less, and closes the channel when done, after the first failed walk, or
// once the context is cancelled.
func (g *Generator) GenerateStream(ctx context.Context, n int, opts ...GenerateOption) (<-chan Word, error) {
	options := newGenerateOptions(opts)
	if !options.hasStart && g.model.Empty() {
		return nil, ErrEmptyModel
	}

	wordChan := make(chan Word)

	go func() {
		defer close(wordChan)

		for i := 0; n <= 0 || i < n; i++ {
			select {
			case <-ctx.Done():
				g.logger.DebugContext(ctx, "Generation stream cancelled by context",
					slog.Int("words_sent", i),
				)
				return
			default:
			}

			text, err := g.generateWord(ctx, options)
			if err != nil && ctx.Err() != nil {
				return
			}

			select {
			case <-ctx.Done():
				return
			case wordChan <- Word{Text: text, Err: err}:
			}

			if err != nil {
				g.logger.ErrorContext(ctx, "Generation stream stopped", slog.Any("error", err))
				return
			}
		}
	}()

	return wordChan, nil
}
