package markov

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
)

// Builder accumulates training words into a transition table. It is not safe
// for concurrent use; call Build once training is complete to obtain a Model
// that can be shared freely.
type Builder struct {
	opts        modelOptions
	transitions map[string][]rune
	beginnings  []string
	words       int64
	pairs       int64
	logger      *slog.Logger
}

// NewBuilder creates an empty Builder. It returns an error if the options
// describe an unusable model (ngram size below 1 or a bad end marker).
func NewBuilder(opts ...Option) (*Builder, error) {
	o := modelOptions{
		order: DefaultOrder,
		end:   DefaultEnd,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &Builder{
		opts:        o,
		transitions: make(map[string][]rune),
		logger:      slog.New(slog.DiscardHandler),
	}, nil
}

// SetLogger sets the logger for the Builder. By default, all logs are discarded.
func (b *Builder) SetLogger(logger *slog.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// Order returns the ngram size the Builder was configured with.
func (b *Builder) Order() int { return b.opts.order }

// End returns the end-of-word marker the Builder was configured with.
func (b *Builder) End() rune { return b.opts.end }

// AddWord records every ngram -> successor pair of word and returns how many
// pairs were recorded. Surrounding whitespace is stripped first. Words
// shorter than the ngram size record nothing.
func (b *Builder) AddWord(word string) int {
	word = strings.TrimSpace(word)
	if word == "" {
		return 0
	}

	runes := append([]rune(word), b.opts.end)
	order := b.opts.order
	n := 0
	for i := 0; i < len(runes)-order; i++ {
		key := string(runes[i : i+order])
		if i == 0 {
			b.beginnings = append(b.beginnings, key)
		}
		b.transitions[key] = append(b.transitions[key], runes[i+order])
		n++
	}

	b.words++
	b.pairs += int64(n)
	return n
}

// AddWords calls AddWord for each word in order and returns the total number
// of pairs recorded.
func (b *Builder) AddWords(words ...string) int {
	total := 0
	for _, w := range words {
		total += b.AddWord(w)
	}
	return total
}

// Train reads r line by line and adds every line as a training word.
// The context is checked between lines so long inputs can be abandoned.
func (b *Builder) Train(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	var lines, pairs int64
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		pairs += int64(b.AddWord(scanner.Text()))
		lines++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read training data: %w", err)
	}

	b.logger.InfoContext(ctx, "Training completed",
		slog.Int("order", b.opts.order),
		slog.Int64("lines_processed", lines),
		slog.Int64("pairs_recorded", pairs),
		slog.Int("unique_keys", len(b.transitions)),
	)
	return nil
}

// Build returns an immutable snapshot of everything trained so far. The
// Builder can keep accumulating afterwards without affecting the Model.
func (b *Builder) Build() *Model {
	transitions := make(map[string][]rune, len(b.transitions))
	for k, v := range b.transitions {
		s := make([]rune, len(v))
		copy(s, v)
		transitions[k] = s
	}
	beginnings := make([]string, len(b.beginnings))
	copy(beginnings, b.beginnings)

	b.logger.Debug("Model built",
		slog.Int64("words", b.words),
		slog.Int64("pairs", b.pairs),
		slog.Int("keys", len(transitions)),
		slog.Int("beginnings", len(beginnings)),
	)

	return &Model{
		order:       b.opts.order,
		end:         b.opts.end,
		transitions: transitions,
		beginnings:  beginnings,
	}
}
