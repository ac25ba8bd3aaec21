package markov

import (
	"errors"
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultOrder is the default ngram size used for model keys.
	DefaultOrder = 2
	// DefaultEnd is the default end-of-word marker.
	DefaultEnd = '|'
)

var (
	// ErrInvalidOrder is returned when a model is configured with an ngram size below 1.
	ErrInvalidOrder = errors.New("markov: ngram size must be at least 1")
	// ErrInvalidEnd is returned when the end marker is unusable (zero, invalid or whitespace).
	ErrInvalidEnd = errors.New("markov: end marker must be a single printable, non-space character")
)

// Model is a trained, immutable character-level Markov chain. It maps every
// ngram seen during training to the characters that followed it, keeping
// duplicates so that frequent transitions are picked more often, and records
// the first ngram of every training word as a possible starting point.
//
// A Model is safe for concurrent use by multiple goroutines.
type Model struct {
	order       int
	end         rune
	transitions map[string][]rune
	beginnings  []string
}

// Order returns the ngram size of the model.
func (m *Model) Order() int { return m.order }

// End returns the end-of-word marker of the model.
func (m *Model) End() rune { return m.end }

// Successors returns the characters observed after key, in training order and
// with duplicates. The second return value reports whether key is known.
// The returned slice must not be modified.
func (m *Model) Successors(key string) ([]rune, bool) {
	s, ok := m.transitions[key]
	return s, ok
}

// Beginnings returns a copy of the starting keys, one per training word that
// produced at least one ngram.
func (m *Model) Beginnings() []string {
	out := make([]string, len(m.beginnings))
	copy(out, m.beginnings)
	return out
}

// Keys returns every ngram in the transition table, sorted.
func (m *Model) Keys() []string {
	keys := make([]string, 0, len(m.transitions))
	for k := range m.transitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of distinct ngrams in the model.
func (m *Model) Len() int { return len(m.transitions) }

// Empty reports whether the model has no starting keys and so cannot generate.
func (m *Model) Empty() bool { return len(m.beginnings) == 0 }

// modelOptions holds the settings shared by Builder configuration.
type modelOptions struct {
	order int
	end   rune
}

// Option configures a Builder.
type Option func(*modelOptions)

// WithOrder sets the ngram size. Default: 2
func WithOrder(n int) Option {
	return func(o *modelOptions) { o.order = n }
}

// WithEnd sets the end-of-word marker. It must not appear in the training data.
// Default: '|'
func WithEnd(r rune) Option {
	return func(o *modelOptions) { o.end = r }
}

func (o *modelOptions) validate() error {
	if o.order < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidOrder, o.order)
	}
	if o.end == 0 || o.end == utf8.RuneError || unicode.IsSpace(o.end) || !unicode.IsPrint(o.end) {
		return fmt.Errorf("%w: got %q", ErrInvalidEnd, o.end)
	}
	return nil
}
