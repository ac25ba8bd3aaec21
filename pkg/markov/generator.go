package markov

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
)

var (
	// ErrEmptyModel is returned when generating from a model with no starting keys.
	ErrEmptyModel = errors.New("markov: model has no starting keys")
	// ErrKeyNotFound is matched by every KeyNotFoundError.
	ErrKeyNotFound = errors.New("markov: key not found")
	// ErrMaxLengthExceeded is returned when a walk grows past the configured maximum length.
	ErrMaxLengthExceeded = errors.New("markov: maximum word length exceeded")
)

// KeyNotFoundError reports an ngram that is missing from the transition
// table during a walk. It only happens for start keys that were not taken
// from the model itself.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("markov: key %q not found in transition table", e.Key)
}

// Is lets errors.Is(err, ErrKeyNotFound) match.
func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// Source is the random number source used for every choice a Generator
// makes. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniformly distributed integer in [0, n). n is always > 0.
	IntN(n int) int
}

// globalSource uses the goroutine-safe top level functions of math/rand/v2.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// LockedSource wraps a Source with a mutex so that a seeded source can be
// shared between goroutines.
type LockedSource struct {
	mu  sync.Mutex
	src Source
}

// NewLockedSource returns a LockedSource around src.
func NewLockedSource(src Source) *LockedSource {
	return &LockedSource{src: src}
}

// IntN implements Source.
func (l *LockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// NewSeededSource returns a deterministic, non-thread-safe Source for seed.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator produces words from a Model. It keeps no state between calls,
// so it is safe for concurrent use whenever its Source is.
type Generator struct {
	model  *Model
	src    Source
	logger *slog.Logger
}

// NewGenerator creates a Generator over model. If src is nil the process-wide
// math/rand/v2 source is used.
func NewGenerator(model *Model, src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{
		model:  model,
		src:    src,
		logger: slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Model returns the model the Generator walks.
func (g *Generator) Model() *Model { return g.model }
