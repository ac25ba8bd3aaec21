package wordlist

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// filterTimeout bounds a single match so that a pathological pattern cannot
// stall training.
const filterTimeout = time.Second

// Filter decides which training lines are kept. It accepts the .NET regular
// expression syntax of regexp2, so lookarounds such as `^(?!.*[0-9])` work.
// A nil *Filter keeps every line.
type Filter struct {
	re *regexp2.Regexp
}

// NewFilter compiles pattern into a Filter. An empty pattern returns a nil
// Filter, which keeps everything.
func NewFilter(pattern string) (*Filter, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = filterTimeout
	return &Filter{re: re}, nil
}

// Allow reports whether word should be used for training. Lines that time
// out while matching are rejected.
func (f *Filter) Allow(word string) bool {
	if f == nil {
		return true
	}
	ok, err := f.re.MatchString(word)
	return err == nil && ok
}

// String returns the source pattern, or "" for a nil Filter.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.re.String()
}
