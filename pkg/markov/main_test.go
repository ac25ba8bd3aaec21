package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// buildTestModel trains a fresh Builder of the given order on words.
func buildTestModel(t testing.TB, order int, words ...string) *Model {
	t.Helper()
	b, err := NewBuilder(WithOrder(order))
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	b.AddWords(words...)
	return b.Build()
}

// constSource always returns the same index, clamped to n.
type constSource int

func (c constSource) IntN(n int) int { return min(int(c), n-1) }

var testWordlist = []string{
	"aurora", "autumn", "breeze", "cascade", "cinder", "dawn", "ember",
	"falcon", "fern", "glacier", "harbor", "horizon", "island", "juniper",
	"lantern", "meadow", "nebula", "orchid", "pebble", "quartz", "raven",
	"river", "sable", "summit", "thistle", "tundra", "velvet", "willow",
	"zephyr", "hello", "help", "helmet",
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus builds a wordlist from identifiers in Go source files.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = strings.Join(testWordlist, "\n")
				return
			}
			for _, f := range strings.FieldsFunc(string(content), func(r rune) bool {
				return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
			}) {
				sb.WriteString(f)
				sb.WriteByte('\n')
			}
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
