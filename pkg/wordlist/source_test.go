package wordlist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLines(t *testing.T) {
	ctx := context.Background()
	data := "  alpha\n\nbeta  \r\n   \ngamma7\ndelta"

	var words []string
	collect := func(w string) error {
		words = append(words, w)
		return nil
	}

	n, err := ScanLines(ctx, strings.NewReader(data), nil, collect)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"alpha", "beta", "gamma7", "delta"}, words)

	words = nil
	f, err := NewFilter(`^[a-z]+$`)
	require.NoError(t, err)
	n, err = ScanLines(ctx, strings.NewReader(data), f, collect)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"alpha", "beta", "delta"}, words)
}

func TestScanLinesLongLine(t *testing.T) {
	long := strings.Repeat("ab", 40000)
	var words []string
	n, err := ScanLines(context.Background(), strings.NewReader("hello\n"+long+"\nworld\n"), nil, func(w string) error {
		words = append(words, w)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, words, 3)
	assert.Equal(t, long, words[1])
}

func TestScanLinesCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	n, err := ScanLines(context.Background(), strings.NewReader("a\nb\nc\n"), nil, func(string) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, n)
}

func TestReadFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld\n"), 0644))

	var words []string
	n, err := ReadFile(ctx, path, nil, func(w string) error {
		words = append(words, w)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"hello", "world"}, words)
}

func TestReadFileMissing(t *testing.T) {
	called := false
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), nil, func(string) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, called)
}
