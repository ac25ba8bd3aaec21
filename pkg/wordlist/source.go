package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// ScanLines reads r line by line and calls fn with every trimmed, non-empty
// line that f allows, in input order. It returns the number of words passed
// to fn. An error from fn stops the scan and is returned as is.
func ScanLines(ctx context.Context, r io.Reader, f *Filter, fn func(word string) error) (int, error) {
	// Lines have no length limit.
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	n := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		word := strings.TrimSpace(scanner.Text())
		if word == "" || !f.Allow(word) {
			continue
		}
		if err := fn(word); err != nil {
			return n, err
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("failed to read wordlist: %w", err)
	}
	return n, nil
}

// ReadFile opens the wordlist at path and scans it with ScanLines. A missing
// or unreadable file is returned as an error before fn is ever called.
func ReadFile(ctx context.Context, path string, f *Filter, fn func(word string) error) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open wordlist %q: %w", path, err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	return ScanLines(ctx, file, f, fn)
}
