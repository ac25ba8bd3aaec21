package markov

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGenerateStream(t *testing.T) {
	m := buildTestModel(t, 2, "hello")
	g := NewGenerator(m, NewSeededSource(5))
	ctx := context.Background()

	t.Run("Successful stream", func(t *testing.T) {
		stream, err := g.GenerateStream(ctx, 5)
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}

		var words []string
		for w := range stream {
			if w.Err != nil {
				t.Fatalf("unexpected stream error: %v", w.Err)
			}
			words = append(words, w.Text)
		}
		if len(words) != 5 {
			t.Fatalf("expected 5 words, got %d", len(words))
		}
		for _, w := range words {
			if w != "hello" {
				t.Errorf("expected %q, got %q", "hello", w)
			}
		}
	})

	t.Run("Stream cancellation", func(t *testing.T) {
		ctxCancel, cancel := context.WithCancel(ctx)
		defer cancel()

		streamCancel, err := g.GenerateStream(ctxCancel, 0)
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}

		// Read one word, then cancel
		<-streamCancel
		cancel()

		// Drain anything that was already in flight; the channel must close.
		timeout := time.After(500 * time.Millisecond)
		for {
			select {
			case _, ok := <-streamCancel:
				if !ok {
					return
				}
			case <-timeout:
				t.Fatal("timed out waiting for stream channel to close after cancellation")
			}
		}
	})

	t.Run("Stream error", func(t *testing.T) {
		stream, err := g.GenerateStream(ctx, 3, WithStart("qq"))
		if err != nil {
			t.Fatalf("GenerateStream failed: %v", err)
		}
		var results []Word
		for w := range stream {
			results = append(results, w)
		}
		if len(results) != 1 {
			t.Fatalf("expected the stream to stop after the first error, got %d results", len(results))
		}
		if !errors.Is(results[0].Err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", results[0].Err)
		}
	})

	t.Run("Empty model", func(t *testing.T) {
		_, err := NewGenerator(buildTestModel(t, 2), nil).GenerateStream(ctx, 1)
		if !errors.Is(err, ErrEmptyModel) {
			t.Errorf("expected ErrEmptyModel, got %v", err)
		}
	})
}
