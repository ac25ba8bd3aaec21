package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/CTAG07/markovwords/pkg/markov"
	"github.com/spf13/cobra"
)

// NewServeCommand returns the serve command.
func NewServeCommand(a *app) *cobra.Command {
	var source sourceArgs
	var addr string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "serve [wordlist-file]",
		Short: "Train once and serve generated words over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := a.config
			if addr == "" {
				addr = cfg.Server.ApiAddr
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Generate.Seed
			}

			model, err := a.buildModel(ctx, source.resolve(cfg, posArgs))
			if err != nil {
				return err
			}

			var src markov.Source
			if seed != 0 {
				// Handlers run concurrently, a seeded source needs the lock.
				src = markov.NewLockedSource(markov.NewSeededSource(seed))
			}
			gen := markov.NewGenerator(model, src)
			gen.SetLogger(a.logger)

			mux := http.NewServeMux()
			NewWordsAPI(gen, max(cfg.Generate.Count, 1), cfg.Generate.MaxLength, a.logger).RegisterRoutes(mux)

			return runServer(ctx, &http.Server{Addr: addr, Handler: mux}, a.logger)
		},
	}

	addSourceFlags(cmd, &source)
	cmd.Flags().
		StringVarP(&addr, "addr", "a", "", "Listen address; overrides the config file")
	cmd.Flags().
		Uint64Var(&seed, "seed", 0, "Seed for reproducible output (0 picks a random seed)")
	return cmd
}

// runServer serves until ctx is done, then shuts the server down gracefully.
func runServer(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting word server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("Word server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Stopping word server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Word server shutdown failed", "error", err)
		return err
	}
	logger.Info("Word server stopped.")
	return nil
}
