package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/CTAG07/markovwords/pkg/markov"
)

// maxWordsPerRequest bounds the count query parameter.
const maxWordsPerRequest = 1000

// WordsAPI holds the dependencies for the word generation API handlers.
type WordsAPI struct {
	gen          *markov.Generator
	defaultCount int
	maxLength    int
	logger       *slog.Logger
}

// VersionInfo defines the structure for build/version information.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// WordsResponse is the body returned by /api/words.
type WordsResponse struct {
	Words []string `json:"words"`
}

// NewWordsAPI creates a new instance of the WordsAPI.
func NewWordsAPI(gen *markov.Generator, defaultCount, maxLength int, logger *slog.Logger) *WordsAPI {
	return &WordsAPI{
		gen:          gen,
		defaultCount: defaultCount,
		maxLength:    maxLength,
		logger:       logger,
	}
}

// RegisterRoutes sets up the routing for all /api endpoints.
func (a *WordsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/words", a.handleWords)
	mux.HandleFunc("/api/stats", a.handleStats)
	mux.HandleFunc("/api/version", a.handleVersion)
	mux.HandleFunc("/api/health", a.handleHealthCheck)
}

// handleWords generates words from the shared model.
func (a *WordsAPI) handleWords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		a.respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	count := a.defaultCount
	if c := r.URL.Query().Get("count"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil || n < 1 || n > maxWordsPerRequest {
			a.respondWithError(w, http.StatusBadRequest, fmt.Sprintf("count must be between 1 and %d", maxWordsPerRequest))
			return
		}
		count = n
	}

	opts := []markov.GenerateOption{markov.WithMaxLength(a.maxLength)}
	if start := r.URL.Query().Get("start"); start != "" {
		opts = append(opts, markov.WithStart(start))
	}

	words, err := a.gen.GenerateN(r.Context(), count, opts...)
	if err != nil {
		switch {
		case errors.Is(err, markov.ErrKeyNotFound):
			a.respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, markov.ErrMaxLengthExceeded):
			a.logger.Warn("Generation exceeded max length", "error", err)
			a.respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			a.logger.Error("Failed to generate words", "error", err)
			a.respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Generation failed: %v", err))
		}
		return
	}

	a.respondWithJSON(w, http.StatusOK, WordsResponse{Words: words})
}

// handleStats returns statistics about the loaded model.
func (a *WordsAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		a.respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	a.respondWithJSON(w, http.StatusOK, a.gen.Model().Stats())
}

// handleVersion returns build information.
func (a *WordsAPI) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		a.respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	a.respondWithJSON(w, http.StatusOK, VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	})
}

// handleHealthCheck is used by orchestrators to check liveness.
func (a *WordsAPI) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	a.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *WordsAPI) respondWithError(w http.ResponseWriter, code int, message string) {
	a.respondWithJSON(w, code, map[string]string{"error": message})
}

func (a *WordsAPI) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			a.logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}
