package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/CTAG07/markovwords/pkg/wordlist"
)

// wordlistHandle bundles the database connection with the store on top of it.
type wordlistHandle struct {
	db    *sql.DB
	store *wordlist.Store
}

func newWordlistHandle(dataSource string, logger *slog.Logger) (*wordlistHandle, error) {
	db, err := initDB(dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err = wordlist.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup wordlist schema: %w", err)
	}
	store, err := wordlist.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating wordlist store: %w", err)
	}
	store.SetLogger(logger)
	return &wordlistHandle{db: db, store: store}, nil
}

func (h *wordlistHandle) Close() {
	h.store.Close()
	_ = h.db.Close()
}

// lookupList returns a friendlier error than sql.ErrNoRows for unknown lists.
func (h *wordlistHandle) lookupList(ctx context.Context, name string) (wordlist.ListInfo, error) {
	list, err := h.store.GetListInfo(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return wordlist.ListInfo{}, fmt.Errorf("wordlist %q not found", name)
	}
	return list, err
}
