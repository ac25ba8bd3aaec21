package wordlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ListInfo holds the metadata for a stored wordlist.
type ListInfo struct {
	Id    int    `json:"id"`
	Name  string `json:"name"`
	Words int    `json:"words"`
}

// SetupSchema initializes the wordlist tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaLists = `
CREATE TABLE IF NOT EXISTS wordlists (
    list_id INTEGER PRIMARY KEY,
    list_name TEXT NOT NULL UNIQUE
);
`
		schemaWords = `
CREATE TABLE IF NOT EXISTS wordlist_words (
    list_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    word TEXT NOT NULL,
    PRIMARY KEY (list_id, position)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaLists); err != nil {
		return fmt.Errorf("could not create wordlists schema: %w", err)
	}

	if _, err = tx.Exec(schemaWords); err != nil {
		return fmt.Errorf("could not create words schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Store keeps named wordlists in a SQLite database. It holds prepared
// statements for the common lookups and is safe for concurrent use.
type Store struct {
	db              *sql.DB
	stmtGetList     *sql.Stmt
	stmtGetLists    *sql.Stmt
	stmtAddList     *sql.Stmt
	stmtCountWords  *sql.Stmt
	stmtGetWords    *sql.Stmt
	stmtMaxPosition *sql.Stmt
	logger          *slog.Logger
}

// NewStore creates a Store on db, whose schema must already be set up with
// SetupSchema.
func NewStore(db *sql.DB) (*Store, error) {
	stmtGetList, err := db.Prepare(`SELECT list_id FROM wordlists WHERE list_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtGetLists, err := db.Prepare(`SELECT list_id, list_name FROM wordlists;`)
	if err != nil {
		return nil, err
	}

	stmtAddList, err := db.Prepare(`INSERT INTO wordlists (list_name) VALUES (?);`)
	if err != nil {
		return nil, err
	}

	stmtCountWords, err := db.Prepare(`SELECT COUNT(*) FROM wordlist_words WHERE list_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtGetWords, err := db.Prepare(`SELECT word FROM wordlist_words WHERE list_id = ? ORDER BY position;`)
	if err != nil {
		return nil, err
	}

	stmtMaxPosition, err := db.Prepare(`SELECT coalesce(MAX(position), -1) FROM wordlist_words WHERE list_id = ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:              db,
		stmtGetList:     stmtGetList,
		stmtGetLists:    stmtGetLists,
		stmtAddList:     stmtAddList,
		stmtCountWords:  stmtCountWords,
		stmtGetWords:    stmtGetWords,
		stmtMaxPosition: stmtMaxPosition,
		logger:          slog.New(slog.DiscardHandler),
	}, nil
}

// Close releases all prepared statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtGetList.Close()
	_ = s.stmtGetLists.Close()
	_ = s.stmtAddList.Close()
	_ = s.stmtCountWords.Close()
	_ = s.stmtGetWords.Close()
	_ = s.stmtMaxPosition.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// InsertList creates a new, empty wordlist.
func (s *Store) InsertList(ctx context.Context, name string) error {
	_, err := s.stmtAddList.ExecContext(ctx, name)
	return err
}

// GetListInfo retrieves a single wordlist by name. It returns sql.ErrNoRows
// if the list does not exist.
func (s *Store) GetListInfo(ctx context.Context, name string) (ListInfo, error) {
	info := ListInfo{Name: name}
	if err := s.stmtGetList.QueryRowContext(ctx, name).Scan(&info.Id); err != nil {
		return ListInfo{}, err
	}
	if err := s.stmtCountWords.QueryRowContext(ctx, info.Id).Scan(&info.Words); err != nil {
		return ListInfo{}, err
	}
	return info, nil
}

// GetListInfos retrieves every wordlist in the database, keyed by name.
func (s *Store) GetListInfos(ctx context.Context) (map[string]ListInfo, error) {
	rows, err := s.stmtGetLists.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	var infos []ListInfo
	for rows.Next() {
		var info ListInfo
		if err = rows.Scan(&info.Id, &info.Name); err != nil {
			_ = rows.Close()
			return nil, err
		}
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	_ = rows.Close()

	lists := make(map[string]ListInfo, len(infos))
	for _, info := range infos {
		if err = s.stmtCountWords.QueryRowContext(ctx, info.Id).Scan(&info.Words); err != nil {
			return nil, err
		}
		lists[info.Name] = info
	}
	return lists, nil
}

// RemoveList deletes a wordlist and all of its words. The operation is
// performed within a transaction.
func (s *Store) RemoveList(ctx context.Context, list ListInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.ExecContext(ctx, "DELETE FROM wordlist_words WHERE list_id = ?", list.Id); err != nil {
		return fmt.Errorf("failed to remove words for list %d: %w", list.Id, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM wordlists WHERE list_id = ?", list.Id); err != nil {
		return fmt.Errorf("failed to remove list %d: %w", list.Id, err)
	}

	s.logger.InfoContext(ctx, "Wordlist removed successfully",
		slog.String("list_name", list.Name),
		slog.Int("list_id", list.Id),
	)

	return tx.Commit()
}

// Import appends every line of r that f allows to the wordlist, after the
// words already stored. Lines are trimmed and empty lines skipped. The whole
// import is one transaction; on error nothing is stored.
func (s *Store) Import(ctx context.Context, list ListInfo, r io.Reader, f *Filter) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction for import: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var position int
	if err = tx.StmtContext(ctx, s.stmtMaxPosition).QueryRowContext(ctx, list.Id).Scan(&position); err != nil {
		return 0, fmt.Errorf("could not find end of list %d: %w", list.Id, err)
	}

	stmtInsertWord, err := tx.PrepareContext(ctx, `INSERT INTO wordlist_words (list_id, position, word) VALUES (?, ?, ?);`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare word insert statement: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(stmtInsertWord)

	n, err := ScanLines(ctx, r, f, func(word string) error {
		position++
		if _, err := stmtInsertWord.ExecContext(ctx, list.Id, position, word); err != nil {
			return fmt.Errorf("failed to insert word %q: %w", word, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "Wordlist imported",
		slog.String("list_name", list.Name),
		slog.Int("list_id", list.Id),
		slog.Int("words_imported", n),
		slog.String("filter", f.String()),
	)

	return n, tx.Commit()
}

// Words calls fn with every word of the list in insertion order. An error
// from fn stops the iteration and is returned.
func (s *Store) Words(ctx context.Context, list ListInfo, fn func(word string) error) error {
	rows, err := s.stmtGetWords.QueryContext(ctx, list.Id)
	if err != nil {
		return err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var word string
		if err = rows.Scan(&word); err != nil {
			return err
		}
		if err = fn(word); err != nil {
			return err
		}
	}
	return rows.Err()
}

// GetOrInsertList returns the named list, creating it first if needed.
func (s *Store) GetOrInsertList(ctx context.Context, name string) (ListInfo, error) {
	info, err := s.GetListInfo(ctx, name)
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return ListInfo{}, err
	}
	if err = s.InsertList(ctx, name); err != nil {
		return ListInfo{}, fmt.Errorf("failed to create list %q: %w", name, err)
	}
	return s.GetListInfo(ctx, name)
}
