package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// MatchStore persists raw match-detail responses in a local sqlite file so a
// repeat analysis of the same player skips both the network call and the
// rate-limit delay. Match records are immutable upstream, so entries are
// never invalidated.
type MatchStore struct {
	db *sql.DB
}

// OpenMatchStore opens (creating if needed) the sqlite store at path.
func OpenMatchStore(path string) (*MatchStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open match store: %w", err)
	}

	// Single writer, sequential pipeline.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS match_cache (
			match_id   TEXT PRIMARY KEY,
			body       BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init match store: %w", err)
	}

	return &MatchStore{db: db}, nil
}

// Get returns the stored raw JSON body for a match id, or (nil, false) when
// the match has not been cached.
func (s *MatchStore) Get(ctx context.Context, matchID string) ([]byte, bool, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM match_cache WHERE match_id = ?`, matchID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Put stores the raw JSON body for a match id.
func (s *MatchStore) Put(ctx context.Context, matchID string, body []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO match_cache (match_id, body, fetched_at) VALUES (?, ?, ?)`,
		matchID, body, time.Now().Unix())
	return err
}

func (s *MatchStore) Close() error {
	return s.db.Close()
}
