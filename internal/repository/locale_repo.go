package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// LocaleKey is the preference key holding the client's locale code
const LocaleKey = "locale"

// LocaleStore persists one client's locale preference
type LocaleStore struct {
	db       *DB
	clientID string
}

// NewLocaleStore creates a locale store bound to clientID
func NewLocaleStore(db *DB, clientID string) *LocaleStore {
	return &LocaleStore{db: db, clientID: clientID}
}

// ClientID returns the client the store is bound to
func (s *LocaleStore) ClientID() string {
	return s.clientID
}

// Get returns the stored locale code, or "" when nothing has been stored
func (s *LocaleStore) Get(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM preferences WHERE client_id = ? AND key = ?
	`, s.clientID, LocaleKey).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores the locale code, replacing any previous value
func (s *LocaleStore) Set(ctx context.Context, code string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (client_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(client_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.clientID, LocaleKey, code, time.Now())
	return err
}
