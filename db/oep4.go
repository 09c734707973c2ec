package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"oep4-squirrel/models"
	"oep4-squirrel/pkg/mysql"
	"oep4-squirrel/util/log"
	"strings"
)

// trackedTokensKey is the key the tracked token list is stored under.
const trackedTokensKey = "oep4s"

var createTableSQL = []string{
	"CREATE TABLE IF NOT EXISTS `kv_store` (",
	"`k` VARCHAR(64) NOT NULL PRIMARY KEY,",
	"`v` MEDIUMTEXT NOT NULL",
	")",
}

// Store keeps the tracked token list as a JSON document in a key-value table.
// It works on both MySQL and SQLite connections.
type Store struct {
	db *sql.DB
}

// NewStore creates the key-value table if needed.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, compose(createTableSQL)); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Load returns the persisted tracked tokens,
// an absent or corrupt record yields an empty list.
func (s *Store) Load(ctx context.Context) []models.TrackedToken {
	tokens := []models.TrackedToken{}

	raw, ok := s.get(ctx, trackedTokensKey)
	if !ok {
		return tokens
	}

	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		log.Errorf("Corrupt tracked token record, starting with an empty list: %v", err)
		return []models.TrackedToken{}
	}

	return tokens
}

// Save replaces the persisted tracked token list.
func (s *Store) Save(ctx context.Context, tokens []models.TrackedToken) error {
	if tokens == nil {
		tokens = []models.TrackedToken{}
	}

	raw, err := json.Marshal(tokens)
	if err != nil {
		return err
	}

	return s.put(ctx, trackedTokensKey, string(raw))
}

func (s *Store) get(ctx context.Context, key string) (string, bool) {
	query := []string{
		"SELECT `v`",
		"FROM `kv_store`",
		"WHERE `k` = ?",
		"LIMIT 1",
	}

	var value string
	err := s.db.QueryRowContext(ctx, compose(query), key).Scan(&value)
	if err != nil {
		if !mysql.IsRecordNotFoundError(err) {
			log.Errorf("Failed to read key %s: %v", key, err)
		}
		return "", false
	}

	return value, true
}

func (s *Store) put(ctx context.Context, key, value string) error {
	query := []string{
		"REPLACE INTO `kv_store` (`k`, `v`)",
		"VALUES (?, ?)",
	}

	_, err := s.db.ExecContext(ctx, compose(query), key, value)
	return err
}

func compose(query []string) string {
	return strings.Join(query, "\n")
}
