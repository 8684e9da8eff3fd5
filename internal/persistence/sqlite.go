package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// SQLiteStore is a Store backed by a single SQLite table. Values are zstd
// compressed.
type SQLiteStore struct {
	conn *sqlx.DB
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*SQLiteStore, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	db := &SQLiteStore{conn: conn, enc: enc, dec: dec}
	if err := db.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *SQLiteStore) Close() error {
	db.dec.Close()
	return db.conn.Close()
}

func (db *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

func (db *SQLiteStore) Get(key string) ([]byte, error) {
	var raw []byte
	err := db.conn.Get(&raw, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	value, err := db.dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", key, err)
	}
	return value, nil
}

func (db *SQLiteStore) Put(key string, value []byte) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)",
		key, db.enc.EncodeAll(value, nil),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (db *SQLiteStore) Delete(key string) error {
	_, err := db.conn.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}

// Keys returns matching keys in sorted order.
func (db *SQLiteStore) Keys(prefix string) ([]string, error) {
	var keys []string
	err := db.conn.Select(&keys,
		"SELECT key FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key",
		len(prefix), prefix,
	)
	return keys, err
}

// Apply writes puts and deletes in one transaction.
func (db *SQLiteStore) Apply(puts map[string][]byte, deletes []string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, key := range deletes {
		if _, err := tx.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	for key, value := range puts {
		_, err := tx.Exec(
			"INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)",
			key, db.enc.EncodeAll(value, nil),
		)
		if err != nil {
			return fmt.Errorf("put %s: %w", key, err)
		}
	}

	return tx.Commit()
}
