package sqliterepo

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/token"
	"github.com/pkg/errors"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

const tokenKey = "token"

var _ token.Repo = (*SQLiteTokenRepo)(nil)

// SQLiteTokenRepo keeps the token as one row of a key-value table.
type SQLiteTokenRepo struct {
	conn *sql.DB
}

// New opens (creating if needed) the database at path and runs migrations.
// ":memory:" gives a private in-memory store.
func New(path string) (*SQLiteTokenRepo, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, errors.Wrap(err, "[sqliterepo.New] create folder")
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "[sqliterepo.New] open")
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "[sqliterepo.New] ping")
	}

	r := &SQLiteTokenRepo{conn: conn}
	if err := r.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteTokenRepo) migrate() error {
	_, err := r.conn.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return errors.Wrap(err, "[SQLiteTokenRepo.migrate]")
}

func (r *SQLiteTokenRepo) Load() (string, error) {
	var value string
	err := r.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, tokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrNoToken
	}
	if err != nil {
		return "", errors.Wrap(err, "[SQLiteTokenRepo.Load]")
	}
	if value = strings.TrimSpace(value); value == "" {
		return "", apperrors.ErrNoToken
	}
	return value, nil
}

func (r *SQLiteTokenRepo) Save(token string) error {
	_, err := r.conn.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, tokenKey, token)
	return errors.Wrap(err, "[SQLiteTokenRepo.Save]")
}

func (r *SQLiteTokenRepo) Clear() error {
	_, err := r.conn.Exec(`DELETE FROM kv WHERE key = ?`, tokenKey)
	return errors.Wrap(err, "[SQLiteTokenRepo.Clear]")
}

func (r *SQLiteTokenRepo) Close() error {
	return r.conn.Close()
}
