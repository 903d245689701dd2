package profile

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// The persisted surface is exactly two logical keys: the identity string and
// the serialized profile record.
const (
	identityKey = "identity"
	profileKey  = "profile"
)

// Store persists the signed-in identity and profile. Constructed once per
// session; every mutation is written through before the call returns, so a
// restart immediately after a mutation observes the new value.
type Store struct {
	db       *sql.DB
	validate *validator.Validate
}

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, validate: newValidator()}, nil
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Login normalizes the email (trim, lowercase) and makes it the persisted
// identity. Logging in again with an equivalent email keeps the existing
// profile; a different identity gets a fresh default profile derived from
// the email's local part.
func (s *Store) Login(ctx context.Context, email string) (string, error) {
	identity := strings.ToLower(strings.TrimSpace(email))
	if err := s.validateEmail(identity); err != nil {
		return "", err
	}

	current, err := s.getValue(ctx, identityKey)
	if err != nil {
		return "", err
	}
	if current == identity {
		return identity, nil
	}

	fresh, err := json.Marshal(defaultProfile(identity))
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = upsert(ctx, tx, identityKey, identity); err != nil {
		return "", err
	}
	if err = upsert(ctx, tx, profileKey, string(fresh)); err != nil {
		return "", err
	}
	if err = tx.Commit(); err != nil {
		return "", err
	}
	return identity, nil
}

// Logout clears both persisted keys. Immediate, no confirmation.
func (s *Store) Logout(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key IN (?, ?)`, identityKey, profileKey)
	return err
}

// Current reads the persisted identity and profile; both zero when nobody is
// signed in.
func (s *Store) Current(ctx context.Context) (string, Profile, error) {
	identity, err := s.getValue(ctx, identityKey)
	if err != nil {
		return "", Profile{}, err
	}
	if identity == "" {
		return "", Profile{}, nil
	}
	p, err := s.currentProfile(ctx)
	if err != nil {
		return "", Profile{}, err
	}
	return identity, p, nil
}

// UpdateProfile merges the partial update into the stored profile, persists
// the merged record and returns it. Unspecified fields stay untouched.
func (s *Store) UpdateProfile(ctx context.Context, u Update) (Profile, error) {
	if err := s.validateUpdate(u); err != nil {
		return Profile{}, err
	}
	current, err := s.currentProfile(ctx)
	if err != nil {
		return Profile{}, err
	}
	merged := current.merge(u)
	if err := s.saveProfile(ctx, merged); err != nil {
		return Profile{}, err
	}
	return merged, nil
}

// AddToWatchlist appends the id with set-union semantics: an id already on
// the list is a no-op, order is insertion order.
func (s *Store) AddToWatchlist(ctx context.Context, movieID int) (Profile, error) {
	current, err := s.currentProfile(ctx)
	if err != nil {
		return Profile{}, err
	}
	if current.onWatchlist(movieID) {
		return current, nil
	}
	entry := strconv.Itoa(movieID)
	if current.Watchlist == "" {
		current.Watchlist = entry
	} else {
		current.Watchlist += "," + entry
	}
	if err := s.saveProfile(ctx, current); err != nil {
		return Profile{}, err
	}
	return current, nil
}

func (s *Store) currentProfile(ctx context.Context) (Profile, error) {
	raw, err := s.getValue(ctx, profileKey)
	if err != nil {
		return Profile{}, err
	}
	if raw == "" {
		return Profile{}, nil
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Profile{}, fmt.Errorf("decode stored profile: %w", err)
	}
	return p, nil
}

func (s *Store) saveProfile(ctx context.Context, p Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, profileKey, string(raw))
	return err
}

func (s *Store) getValue(ctx context.Context, key string) (string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func upsert(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO settings(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
