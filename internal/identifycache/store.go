package identifycache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"discern/internal/identity"
	"discern/internal/logging"
)

// Entry is one cached identification.
type Entry struct {
	Digest    string
	Candidate identity.ReleaseCandidate
	CachedAt  time.Time
}

// Store manages the identification cache backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Digest derives the cache key for a fingerprint. The raw fingerprint is
// long and opaque; a fixed-width hash keeps the key column sane.
func Digest(fp identity.FingerprintData) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", fp.DurationSeconds, fp.Fingerprint)))
	return hex.EncodeToString(sum[:])
}

// Open initializes or connects to the cache database. An empty path yields
// a disabled store whose operations all no-op.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "identifycache")

	if strings.TrimSpace(path) == "" {
		return &Store{logger: logger}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS identifications (
        digest TEXT PRIMARY KEY,
        candidate_json TEXT NOT NULL,
        cached_at TEXT NOT NULL
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{
		db:     db,
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logger,
	}, nil
}

// Enabled reports whether the store persists anything.
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.db.Close()
}

// Lookup returns the cached candidate for a fingerprint digest, if any.
func (s *Store) Lookup(ctx context.Context, digest string) (*identity.ReleaseCandidate, bool, error) {
	if !s.Enabled() || digest == "" {
		return nil, false, nil
	}

	var candidateJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT candidate_json FROM identifications WHERE digest = ?`, digest).
		Scan(&candidateJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	var candidate identity.ReleaseCandidate
	if err := json.Unmarshal([]byte(candidateJSON), &candidate); err != nil {
		return nil, false, fmt.Errorf("decode cached candidate: %w", err)
	}
	s.logger.Debug("cache hit",
		logging.String("digest", digest[:12]),
		logging.String("release_id", candidate.ID))
	return &candidate, true, nil
}

// Store persists a candidate under a fingerprint digest, replacing any
// previous entry.
func (s *Store) Store(ctx context.Context, digest string, candidate *identity.ReleaseCandidate) error {
	if !s.Enabled() {
		return nil
	}
	if digest == "" {
		return errors.New("digest cannot be empty")
	}
	if candidate == nil || candidate.ID == "" {
		return errors.New("candidate must have an ID")
	}

	candidateJSON, err := json.Marshal(candidate)
	if err != nil {
		return fmt.Errorf("encode candidate: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO identifications (digest, candidate_json, cached_at)
         VALUES (?, ?, ?)
         ON CONFLICT(digest) DO UPDATE SET
             candidate_json = excluded.candidate_json,
             cached_at = excluded.cached_at`,
		digest, string(candidateJSON), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("persist cache entry: %w", err)
	}

	s.logger.Debug("cached identification",
		logging.String("digest", digest[:12]),
		logging.String("release_id", candidate.ID),
		logging.String("title", candidate.Title))
	return nil
}

// Remove deletes a cached entry by digest.
func (s *Store) Remove(ctx context.Context, digest string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM identifications WHERE digest = ?`, digest)
	if err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("digest %q not found in cache", digest)
	}
	return nil
}

// List returns all cached entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	if !s.Enabled() {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT digest, candidate_json, cached_at FROM identifications
         ORDER BY cached_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry         Entry
			candidateJSON string
			cachedAt      string
		)
		if err := rows.Scan(&entry.Digest, &candidateJSON, &cachedAt); err != nil {
			return nil, fmt.Errorf("scan cache row: %w", err)
		}
		if err := json.Unmarshal([]byte(candidateJSON), &entry.Candidate); err != nil {
			return nil, fmt.Errorf("decode cached candidate: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, cachedAt); err == nil {
			entry.CachedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
