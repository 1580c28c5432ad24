// Package persist reads and writes the whole note collection as a single blob.
package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"
)

// ErrAbsent is returned when nothing has been stored under a key yet.
var ErrAbsent = errors.New("no stored data")

// Blobs is a key/value medium holding opaque serialized blobs.
type Blobs interface {
	// Get returns the blob stored under key, or ErrAbsent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the blob stored under key.
	Put(ctx context.Context, key string, data []byte) error

	// Close releases the medium.
	Close() error
}

// Sizer is implemented by media that can report how many bytes a stored blob
// takes.
type Sizer interface {
	Size(ctx context.Context, key string) (int64, error)
}

// SQLiteBlobs stores blobs in a single-table SQLite database.
type SQLiteBlobs struct {
	db *sql.DB
}

// NewSQLiteBlobs opens or creates a SQLite database at the given path.
func NewSQLiteBlobs(dbPath string) (*SQLiteBlobs, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteBlobs{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteBlobs) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	return err
}

func (s *SQLiteBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Size returns the stored byte length of the blob under key.
func (s *SQLiteBlobs) Size(ctx context.Context, key string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT length(CAST(value AS BLOB)) FROM kv WHERE key = ?`, key).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAbsent
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *SQLiteBlobs) Put(ctx context.Context, key string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, now)
	return err
}

func (s *SQLiteBlobs) Close() error {
	return s.db.Close()
}

// FileBlobs stores each key as a file under dir. Writes go through a temp file
// and a rename so a reader never sees a half-written blob.
type FileBlobs struct {
	fs  afero.Fs
	dir string
}

// NewFileBlobs returns a file-backed medium rooted at dir on fs.
func NewFileBlobs(fs afero.Fs, dir string) *FileBlobs {
	return &FileBlobs{fs: fs, dir: dir}
}

func (f *FileBlobs) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileBlobs) Get(_ context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrAbsent
	}
	return data, err
}

func (f *FileBlobs) Size(_ context.Context, key string) (int64, error) {
	info, err := f.fs.Stat(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return 0, ErrAbsent
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (f *FileBlobs) Put(_ context.Context, key string, data []byte) error {
	return writeFileAtomic(f.fs, f.path(key), data)
}

func (f *FileBlobs) Close() error { return nil }

func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer fs.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}

// MemoryBlobs keeps blobs in process memory. SetFailPuts makes every Put fail,
// which simulates a full or unavailable medium.
type MemoryBlobs struct {
	mu       sync.Mutex
	data     map[string][]byte
	failPuts error
	puts     int
}

func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{data: make(map[string][]byte)}
}

func (m *MemoryBlobs) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ErrAbsent
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryBlobs) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.failPuts != nil {
		return m.failPuts
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Set stores raw bytes without counting a Put.
func (m *MemoryBlobs) Set(key string, data []byte) {
	m.mu.Lock()
	m.data[key] = append([]byte(nil), data...)
	m.mu.Unlock()
}

// SetFailPuts toggles write failures.
func (m *MemoryBlobs) SetFailPuts(err error) {
	m.mu.Lock()
	m.failPuts = err
	m.mu.Unlock()
}

// PutCount returns how many writes were attempted.
func (m *MemoryBlobs) PutCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

func (m *MemoryBlobs) Size(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return 0, ErrAbsent
	}
	return int64(len(b)), nil
}

func (m *MemoryBlobs) Close() error { return nil }
