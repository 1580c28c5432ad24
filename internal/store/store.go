// Package store holds the authoritative note collection and writes every
// change through to the persistence gateway.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rcliao/vibrant-notes/internal/ident"
	"github.com/rcliao/vibrant-notes/internal/model"
)

var (
	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = errors.New("note not found")
	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("invalid note")
	// ErrDuplicateID means the id source handed out an id already in use.
	// It indicates a programming defect rather than a runtime condition.
	ErrDuplicateID = errors.New("duplicate note id")
)

// NotFoundError reports a command that referenced a note that is not present.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string        { return "note not found: " + e.ID }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports a rejected field. No mutation took place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Persister loads and saves the whole collection.
type Persister interface {
	Load(ctx context.Context) ([]model.Note, error)
	Save(ctx context.Context, notes []model.Note) error
}

// NewNote holds the user-supplied fields of a note being created.
type NewNote struct {
	Title       string
	Content     string
	FolderColor model.FolderColor
}

// Fallback builds the collection used when nothing usable is stored.
type Fallback func(now time.Time) []model.Note

// EmptyFallback starts with no notes.
func EmptyFallback(time.Time) []model.Note { return nil }

// Store is the canonical, insertion-ordered note collection. Commands run
// one at a time; each is applied in memory first and then saved in full.
type Store struct {
	mu    sync.Mutex
	notes []model.Note

	gw       Persister
	clock    ident.Clock
	ids      ident.IDSource
	logger   *slog.Logger
	fallback Fallback

	subMu   sync.Mutex
	subs    []subscription
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the source of creation timestamps.
func WithClock(c ident.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIDs sets the source of note identifiers.
func WithIDs(ids ident.IDSource) Option {
	return func(s *Store) { s.ids = ids }
}

// WithLogger sets the logger for warnings about missing notes and failed saves.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithFallback sets the collection used when storage is absent or corrupt.
func WithFallback(f Fallback) Option {
	return func(s *Store) { s.fallback = f }
}

// New returns an empty store backed by gw. Call Open to load saved notes.
func New(gw Persister, opts ...Option) *Store {
	s := &Store{
		gw:       gw,
		clock:    ident.SystemClock{},
		ids:      ident.NewULIDs(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		fallback: model.SampleNotes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fallback == nil {
		s.fallback = EmptyFallback
	}
	return s
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(id)
	if i < 0 {
		return model.Note{}, &NotFoundError{ID: id}
	}
	return s.notes[i], nil
}

func (s *Store) find(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []model.Note {
	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// save writes the current collection. Must be called with s.mu held.
// A failed save leaves the in-memory collection as it is.
func (s *Store) save(ctx context.Context, op string) error {
	if err := s.gw.Save(ctx, s.snapshot()); err != nil {
		s.logger.Warn("change kept in memory but may not survive a reload",
			"op", op, "count", len(s.notes), "error", err)
		return err
	}
	return nil
}
