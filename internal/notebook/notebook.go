// Package notebook wires the note store, the view engine and the board
// controller into the command and read surface used by the CLI.
package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/rcliao/vibrant-notes/internal/board"
	"github.com/rcliao/vibrant-notes/internal/config"
	"github.com/rcliao/vibrant-notes/internal/ident"
	"github.com/rcliao/vibrant-notes/internal/logging"
	"github.com/rcliao/vibrant-notes/internal/model"
	"github.com/rcliao/vibrant-notes/internal/persist"
	"github.com/rcliao/vibrant-notes/internal/store"
	"github.com/rcliao/vibrant-notes/internal/view"
)

// Notebook is one user's notes plus the current search and status filter.
type Notebook struct {
	store *store.Store
	board *board.Controller
	blobs persist.Blobs
	gw    *persist.Gateway

	clock   ident.Clock
	loc     *time.Location
	logger  *slog.Logger
	backend string
	path    string

	loadWarning error

	mu     sync.Mutex
	term   string
	filter model.StatusFilter
}

type options struct {
	clock       ident.Clock
	ids         ident.IDSource
	loc         *time.Location
	logger      *slog.Logger
	celebration time.Duration
	seed        bool
	key         string
	backend     string
	path        string
}

// Option configures a Notebook.
type Option func(*options)

// WithClock sets the clock used for creation times and day labels.
func WithClock(c ident.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithIDs sets the id source for new notes.
func WithIDs(ids ident.IDSource) Option {
	return func(o *options) { o.ids = ids }
}

// WithLocation sets the time zone used for day grouping.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithCelebration(d time.Duration) Option {
	return func(o *options) { o.celebration = d }
}

// WithKey sets the storage key the collection is saved under.
func WithKey(key string) Option {
	return func(o *options) { o.key = key }
}

func withStorageInfo(backend, path string) Option {
	return func(o *options) { o.backend, o.path = backend, path }
}

// WithSeed chooses the sample notes (true) or an empty notebook (false) when
// nothing usable is stored.
func WithSeed(seed bool) Option { return func(o *options) { o.seed = seed } }

// OpenBlobs opens the storage medium named by cfg.
func OpenBlobs(cfg config.StorageConfig) (persist.Blobs, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return persist.NewSQLiteBlobs(cfg.Path)
	case config.BackendFile:
		return persist.NewFileBlobs(afero.NewOsFs(), cfg.Path), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// Open builds a notebook from cfg.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Notebook, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	blobs, err := OpenBlobs(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	nb, err := New(ctx, blobs,
		WithKey(cfg.Storage.Key),
		WithLocation(loc),
		WithLogger(logger),
		WithCelebration(cfg.Board.Celebration),
		WithSeed(cfg.Notes.Seed),
		withStorageInfo(cfg.Storage.Backend, cfg.Storage.Path),
	)
	if err != nil {
		blobs.Close()
		return nil, err
	}
	return nb, nil
}

// New loads the notebook stored in blobs. A corrupt blob is not fatal: the
// notebook starts from its fallback and LoadWarning reports what happened.
func New(ctx context.Context, blobs persist.Blobs, opts ...Option) (*Notebook, error) {
	o := options{
		clock: ident.SystemClock{},
		loc:   time.Local,
		seed:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.loc == nil {
		o.loc = time.Local
	}

	gw := persist.NewGateway(blobs, o.key, o.logger)

	fallback := store.Fallback(store.EmptyFallback)
	if o.seed {
		fallback = model.SampleNotes
	}
	storeOpts := []store.Option{
		store.WithClock(o.clock),
		store.WithLogger(o.logger),
		store.WithFallback(fallback),
	}
	if o.ids != nil {
		storeOpts = append(storeOpts, store.WithIDs(o.ids))
	}
	s := store.New(gw, storeOpts...)

	nb := &Notebook{
		store:   s,
		board:   board.New(s, board.WithCelebration(o.celebration), board.WithLogger(o.logger)),
		blobs:   blobs,
		gw:      gw,
		clock:   o.clock,
		loc:     o.loc,
		logger:  o.logger,
		backend: o.backend,
		path:    o.path,
		filter:  model.FilterAll,
	}

	if err := s.Open(ctx); err != nil {
		if !isWarning(err) {
			return nil, err
		}
		nb.loadWarning = err
	}
	nb.logger.Debug("notebook opened", "backend", nb.backend, "key", gw.Key(), "notes", s.Len())
	return nb, nil
}

func isWarning(err error) bool {
	return errors.Is(err, persist.ErrCorrupt) || errors.Is(err, persist.ErrPersistence)
}

// LoadWarning returns the non-fatal problem found while loading, if any.
func (nb *Notebook) LoadWarning() error { return nb.loadWarning }

// Close cancels any pending celebration and releases storage.
func (nb *Notebook) Close() error {
	nb.board.Stop()
	return nb.blobs.Close()
}

// Subscribe registers fn for every change to the collection.
func (nb *Notebook) Subscribe(fn func(store.Event)) (unsubscribe func()) {
	return nb.store.Subscribe(fn)
}

// SubscribeCelebration registers fn for celebration start and clear.
func (nb *Notebook) SubscribeCelebration(fn func(board.State)) (unsubscribe func()) {
	return nb.board.Subscribe(fn)
}

// Stats describes the notebook and its storage.
type Stats struct {
	view.Summary
	Backend   string `json:"backend,omitempty"`
	Path      string `json:"path,omitempty"`
	Key       string `json:"key"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

// Stats counts notes and reports where they are stored and how many bytes the
// stored collection takes.
func (nb *Notebook) Stats() Stats {
	st := Stats{
		Summary: view.Summarize(nb.store.All(), nb.loc),
		Backend: nb.backend,
		Path:    nb.path,
		Key:     nb.gw.Key(),
	}
	if sz, ok := nb.blobs.(persist.Sizer); ok {
		if n, err := sz.Size(context.Background(), st.Key); err == nil {
			st.SizeBytes = n
		}
	}
	return st
}
