// Package board turns drag-and-drop moves on the workflow board into status
// changes and owns the short-lived celebration shown when a note lands in done.
package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rcliao/vibrant-notes/internal/model"
	"github.com/rcliao/vibrant-notes/internal/persist"
)

// DefaultCelebration is how long the celebration stays active.
const DefaultCelebration = 2 * time.Second

// Mover reads notes and applies status changes. The note store satisfies it.
type Mover interface {
	Get(id string) (model.Note, error)
	SetStatus(ctx context.Context, id string, status model.Status) (model.Note, error)
}

// MoveEvent describes a finished drag: which note, from which column and
// position, to which column and position. An empty To means the note was
// dropped outside every column.
type MoveEvent struct {
	NoteID    string
	From      model.Status
	To        model.Status
	FromIndex int
	ToIndex   int
}

// Outcome reports what a move did.
type Outcome struct {
	Ignored    bool       `json:"ignored"`
	Note       model.Note `json:"note"`
	Celebrated bool       `json:"celebrated"`
}

// State is the celebration flag and the note that raised it.
type State struct {
	Active bool   `json:"active"`
	NoteID string `json:"note_id,omitempty"`
}

type stopper interface {
	Stop() bool
}

// Controller applies moves and runs the celebration timer.
type Controller struct {
	mover     Mover
	window    time.Duration
	logger    *slog.Logger
	afterFunc func(time.Duration, func()) stopper

	mu    sync.Mutex
	state State
	timer stopper
	gen   uint64

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// Option configures a Controller.
type Option func(*Controller)

// WithCelebration sets how long a celebration lasts.
func WithCelebration(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.window = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// withAfterFunc replaces the timer source; tests use it to fire timers by hand.
func withAfterFunc(f func(time.Duration, func()) stopper) Option {
	return func(c *Controller) { c.afterFunc = f }
}

// New returns a controller that moves notes through m.
func New(m Mover, opts ...Option) *Controller {
	c := &Controller{
		mover:  m,
		window: DefaultCelebration,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		subs: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Move applies a drag result. Drops outside a column and drops back onto the
// same position are ignored. Landing in done from another column starts a
// celebration. Reordering inside a column leaves the store untouched.
func (c *Controller) Move(ctx context.Context, ev MoveEvent) (Outcome, error) {
	if ev.To == "" {
		return Outcome{Ignored: true}, nil
	}
	if ev.From == ev.To && ev.FromIndex == ev.ToIndex {
		return Outcome{Ignored: true}, nil
	}
	if !model.ValidStatuses[ev.To] {
		return Outcome{}, fmt.Errorf("invalid destination %q", ev.To)
	}
	if ev.From != "" && !model.ValidStatuses[ev.From] {
		return Outcome{}, fmt.Errorf("invalid source %q", ev.From)
	}

	if ev.From == ev.To {
		note, err := c.mover.Get(ev.NoteID)
		if err != nil {
			return Outcome{}, err
		}
		c.logger.Debug("note reordered", "id", ev.NoteID, "status", ev.To, "to_index", ev.ToIndex)
		return Outcome{Note: note}, nil
	}

	note, err := c.mover.SetStatus(ctx, ev.NoteID, ev.To)
	if err != nil && !errors.Is(err, persist.ErrPersistence) {
		return Outcome{}, err
	}

	out := Outcome{Note: note}
	if ev.To == model.StatusDone && ev.From != model.StatusDone {
		c.celebrate(ev.NoteID)
		out.Celebrated = true
	}
	c.logger.Debug("note moved", "id", ev.NoteID, "from", ev.From, "to", ev.To, "celebrated", out.Celebrated)
	return out, err
}

// Celebration returns the current celebration state.
func (c *Controller) Celebration() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stop cancels any pending celebration and clears it.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	wasActive := c.state.Active
	c.state = State{}
	c.mu.Unlock()

	if wasActive {
		c.notify(State{})
	}
}

// Subscribe registers fn to run whenever the celebration starts or clears.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()
	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Controller) celebrate(noteID string) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.state = State{Active: true, NoteID: noteID}
	c.timer = c.afterFunc(c.window, func() { c.expire(gen) })
	st := c.state
	c.mu.Unlock()

	c.notify(st)
}

// expire clears the celebration unless a newer one replaced it.
func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.state = State{}
	c.timer = nil
	c.mu.Unlock()

	c.notify(State{})
}

func (c *Controller) notify(st State) {
	c.subMu.Lock()
	fns := make([]func(State), 0, len(c.subs))
	for id := 0; id < c.nextSub; id++ {
		if fn, ok := c.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
