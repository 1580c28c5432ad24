package notebook

import (
	"context"

	"github.com/rcliao/vibrant-notes/internal/board"
	"github.com/rcliao/vibrant-notes/internal/model"
	"github.com/rcliao/vibrant-notes/internal/store"
	"github.com/rcliao/vibrant-notes/internal/view"
)

// CreateNote adds a note. See store.Store.Create for the error contract.
func (nb *Notebook) CreateNote(ctx context.Context, title, content string, color model.FolderColor) (model.Note, error) {
	return nb.store.Create(ctx, store.NewNote{Title: title, Content: content, FolderColor: color})
}

// UpdateNote merges patch into the note with the given id.
func (nb *Notebook) UpdateNote(ctx context.Context, id string, patch model.NotePatch) (model.Note, error) {
	return nb.store.Update(ctx, id, patch)
}

// DeleteNote removes a note.
func (nb *Notebook) DeleteNote(ctx context.Context, id string) error {
	return nb.store.Delete(ctx, id)
}

// TogglePin flips a note's pin.
func (nb *Notebook) TogglePin(ctx context.Context, id string) (model.Note, error) {
	return nb.store.TogglePin(ctx, id)
}

// SetStatus changes a note's status directly. Unlike a board move it never
// celebrates.
func (nb *Notebook) SetStatus(ctx context.Context, id string, status model.Status) (model.Note, error) {
	return nb.store.SetStatus(ctx, id, status)
}

// MoveViaDrag moves a note between board columns. Without positions a drop
// onto the same column counts as a drop onto the same spot.
func (nb *Notebook) MoveViaDrag(ctx context.Context, id string, from, to model.Status) (board.Outcome, error) {
	return nb.board.Move(ctx, board.MoveEvent{NoteID: id, From: from, To: to})
}

// Move applies a full drag result, positions included.
func (nb *Notebook) Move(ctx context.Context, ev board.MoveEvent) (board.Outcome, error) {
	return nb.board.Move(ctx, ev)
}

// Import adds notes from an export, skipping ids already present.
func (nb *Notebook) Import(ctx context.Context, notes []model.Note) (int, error) {
	return nb.store.Import(ctx, notes)
}

// SetSearchTerm sets the text the filtered views match against.
func (nb *Notebook) SetSearchTerm(term string) {
	nb.mu.Lock()
	nb.term = term
	nb.mu.Unlock()
}

// SetStatusFilter restricts the filtered views to one status, or FilterAll.
func (nb *Notebook) SetStatusFilter(f model.StatusFilter) {
	if f == "" {
		f = model.FilterAll
	}
	nb.mu.Lock()
	nb.filter = f
	nb.mu.Unlock()
}

func (nb *Notebook) criteria() (string, model.StatusFilter) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.term, nb.filter
}

// AllNotes returns every note in insertion order.
func (nb *Notebook) AllNotes() []model.Note {
	return nb.store.All()
}

// Get returns one note.
func (nb *Notebook) Get(id string) (model.Note, error) {
	return nb.store.Get(id)
}

// FilteredNotes applies the current search term and status filter.
func (nb *Notebook) FilteredNotes() []model.Note {
	term, filter := nb.criteria()
	return view.Filter(nb.store.All(), term, filter)
}

// PinnedNotes returns pinned notes, ignoring search and filter.
func (nb *Notebook) PinnedNotes() []model.Note {
	return view.Pinned(nb.store.All())
}

// Grouped is the folder view: day keys most recent first and one coloured
// group per key.
type Grouped struct {
	Days   []view.DayKey   `json:"days"`
	Groups []view.DayGroup `json:"groups"`
}

// GroupedByDay groups the filtered notes by creation day.
func (nb *Notebook) GroupedByDay() Grouped {
	groups := view.DayGroups(nb.FilteredNotes(), nb.clock.Now(), nb.loc)
	days := make([]view.DayKey, 0, len(groups))
	for _, g := range groups {
		days = append(days, g.Key)
	}
	return Grouped{Days: days, Groups: groups}
}

// Board splits the filtered notes into the three workflow columns.
func (nb *Notebook) Board() []view.Column {
	return view.Columns(nb.FilteredNotes())
}

// Celebration reports whether a completion celebration is showing and for
// which note.
func (nb *Notebook) Celebration() board.State {
	return nb.board.Celebration()
}
