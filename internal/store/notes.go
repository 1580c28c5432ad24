package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rcliao/vibrant-notes/internal/model"
	"github.com/rcliao/vibrant-notes/internal/persist"
)

// Open loads the saved collection. It is meant to run once, at startup.
//
// When nothing is stored the fallback collection is used and saved. When the
// stored blob is corrupt the same happens and the *persist.CorruptDataError is
// returned; the store is usable either way.
func (s *Store) Open(ctx context.Context) error {
	notes, err := s.gw.Load(ctx)

	s.mu.Lock()
	var loadErr error
	switch {
	case err == nil:
		s.notes = notes
	case errors.Is(err, persist.ErrAbsent), errors.Is(err, persist.ErrCorrupt):
		if errors.Is(err, persist.ErrCorrupt) {
			s.logger.Warn("saved notes are corrupt, starting from fallback", "error", err)
			loadErr = err
		}
		s.notes = s.fallback(s.clock.Now())
		if serr := s.save(ctx, "open"); serr != nil {
			loadErr = errors.Join(loadErr, serr)
		}
	default:
		s.mu.Unlock()
		return fmt.Errorf("load notes: %w", err)
	}
	count := len(s.notes)
	s.mu.Unlock()

	s.logger.Debug("notes loaded", "count", count)
	s.publish(Event{Kind: EventLoaded})
	return loadErr
}

// Create appends a new note with a fresh id, the current time, status todo
// and no pin. An empty folder colour defaults to purple.
//
// A non-nil note with a *persist.PersistenceError means the note exists in
// memory but was not saved.
func (s *Store) Create(ctx context.Context, nn NewNote) (model.Note, error) {
	if strings.TrimSpace(nn.Title) == "" {
		return model.Note{}, &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(nn.Content) == "" {
		return model.Note{}, &ValidationError{Field: "content", Reason: "required"}
	}
	color := nn.FolderColor
	if color == "" {
		color = model.ColorPurple
	}
	if _, err := model.ParseFolderColor(string(color)); err != nil {
		return model.Note{}, &ValidationError{Field: "folderColor", Reason: err.Error()}
	}

	s.mu.Lock()
	now := s.clock.Now().Round(0)
	note := model.Note{
		ID:          s.ids.NewID(now),
		Title:       nn.Title,
		Content:     nn.Content,
		FolderColor: color,
		Status:      model.StatusTodo,
		CreatedAt:   now,
	}
	if note.ID == "" || s.find(note.ID) >= 0 {
		s.mu.Unlock()
		return model.Note{}, fmt.Errorf("%w: %q", ErrDuplicateID, note.ID)
	}
	s.notes = append(s.notes, note)
	err := s.save(ctx, "create")
	s.mu.Unlock()

	s.publish(Event{Kind: EventCreated, Note: note})
	return note, err
}

// Update merges patch into the note with the given id. The id and creation
// time never change.
func (s *Store) Update(ctx context.Context, id string, patch model.NotePatch) (model.Note, error) {
	if err := validatePatch(patch); err != nil {
		return model.Note{}, err
	}
	return s.mutate(ctx, id, EventUpdated, patch.Apply)
}

// TogglePin flips the pin flag.
func (s *Store) TogglePin(ctx context.Context, id string) (model.Note, error) {
	return s.mutate(ctx, id, EventPinned, func(n model.Note) model.Note {
		n.IsPinned = !n.IsPinned
		return n
	})
}

// SetStatus moves a note into the given workflow state.
func (s *Store) SetStatus(ctx context.Context, id string, status model.Status) (model.Note, error) {
	if !model.ValidStatuses[status] {
		return model.Note{}, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}
	return s.mutate(ctx, id, EventStatusChanged, func(n model.Note) model.Note {
		n.Status = status
		return n
	})
}

// Delete removes the note. Deleting a note that is already gone reports a
// *NotFoundError and leaves the collection unchanged; callers should treat it
// as a warning, since a stale second delete is expected.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: "id", Reason: "required"}
	}

	s.mu.Lock()
	i := s.find(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("note not found, it may have been already deleted", "id", id)
		return &NotFoundError{ID: id}
	}
	removed := s.notes[i]
	s.notes = slices.Delete(s.notes, i, i+1)
	err := s.save(ctx, "delete")
	s.mu.Unlock()

	s.publish(Event{Kind: EventDeleted, Note: removed})
	return err
}

// Import appends notes whose ids are not already present, keeping their ids
// and timestamps. It returns how many were added.
func (s *Store) Import(ctx context.Context, notes []model.Note) (int, error) {
	s.mu.Lock()
	added := 0
	for _, n := range notes {
		if n.ID == "" || s.find(n.ID) >= 0 {
			s.logger.Debug("skipping import", "id", n.ID)
			continue
		}
		if !model.ValidStatuses[n.Status] {
			n.Status = model.StatusTodo
		}
		s.notes = append(s.notes, n)
		added++
	}
	if added == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	err := s.save(ctx, "import")
	s.mu.Unlock()

	s.publish(Event{Kind: EventImported})
	return added, err
}

func (s *Store) mutate(ctx context.Context, id string, kind EventKind, fn func(model.Note) model.Note) (model.Note, error) {
	s.mu.Lock()
	i := s.find(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Warn("note not found", "id", id, "op", string(kind))
		return model.Note{}, &NotFoundError{ID: id}
	}
	orig := s.notes[i]
	next := fn(orig)
	next.ID = orig.ID
	next.CreatedAt = orig.CreatedAt
	s.notes[i] = next
	err := s.save(ctx, string(kind))
	s.mu.Unlock()

	s.publish(Event{Kind: kind, Note: next, Previous: orig})
	return next, err
}

func validatePatch(p model.NotePatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return &ValidationError{Field: "content", Reason: "cannot be empty"}
	}
	if p.FolderColor != nil {
		if _, err := model.ParseFolderColor(string(*p.FolderColor)); err != nil {
			return &ValidationError{Field: "folderColor", Reason: err.Error()}
		}
	}
	if p.Status != nil && !model.ValidStatuses[*p.Status] {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", *p.Status)}
	}
	return nil
}
