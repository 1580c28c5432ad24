package store

import "github.com/rcliao/vibrant-notes/internal/model"

// EventKind names the command that changed the collection.
type EventKind string

const (
	EventLoaded        EventKind = "loaded"
	EventCreated       EventKind = "created"
	EventUpdated       EventKind = "updated"
	EventDeleted       EventKind = "deleted"
	EventPinned        EventKind = "pinned"
	EventStatusChanged EventKind = "statusChanged"
	EventImported      EventKind = "imported"
)

// Event is published after every applied change, including changes whose
// save failed. Note is the note after the change (the removed note for
// deletes); Previous is set for in-place edits.
type Event struct {
	Kind     EventKind
	Note     model.Note
	Previous model.Note
}

type subscription struct {
	id int
	fn func(Event)
}

// Subscribe registers fn to run after each change, in subscription order,
// on the goroutine that issued the command. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}
