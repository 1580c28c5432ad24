// Package model defines the core note data types.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the workflow column a note belongs to.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inProgress"
	StatusDone       Status = "done"
)

// Statuses lists the workflow states in board order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// ValidStatuses are the allowed workflow states.
var ValidStatuses = map[Status]bool{
	StatusTodo:       true,
	StatusInProgress: true,
	StatusDone:       true,
}

// ParseStatus validates s as a workflow state.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !ValidStatuses[st] {
		return "", fmt.Errorf("invalid status %q (valid: todo, inProgress, done)", s)
	}
	return st, nil
}

// UnmarshalJSON rejects anything outside the three workflow states.
func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// StatusFilter selects notes by status. FilterAll matches every note.
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseStatusFilter accepts "all" or any valid status. Empty means all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || s == string(FilterAll) {
		return FilterAll, nil
	}
	st, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	return StatusFilter(st), nil
}

// Matches reports whether a note with status st passes the filter.
func (f StatusFilter) Matches(st Status) bool {
	return f == "" || f == FilterAll || Status(f) == st
}

// FolderColor is a display tag attached to a note.
type FolderColor string

const (
	ColorPurple FolderColor = "purple"
	ColorBlue   FolderColor = "blue"
	ColorGreen  FolderColor = "green"
	ColorYellow FolderColor = "yellow"
	ColorOrange FolderColor = "orange"
	ColorPink   FolderColor = "pink"
	ColorRed    FolderColor = "red"
)

// FolderColors is the fixed colour cycle. Order matters for day-group colouring.
var FolderColors = []FolderColor{
	ColorPurple, ColorBlue, ColorGreen, ColorYellow, ColorOrange, ColorPink, ColorRed,
}

// ParseFolderColor validates s against FolderColors.
func ParseFolderColor(s string) (FolderColor, error) {
	for _, c := range FolderColors {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid folder color %q", s)
}

// UnmarshalJSON rejects colours outside FolderColors.
func (c *FolderColor) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	fc, err := ParseFolderColor(raw)
	if err != nil {
		return err
	}
	*c = fc
	return nil
}

// Note represents a single user-authored note.
type Note struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	FolderColor FolderColor `json:"folderColor"`
	IsPinned    bool        `json:"isPinned"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NotePatch holds the mutable fields of a note. Nil fields are left as they are.
type NotePatch struct {
	Title       *string
	Content     *string
	FolderColor *FolderColor
	IsPinned    *bool
	Status      *Status
}

// Apply merges the patch into n and returns the result.
func (p NotePatch) Apply(n Note) Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.FolderColor != nil {
		n.FolderColor = *p.FolderColor
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
	return n
}

// Empty reports whether the patch changes nothing.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.FolderColor == nil &&
		p.IsPinned == nil && p.Status == nil
}
