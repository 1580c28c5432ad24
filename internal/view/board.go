package view

import (
	"time"

	"github.com/rcliao/vibrant-notes/internal/model"
)

// Column is one lane of the workflow board.
type Column struct {
	Status model.Status `json:"status"`
	Title  string       `json:"title"`
	Notes  []model.Note `json:"notes"`
}

var columnTitles = map[model.Status]string{
	model.StatusTodo:       "To Do",
	model.StatusInProgress: "In Progress",
	model.StatusDone:       "Done",
}

// Columns splits notes into the three board lanes, keeping input order.
func Columns(notes []model.Note) []Column {
	cols := make([]Column, 0, len(model.Statuses))
	for _, st := range model.Statuses {
		col := Column{Status: st, Title: columnTitles[st], Notes: []model.Note{}}
		for _, n := range notes {
			if n.Status == st {
				col.Notes = append(col.Notes, n)
			}
		}
		cols = append(cols, col)
	}
	return cols
}

// StatusTitle returns the board title of a status.
func StatusTitle(st model.Status) string {
	if t, ok := columnTitles[st]; ok {
		return t
	}
	return string(st)
}

// Summary counts notes by state.
type Summary struct {
	Total    int                  `json:"total"`
	Pinned   int                  `json:"pinned"`
	ByStatus map[model.Status]int `json:"by_status"`
	Days     int                  `json:"days"`
}

// Summarize counts notes overall, pinned, per status, and distinct days in loc.
func Summarize(notes []model.Note, loc *time.Location) Summary {
	s := Summary{Total: len(notes), ByStatus: make(map[model.Status]int, len(model.Statuses))}
	for _, st := range model.Statuses {
		s.ByStatus[st] = 0
	}
	days := make(map[DayKey]bool)
	for _, n := range notes {
		if n.IsPinned {
			s.Pinned++
		}
		s.ByStatus[n.Status]++
		days[KeyOf(n.CreatedAt, loc)] = true
	}
	s.Days = len(days)
	return s
}
