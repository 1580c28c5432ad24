// Package view derives the filtered, grouped and coloured views of a note
// collection. Every function is pure: same input, same output.
package view

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/rcliao/vibrant-notes/internal/model"
)

// Filter returns the notes that match both the search term and the status
// filter, in input order. The term matches a case-insensitive substring of
// the title or the content; an empty term matches everything.
func Filter(notes []model.Note, term string, filter model.StatusFilter) []model.Note {
	folder := cases.Fold()
	needle := folder.String(term)

	out := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if !filter.Matches(n.Status) {
			continue
		}
		if needle != "" &&
			!strings.Contains(folder.String(n.Title), needle) &&
			!strings.Contains(folder.String(n.Content), needle) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Pinned returns the pinned notes regardless of any search or filter.
func Pinned(notes []model.Note) []model.Note {
	out := make([]model.Note, 0)
	for _, n := range notes {
		if n.IsPinned {
			out = append(out, n)
		}
	}
	return out
}

// DayKey identifies a calendar day as "2006-01-02".
type DayKey string

const dayLayout = "2006-01-02"

// KeyOf returns the calendar day of t in loc. A nil loc means time.Local.
func KeyOf(t time.Time, loc *time.Location) DayKey {
	if loc == nil {
		loc = time.Local
	}
	return DayKey(t.In(loc).Format(dayLayout))
}

// Time returns midnight of the day in loc.
func (k DayKey) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(dayLayout, string(k), loc)
}

// GroupByDay buckets notes by creation day. Notes keep their input order
// inside a bucket.
func GroupByDay(notes []model.Note, loc *time.Location) map[DayKey][]model.Note {
	groups := make(map[DayKey][]model.Note)
	for _, n := range notes {
		k := KeyOf(n.CreatedAt, loc)
		groups[k] = append(groups[k], n)
	}
	return groups
}

// SortedDays returns the keys of groups, most recent day first.
func SortedDays(groups map[DayKey][]model.Note) []DayKey {
	keys := make([]DayKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	// "2006-01-02" sorts lexically in date order.
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })
	return keys
}

// ColorFor returns the display colour of the day group at position i of the
// sorted day list. Colours cycle through model.FolderColors.
func ColorFor(i int) model.FolderColor {
	n := len(model.FolderColors)
	return model.FolderColors[((i%n)+n)%n]
}

// DayColors assigns a colour to each day by its position in days.
func DayColors(days []DayKey) map[DayKey]model.FolderColor {
	colors := make(map[DayKey]model.FolderColor, len(days))
	for i, d := range days {
		colors[d] = ColorFor(i)
	}
	return colors
}

// DayGroup is one folder of the grouped view.
type DayGroup struct {
	Key   DayKey            `json:"day"`
	Label string            `json:"label"`
	Color model.FolderColor `json:"color"`
	Notes []model.Note      `json:"notes"`
}

// DayGroups groups notes by day, most recent first, with positional colours
// and human labels relative to now.
func DayGroups(notes []model.Note, now time.Time, loc *time.Location) []DayGroup {
	groups := GroupByDay(notes, loc)
	days := SortedDays(groups)

	colors := DayColors(days)

	out := make([]DayGroup, 0, len(days))
	for _, d := range days {
		out = append(out, DayGroup{
			Key:   d,
			Label: DayLabel(d, now, loc),
			Color: colors[d],
			Notes: groups[d],
		})
	}
	return out
}

// DayLabel renders "Today", "Yesterday" or a date like "Jan 02, 2006".
func DayLabel(k DayKey, now time.Time, loc *time.Location) string {
	switch k {
	case KeyOf(now, loc):
		return "Today"
	case KeyOf(now.In(locOrLocal(loc)).AddDate(0, 0, -1), loc):
		return "Yesterday"
	}
	t, err := k.Time(loc)
	if err != nil {
		return string(k)
	}
	return t.Format("Jan 02, 2006")
}

func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
