package view

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/vibrant-notes/internal/model"
)

var (
	berlin = time.FixedZone("CET", 60*60)
	now    = time.Date(2026, 6, 15, 18, 0, 0, 0, berlin)
)

func note(id, title, content string, st model.Status, pinned bool, created time.Time) model.Note {
	return model.Note{
		ID: id, Title: title, Content: content, FolderColor: model.ColorBlue,
		Status: st, IsPinned: pinned, CreatedAt: created,
	}
}

func fixture() []model.Note {
	return []model.Note{
		note("1", "Shopping List", "Milk and eggs", model.StatusTodo, false, now),
		note("2", "Project plan", "wireframes", model.StatusInProgress, true, now.Add(-2*time.Hour)),
		note("3", "Books", "Thinking, Fast and SLOW", model.StatusDone, true, now.AddDate(0, 0, -1)),
		note("4", "Workout", "legs", model.StatusTodo, false, now.AddDate(0, 0, -3)),
		note("5", "Recipe", "pasta", model.StatusDone, false, now.AddDate(0, 0, -3).Add(-5*time.Hour)),
	}
}

func ids(notes []model.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestFilterEmptyMatchesAll(t *testing.T) {
	notes := fixture()
	assert.Equal(t, ids(notes), ids(Filter(notes, "", model.FilterAll)))
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	notes := fixture()
	assert.Equal(t, []string{"1"}, ids(Filter(notes, "shopping", model.FilterAll)))
	assert.Equal(t, []string{"3"}, ids(Filter(notes, "slow", model.FilterAll)))
	assert.Equal(t, []string{"2"}, ids(Filter(notes, "WIRE", model.FilterAll)))
	assert.Empty(t, Filter(notes, "javascript", model.FilterAll))
}

func TestFilterIsConjunctive(t *testing.T) {
	notes := fixture()
	assert.Equal(t, []string{"1", "4"}, ids(Filter(notes, "", model.StatusFilter(model.StatusTodo))))
	assert.Equal(t, []string{"3", "5"}, ids(Filter(notes, "a", model.StatusFilter(model.StatusDone))))

	for _, term := range []string{"a", "e", "pl", "L"} {
		for _, st := range model.Statuses {
			got := Filter(notes, term, model.StatusFilter(st))
			for _, n := range got {
				assert.Equal(t, st, n.Status)
				hay := strings.ToLower(n.Title + "\x00" + n.Content)
				assert.Contains(t, hay, strings.ToLower(term))
			}
		}
	}
}

func TestPinnedIgnoresFilters(t *testing.T) {
	assert.Equal(t, []string{"2", "3"}, ids(Pinned(fixture())))
	assert.Empty(t, Pinned(nil))
}

func TestGroupByDay(t *testing.T) {
	notes := fixture()
	groups := GroupByDay(notes, berlin)

	total := 0
	for k, g := range groups {
		total += len(g)
		for _, n := range g {
			assert.Equal(t, k, KeyOf(n.CreatedAt, berlin))
		}
	}
	assert.Equal(t, len(notes), total)
	assert.Equal(t, []string{"1", "2"}, ids(groups["2026-06-15"]))
	assert.Equal(t, []string{"4", "5"}, ids(groups["2026-06-12"]))
}

func TestGroupByDayUsesLocation(t *testing.T) {
	late := time.Date(2026, 6, 14, 23, 30, 0, 0, time.UTC)
	notes := []model.Note{note("a", "t", "c", model.StatusTodo, false, late)}

	assert.Contains(t, GroupByDay(notes, time.UTC), DayKey("2026-06-14"))
	assert.Contains(t, GroupByDay(notes, berlin), DayKey("2026-06-15"))
}

func TestSortedDaysDescending(t *testing.T) {
	days := SortedDays(GroupByDay(fixture(), berlin))
	assert.Equal(t, []DayKey{"2026-06-15", "2026-06-14", "2026-06-12"}, days)
}

func TestColorForCycles(t *testing.T) {
	n := len(model.FolderColors)
	for i := 0; i < 3*n; i++ {
		assert.Equal(t, model.FolderColors[i%n], ColorFor(i))
		assert.Equal(t, ColorFor(i), ColorFor(i+n))
	}
	assert.Equal(t, model.ColorPurple, ColorFor(0))
	assert.Equal(t, model.ColorBlue, ColorFor(1))
}

func TestDayColorsShiftWhenNewerDayAppears(t *testing.T) {
	days := []DayKey{"2026-06-14", "2026-06-12"}
	before := DayColors(days)
	after := DayColors(append([]DayKey{"2026-06-15"}, days...))

	assert.Equal(t, model.ColorPurple, before["2026-06-14"])
	assert.Equal(t, model.ColorBlue, after["2026-06-14"])
}

func TestDayGroups(t *testing.T) {
	groups := DayGroups(fixture(), now, berlin)
	require.Len(t, groups, 3)

	assert.Equal(t, DayKey("2026-06-15"), groups[0].Key)
	assert.Equal(t, "Today", groups[0].Label)
	assert.Equal(t, model.ColorPurple, groups[0].Color)

	assert.Equal(t, "Yesterday", groups[1].Label)
	assert.Equal(t, model.ColorBlue, groups[1].Color)

	assert.Equal(t, "Jun 12, 2026", groups[2].Label)
	assert.Equal(t, model.ColorGreen, groups[2].Color)
}

func TestDayGroupsManyDays(t *testing.T) {
	var notes []model.Note
	for i := 0; i < 10; i++ {
		notes = append(notes, note(fmt.Sprint(i), "t", "c", model.StatusTodo, false, now.AddDate(0, 0, -i)))
	}
	groups := DayGroups(notes, now, berlin)
	require.Len(t, groups, 10)
	assert.Equal(t, groups[0].Color, groups[7].Color)
	assert.Equal(t, model.ColorRed, groups[6].Color)
}

func TestColumns(t *testing.T) {
	cols := Columns(fixture())
	require.Len(t, cols, 3)
	assert.Equal(t, "To Do", cols[0].Title)
	assert.Equal(t, []string{"1", "4"}, ids(cols[0].Notes))
	assert.Equal(t, []string{"2"}, ids(cols[1].Notes))
	assert.Equal(t, []string{"3", "5"}, ids(cols[2].Notes))

	empty := Columns(nil)
	assert.NotNil(t, empty[2].Notes)
	assert.Equal(t, "In Progress", StatusTitle(model.StatusInProgress))
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture(), berlin)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Pinned)
	assert.Equal(t, 2, s.ByStatus[model.StatusTodo])
	assert.Equal(t, 1, s.ByStatus[model.StatusInProgress])
	assert.Equal(t, 2, s.ByStatus[model.StatusDone])
	assert.Equal(t, 3, s.Days)
}
