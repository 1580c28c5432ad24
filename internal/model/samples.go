package model

import "time"

type sample struct {
	id, title, content string
	color              FolderColor
	pinned             bool
	daysAgo            int
	status             Status
}

var samples = []sample{
	{"1", "Project Planning", "Create wireframes for the new dashboard interface and share with the design team.", ColorPurple, true, 0, StatusInProgress},
	{"2", "Shopping List", "Milk\nEggs\nBread\nFruit\nVegetables", ColorBlue, false, 0, StatusTodo},
	{"3", "Book Recommendations", "Atomic Habits\nThe Psychology of Money\nThinking Fast and Slow", ColorGreen, true, 1, StatusDone},
	{"4", "React Conference Notes", "New Hooks API\nServer Components\nPerformance Optimizations", ColorYellow, false, 1, StatusInProgress},
	{"5", "Workout Routine", "Monday: Chest & Triceps\nWednesday: Back & Biceps\nFriday: Legs & Shoulders", ColorOrange, false, 2, StatusTodo},
	{"6", "Travel Plans", "Research flights to Barcelona\nBook accommodation\nPlan itinerary", ColorPink, true, 2, StatusTodo},
	{"7", "Birthday Gift Ideas", "Smart watch\nBooks\nCooking class\nVinyl records", ColorRed, false, 3, StatusDone},
	{"8", "Home Improvements", "Paint living room\nFix kitchen cabinet\nReplace bathroom light fixture", ColorGreen, false, 3, StatusInProgress},
	{"9", "Learning Goals", "Master TypeScript\nBuild a mobile app\nLearn about system design", ColorBlue, true, 4, StatusInProgress},
	{"10", "Recipe: Pasta Carbonara", "Ingredients:\n- Pasta\n- Eggs\n- Pancetta\n- Parmesan\n- Black pepper", ColorYellow, false, 4, StatusDone},
}

// SampleNotes returns the starter collection shown on first run,
// dated relative to now.
func SampleNotes(now time.Time) []Note {
	notes := make([]Note, 0, len(samples))
	for _, s := range samples {
		notes = append(notes, Note{
			ID:          s.id,
			Title:       s.title,
			Content:     s.content,
			FolderColor: s.color,
			IsPinned:    s.pinned,
			Status:      s.status,
			CreatedAt:   now.AddDate(0, 0, -s.daysAgo),
		})
	}
	return notes
}
