package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/model"
	"github.com/rcliao/vibrant-notes/internal/preview"
	"github.com/rcliao/vibrant-notes/internal/view"
)

func textFormat() bool {
	return strings.EqualFold(formatFlag, "text")
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func pinMark(n model.Note) string {
	if n.IsPinned {
		return "*"
	}
	return " "
}

func writeNoteLine(w io.Writer, n model.Note) {
	fmt.Fprintf(w, "%s %-26s %-10s %-7s %s: %s\n",
		pinMark(n), n.ID, n.Status, n.FolderColor,
		preview.OneLine(n.Title, 40), preview.OneLine(n.Content, preview.CardSize))
}

func writeNotes(w io.Writer, notes []model.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "no notes")
		return
	}
	for _, n := range notes {
		writeNoteLine(w, n)
	}
}

func writeNote(w io.Writer, n model.Note) {
	fmt.Fprintf(w, "%s  [%s] [%s]", n.ID, n.Status, n.FolderColor)
	if n.IsPinned {
		fmt.Fprint(w, " [pinned]")
	}
	fmt.Fprintf(w, "\n%s\ncreated %s\n\n%s\n", n.Title, n.CreatedAt.Local().Format("Jan 02, 2006 15:04"), n.Content)
}

func writeDayGroups(w io.Writer, groups []view.DayGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "no notes")
		return
	}
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s, %d)\n", g.Label, g.Color, len(g.Notes))
		for _, n := range g.Notes {
			writeNoteLine(w, n)
		}
	}
}

func writeColumns(w io.Writer, cols []view.Column) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", c.Title, len(c.Notes))
		for _, n := range c.Notes {
			fmt.Fprintf(w, "  %s %s  %s: %s\n", pinMark(n), n.ID, preview.OneLine(n.Title, 60),
				preview.Excerpt(preview.FirstLine(n.Content), preview.CardSize))
		}
	}
}

// writeCards renders notes as preview cards: a header line and up to
// PreviewSize runes of content, indented.
func writeCards(w io.Writer, notes []model.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "no notes")
		return
	}
	for i, n := range notes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s  %s [%s] %s\n", pinMark(n), n.ID, n.Title, n.FolderColor, view.StatusTitle(n.Status))
		body := preview.Excerpt(strings.TrimSpace(n.Content), preview.PreviewSize)
		for _, line := range strings.Split(body, "\n") {
			fmt.Fprintf(w, "    %s\n", strings.TrimRight(line, " \t"))
		}
	}
}

// emitNote prints a single note in the selected format.
func emitNote(cmd *cobra.Command, n model.Note) {
	if textFormat() {
		writeNote(cmd.OutOrStdout(), n)
		return
	}
	printJSON(cmd, n)
}

func emitNotes(cmd *cobra.Command, notes []model.Note) {
	if textFormat() {
		writeNotes(cmd.OutOrStdout(), notes)
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	printJSON(cmd, notes)
}
