package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/board"
	"github.com/rcliao/vibrant-notes/internal/model"
	"github.com/rcliao/vibrant-notes/internal/view"
)

func init() {
	cmd := &cobra.Command{
		Use:   "move <id> <todo|inProgress|done>",
		Short: "Drag a note to a board column",
		Long:  "Move a note across the task board. Landing in done from another column starts a celebration.",
		Args:  cobra.ExactArgs(2),
		Run:   runMove,
	}

	cmd.Flags().Int("from-index", 0, "Position the note was dragged from")
	cmd.Flags().Int("to-index", 0, "Position the note was dropped at")
	cmd.Flags().Bool("wait", false, "Block until the celebration ends")

	RootCmd.AddCommand(cmd)
}

func runMove(cmd *cobra.Command, args []string) {
	id := args[0]
	to, err := model.ParseStatus(args[1])
	if err != nil {
		exitErr("move", err)
	}
	fromIndex, _ := cmd.Flags().GetInt("from-index")
	toIndex, _ := cmd.Flags().GetInt("to-index")
	wait, _ := cmd.Flags().GetBool("wait")

	nb := openNotebook(cmd)
	defer nb.Close()

	current, err := nb.Get(id)
	if missing(cmd, "move", id, err) {
		return
	}
	if err != nil {
		exitErr("move", err)
	}

	cleared := make(chan struct{})
	unsubscribe := nb.SubscribeCelebration(func(st board.State) {
		if !st.Active {
			close(cleared)
		}
	})
	defer unsubscribe()

	out, err := nb.Move(cmd.Context(), board.MoveEvent{
		NoteID:    id,
		From:      current.Status,
		To:        to,
		FromIndex: fromIndex,
		ToIndex:   toIndex,
	})
	if missing(cmd, "move", id, err) {
		return
	}
	checkErr(cmd, "move", err)
	if out.Ignored {
		out.Note = current
	}

	if textFormat() {
		w := cmd.OutOrStdout()
		switch {
		case out.Ignored:
			fmt.Fprintf(w, "%s stays in %s\n", id, view.StatusTitle(current.Status))
		case current.Status == to:
			fmt.Fprintf(w, "%s reordered in %s\n", id, view.StatusTitle(to))
		case out.Celebrated:
			fmt.Fprintf(w, "%s moved to %s. Nice work!\n", id, view.StatusTitle(to))
		default:
			fmt.Fprintf(w, "%s moved to %s\n", id, view.StatusTitle(to))
		}
	} else {
		printJSON(cmd, out)
	}

	if wait && out.Celebrated {
		select {
		case <-cleared:
		case <-cmd.Context().Done():
		}
	}
}
