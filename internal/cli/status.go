package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status <id> <todo|inProgress|done>",
		Short: "Set a note's status",
		Long:  "Set a note's status directly. Use move to drag it across the board instead.",
		Args:  cobra.ExactArgs(2),
		Run:   runStatus,
	}

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	st, err := model.ParseStatus(args[1])
	if err != nil {
		exitErr("status", err)
	}

	nb := openNotebook(cmd)
	defer nb.Close()

	n, err := nb.SetStatus(cmd.Context(), args[0], st)
	if missing(cmd, "status", args[0], err) {
		return
	}
	checkErr(cmd, "status", err)
	emitNote(cmd, n)
}
