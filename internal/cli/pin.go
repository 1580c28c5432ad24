package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin or unpin a note",
		Args:  cobra.ExactArgs(1),
		Run:   runPin,
	}

	RootCmd.AddCommand(cmd)
}

func runPin(cmd *cobra.Command, args []string) {
	nb := openNotebook(cmd)
	defer nb.Close()

	n, err := nb.TogglePin(cmd.Context(), args[0])
	if missing(cmd, "pin", args[0], err) {
		return
	}
	checkErr(cmd, "pin", err)
	emitNote(cmd, n)
}
