package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	nb := openNotebook(cmd)
	defer nb.Close()

	n, err := nb.Get(args[0])
	if missing(cmd, "get", args[0], err) {
		return
	}
	if err != nil {
		exitErr("get", err)
	}
	emitNote(cmd, n)
}
