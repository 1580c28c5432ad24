package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "pinned",
		Short: "List pinned notes",
		Run:   runPinned,
	}

	RootCmd.AddCommand(cmd)
}

func runPinned(cmd *cobra.Command, args []string) {
	nb := openNotebook(cmd)
	defer nb.Close()

	notes := nb.PinnedNotes()
	if textFormat() {
		writeCards(cmd.OutOrStdout(), notes)
		return
	}
	emitNotes(cmd, notes)
}
