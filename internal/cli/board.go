package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the task board",
		Run:   runBoard,
	}

	cmd.Flags().StringP("search", "s", "", "Case-insensitive text in title or content")

	RootCmd.AddCommand(cmd)
}

func runBoard(cmd *cobra.Command, args []string) {
	term, _ := cmd.Flags().GetString("search")

	nb := openNotebook(cmd)
	defer nb.Close()

	nb.SetSearchTerm(term)
	nb.SetStatusFilter(model.FilterAll)

	cols := nb.Board()
	if textFormat() {
		writeColumns(cmd.OutOrStdout(), cols)
		return
	}
	printJSON(cmd, cols)
}
