package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		Long:  "List notes matching a search term and status filter, optionally grouped into day folders.",
		Run:   runList,
	}

	cmd.Flags().StringP("search", "s", "", "Case-insensitive text in title or content")
	cmd.Flags().String("status", "all", "Filter by status: all, todo, inProgress, done")
	cmd.Flags().BoolP("grouped", "g", false, "Group by creation day, newest first")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	term, _ := cmd.Flags().GetString("search")
	statusStr, _ := cmd.Flags().GetString("status")
	grouped, _ := cmd.Flags().GetBool("grouped")

	filter, err := model.ParseStatusFilter(statusStr)
	if err != nil {
		exitErr("list", err)
	}

	nb := openNotebook(cmd)
	defer nb.Close()

	nb.SetSearchTerm(term)
	nb.SetStatusFilter(filter)

	if grouped {
		g := nb.GroupedByDay()
		if textFormat() {
			writeDayGroups(cmd.OutOrStdout(), g.Groups)
			return
		}
		printJSON(cmd, g)
		return
	}
	emitNotes(cmd, nb.FilteredNotes())
}
