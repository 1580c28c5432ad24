package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/model"
	"github.com/rcliao/vibrant-notes/internal/view"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show notebook statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	nb := openNotebook(cmd)
	defer nb.Close()

	st := nb.Stats()
	if textFormat() {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "notes:   %d (%d pinned) across %d days\n", st.Total, st.Pinned, st.Days)
		for _, s := range model.Statuses {
			fmt.Fprintf(w, "  %-12s %d\n", view.StatusTitle(s), st.ByStatus[s])
		}
		fmt.Fprintf(w, "storage: %s %s (key %s)\n", st.Backend, st.Path, st.Key)
		return
	}
	printJSON(cmd, st)
}
