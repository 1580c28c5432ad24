package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "days",
		Short: "List day folders",
		Long:  "List the days that have notes, newest first, with their folder colour and note count.",
		Run:   runDays,
	}

	RootCmd.AddCommand(cmd)
}

type dayRow struct {
	Day   string `json:"day"`
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

func runDays(cmd *cobra.Command, args []string) {
	nb := openNotebook(cmd)
	defer nb.Close()

	groups := nb.GroupedByDay().Groups
	rows := make([]dayRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, dayRow{Day: string(g.Key), Label: g.Label, Color: string(g.Color), Count: len(g.Notes)})
	}

	if textFormat() {
		for _, r := range rows {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-14s %-7s %d\n", r.Day, r.Label, r.Color, r.Count)
		}
		return
	}
	printJSON(cmd, rows)
}
