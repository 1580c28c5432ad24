package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/vibrant-notes/internal/persist"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes as JSON",
		Long:  "Export every note in the stored format: a JSON array with RFC 3339 creation times.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	nb := openNotebook(cmd)
	defer nb.Close()

	b, err := persist.Encode(nb.AllNotes())
	if err != nil {
		exitErr("export", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
